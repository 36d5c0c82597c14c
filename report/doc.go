// Package report は、ストリームのスループットを定期的に取得してログ出力する Reporter を提供します。
package report
