package stream

import "io"

//go:generate mockgen -destination ./${GOPACKAGE}mock/${GOFILE} -package ${GOPACKAGE}mock -source ./${GOFILE}

// Flusherは、バッファされたデータを書き出す機能を持つストリームのインターフェースです。
type Flusher interface {
	Flush() error
}

// Truncaterは、ストリーム長を変更する機能を持つストリームのインターフェースです。 *os.File が実装しています。
type Truncater interface {
	Truncate(size int64) error
}

// Capabilitiesは、ストリームが自身の読み書き可否を明示する場合に実装するインターフェースです。
//
// 実装していない場合、読み書き可否はコンストラクタから、シーク可否は io.Seeker の実装有無から判断します。
type Capabilities interface {
	CanRead() bool
	CanWrite() bool
	CanSeek() bool
}

// Fileは、Streamが委譲できるすべての機能を持つストリームです。
type File interface {
	io.ReadWriteSeeker
	io.Closer
	Flusher
	Truncater
}
