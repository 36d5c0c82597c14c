/*
Package iomonitorはストリームのスループットを計測するライブラリです。

ここでは計測までの一連の流れについて説明します。

# Count Samples

ratecounter.Counter は、加算されたサンプル数から平均速度と直近の速度を算出します。
加算はロックを取得せず、複数のゴルーチンから同時に呼び出せます。

	c := ratecounter.New(time.Second)
	c.Add(500)
	log.Printf("total[%d] average[%d/s] latest[%d/s]", c.Total(), c.AverageVelocity(), c.LatestVelocity())

# Track Streams

stream.Stream は、任意の io.ReadWriter をラップし、読み込み/書き込みに成功したバイト数を計測します。
ラップ対象のエラーはそのまま返却されます。

	package main

	import (
		"io"
		"log"
		"os"

		"github.com/aptpod/iomonitor-go/stream"
	)

	func main() {
		f, err := os.Open("input.bin")
		if err != nil {
			log.Fatal(err)
		}
		s := stream.NewReader(f)
		defer s.Close()

		if _, err := io.Copy(io.Discard, s); err != nil {
			log.Fatal(err)
		}
		log.Printf("received[%d] average[%d bytes/s]", s.Received().Total(), s.Received().AverageVelocity())
	}

# Report Throughput

report.Reporter は登録したストリームのスループットを定期的にロガーへ出力します。
metrics.Collector を使用すると、同じ値をPrometheusへエクスポートできます。

	r := report.New(report.Config{Interval: time.Second, Logger: log.NewStd()})
	r.Add("upload", s)
	go r.Run(ctx)

	collector := metrics.NewCollector("iomonitor")
	collector.Register(s.ID(), s)
	prometheus.MustRegister(collector)
*/
package iomonitor
