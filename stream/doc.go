/*
Package stream は、バイトストリームの読み書きを計測するラッパーを提供します。

Stream は下位ストリームへの操作をそのまま委譲し、成功した書き込みのバイト数を送信カウンターへ、
読み込んだバイト数を受信カウンターへ加算します。再送、バッファリング、流量制御は行いません。

	f, err := os.Open("data.bin")
	if err != nil {
		return err
	}
	s := stream.New(f, stream.WithUpdateInterval(500*time.Millisecond))
	defer s.Close()

	if _, err := io.Copy(io.Discard, s); err != nil {
		return err
	}
	fmt.Println(s.Received().Total(), s.Received().AverageVelocity())
*/
package stream
