/*
Package ratecounter は、サンプル数を積算してレートを算出するカウンターを提供します。

Counter は2種類のレートを提供します。

  - AverageVelocity: リセット以降の累計サンプル数 * 1000 / 経過ミリ秒
  - LatestVelocity: 直近の更新間隔内に加算されたサンプル数から算出したレート

LatestVelocity は読み出し時に再計算する方式で、バックグラウンドのタイマーを持ちません。
前回の再計算から更新間隔が経過していない場合は、前回の値をそのまま返却します。

	c := ratecounter.New(time.Second)
	c.Add(1024)
	fmt.Println(c.Total(), c.AverageVelocity(), c.LatestVelocity())
*/
package ratecounter
