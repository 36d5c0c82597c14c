/*
Package websocket は、WebSocketコネクションをバイトストリームとして扱うアダプターを提供します。

WebSocketライブラリの実装は gorilla、nhooyr パッケージから選択します。

	conn, err := gorilla.Dial(ctx, websocket.DialConfig{
		URL:         "ws://localhost:8080/stream",
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	})
	if err != nil {
		return err
	}
	s := stream.New(websocket.NewStream(ctx, conn))
	defer s.Close()
*/
package websocket
