package rail

import (
	"time"

	"railserver/models"

	"go.uber.org/zap"
)

// maintainConnection はクライアントのWebSocket接続を維持し、Ping/Pongメッセージで接続をチェックします。
func maintainConnection(client *models.Client, logger *zap.Logger) {
	defer client.Close() // ゴルーチンが終了する時にWebSocket接続を閉じる

	// Pongハンドラの設定: Pongメッセージを受信したら読み取りデッドラインを更新
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second)) // 60秒の読み取りデッドライン
		return nil
	})

	// 読み取りデッドラインの初期設定（最初のPong待機に使用）
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// Pingの送信間隔を設定
	pingPeriod := 10 * time.Second
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := client.Ping(); err != nil {
			// エラーが発生した場合はゴルーチンを終了
			logger.Info("Ping failed, closing connection", zap.Error(err))
			return
		}
	}
}
