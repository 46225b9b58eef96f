package rail

import (
	"net/http"

	"railserver/models"
	"railserver/session"

	"go.uber.org/zap"

	"github.com/gorilla/websocket"
)

// WebSocket接続へのアップグレードを行う関数
func HandleConnections(w http.ResponseWriter, r *http.Request, manager *session.Manager, logger *zap.Logger, upgrader websocket.Upgrader) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// WebSocket接続のアップグレードに失敗
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := &models.Client{Conn: conn}
	logger.Info("New client connected", zap.String("remoteAddr", conn.RemoteAddr().String()))

	// クライアントごとにメッセージ読み取りゴルーチンを起動
	go readMessages(client, manager, logger)

	// Ping/Pongを管理するゴルーチンを起動
	go maintainConnection(client, logger)
}
