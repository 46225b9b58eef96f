package rail

import (
	"encoding/json"

	"railserver/models"
	"railserver/session"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// クライアントごとのメッセージ読み取りループ。
// 受信フレームは {gameID, action} のJSON。壊れたフレームはログに残して
// 読み飛ばすだけで、接続は切らない
func readMessages(client *models.Client, manager *session.Manager, logger *zap.Logger) {
	defer func() {
		client.Close()
		// 切断時はそのプレイヤーの退出として処理する
		manager.HandleDisconnect(client)
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		var payload models.WSPayload
		if err := json.Unmarshal(message, &payload); err != nil {
			logger.Error("Error decoding message", zap.Error(err))
			continue
		}
		if payload.GameID == "" {
			logger.Error("Received message without gameID")
			continue
		}

		switch payload.Action.Type {
		case models.ActionAddPlayer,
			models.ActionRemovePlayer,
			models.ActionSetStartingPoint,
			models.ActionStartGame,
			models.ActionPlaceRail:
			manager.Dispatch(payload.GameID, client, payload.Action)
		default:
			logger.Info("Received unknown action type", zap.String("type", payload.Action.Type))
		}
	}
}
