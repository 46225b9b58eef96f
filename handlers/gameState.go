package handlers

import (
	"net/http"

	"railserver/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GameStateHandler は現在のゲーム状態のスナップショットを返す。
// 未知のIDでも404にはせず、その場で空のゲームを作って返す
func GameStateHandler(c *gin.Context, manager *session.Manager, logger *zap.Logger) {
	gameID := c.Param("gameID")
	state := manager.TryGetGameState(gameID)
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   state,
	})
}
