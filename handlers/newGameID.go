package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewGameIDHandler は新しいゲームIDを発行する。
// IDは不透明な文字列で、衝突チェックはしない（未知のIDは遅延初期化されるため）
func NewGameIDHandler(c *gin.Context, logger *zap.Logger) {
	gameID := uuid.New().String()
	logger.Info("New game ID issued", zap.String("gameID", gameID))
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   gameID,
	})
}
