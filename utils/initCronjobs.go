package utils

import (
	"time"

	"railserver/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronCleaner は放置されたゲームを定期的に破棄するジョブを起動する。
// ゲームの状態は全てメモリ上にあるため、残ったままだと溜まり続ける
func CronCleaner(manager *session.Manager, maxIdle time.Duration, logger *zap.Logger) {
	c := cron.New()

	// 1時間ごとに、更新がなく接続も残っていないゲームを削除する
	c.AddFunc("@hourly", func() {
		removed := manager.CleanupIdleGames(maxIdle)
		if removed > 0 {
			logger.Info("放置されたゲームの削除完了", zap.Int("games_deleted", removed))
		}
	})

	c.Start()
}
