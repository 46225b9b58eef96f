package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"railserver/handlers" //ゲーム状態スナップショットと新規ゲームIDのHTTPエンドポイント
	"railserver/rail"     //WebSocket接続とゲームアクションの中継
	"railserver/session"  //ゲームごとの状態と接続の管理
	"railserver/utils"    //ロガーの初期化とCronジョブ(放置ゲームの定期クリーンナップ)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func main() {
	logger, err := utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// 設定ファイルの読み込み。なければデフォルト設定で起動する
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		logger.Warn("設定ファイルの読み込みに失敗したためデフォルト設定で起動します", zap.Error(err))
	}

	// ゲーム状態と接続を一元管理するマネージャを初期化
	manager := session.NewManager(logger)

	// Websocket接続で用いるアップグレーダを初期化
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(manager, time.Duration(config.GameIdleHours)*time.Hour, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//各HTTPリクエストのルーティング
	router.GET("/state/:gameID", func(c *gin.Context) {
		handlers.GameStateHandler(c, manager, logger)
	})
	router.GET("/newGameID", func(c *gin.Context) {
		handlers.NewGameIDHandler(c, logger)
	})
	router.GET("/ws", func(c *gin.Context) {
		rail.HandleConnections(c.Writer, c.Request, manager, logger, upgrader)
	})

	// テスト時はHTTPサーバーとして運用
	router.Run(config.ServerPort)

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
