package models

// Config 構造体はサーバーの設定情報を保持します。
type Config struct {
	ServerPort     string   `json:"server_port"`     // 例: ":8080"
	AllowedOrigins []string `json:"allowed_origins"` // CORSで許可するオリジン
	GameIdleHours  int      `json:"game_idle_hours"` // この時間更新がないゲームは削除対象
}

// DefaultConfig は設定ファイルがない場合のデフォルト値を返す
func DefaultConfig() Config {
	return Config{
		ServerPort:     ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		GameIdleHours:  24,
	}
}
