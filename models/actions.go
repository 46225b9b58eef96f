package models

// アクション種別
const (
	ActionAddPlayer        = "ADD_PLAYER"
	ActionRemovePlayer     = "REMOVE_PLAYER"
	ActionSetStartingPoint = "SET_STARTING_POINT"
	ActionStartGame        = "START_GAME"
	ActionPlaceRail        = "PLACE_RAIL"
)

// GameStateAction はクライアントから送られるアクションのタグ付きユニオン。
// Typeに応じて使われるフィールドが決まる
type GameStateAction struct {
	Type     string       `json:"type"`
	ID       string       `json:"id,omitempty"`       // ADD_PLAYER / REMOVE_PLAYER / SET_STARTING_POINT
	Name     string       `json:"name,omitempty"`     // ADD_PLAYER
	Position *BoardPoint  `json:"position,omitempty"` // SET_STARTING_POINT
	Rail     *RailSegment `json:"rail,omitempty"`     // PLACE_RAIL

	// ADD_PLAYER受理時にサーバー側で生成されるプレイヤー。ワイヤには乗らない
	Player *Player `json:"-"`
}

// WSPayload はWebSocketの受信フレーム
type WSPayload struct {
	GameID string          `json:"gameID"`
	Action GameStateAction `json:"action"`
}
