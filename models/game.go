package models

import (
	"encoding/json"
	"fmt"
)

// プレイヤーに割り当てる色。参加順に先頭から割り当てる
var PlayerColors = []string{"blue", "red", "green", "orange", "yellow", "purple"}

// 1ターンに置けるレールの本数
const DefaultRailsLeft = 2

// この値を超えたプレイヤーはゲームオーバー
const MaxPenaltyPoints = 12

// 盤面上の接続点。(x, y) の整数座標
type BoardPoint [2]int

// 2つの接続点を結ぶレール区間。向きは区別しない
type RailSegment [2]BoardPoint

// Player は1ゲーム内の参加者を表す
type Player struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Color         string      `json:"color"`
	PenaltyPoints int         `json:"penaltyPoints"`
	TargetCities  []string    `json:"targetCities"`
	StartingPoint *BoardPoint `json:"startingPoint"` // 未設定の場合はnull
}

// GameState は1ゲームの完全な状態
type GameState struct {
	GameID       string        `json:"gameID"`
	CurrentPhase Phase         `json:"currentState"`
	InitiatorID  string        `json:"initiatorID"`  // 最初に参加したプレイヤー。ゲーム開始権を持つ
	LastWinnerID string        `json:"lastWinnerID"` // 直近のラウンド勝者
	Players      []Player      `json:"players"`      // 並び順 = ターン順
	Board        []RailSegment `json:"board"`        // 置かれたレール区間（重複なし）
}

// Phase はゲームの進行状態を表すタグ付きユニオン。
// JSONでは {"state": "Turn", "playerID": ..., "railsLeft": ...} の形で送る
type Phase interface {
	isPhase()
}

// 参加受付中。各自が開始地点を設定する
type WaitingForPlayers struct{}

// 誰かの手番。railsLeftが尽きるまでレールを置ける
type Turn struct {
	PlayerID  string
	RailsLeft int
}

// ラウンド終了。次ラウンドに向けて開始地点を設定し直す
type EndRound struct {
	WinnerID string
}

// ゲーム終了
type Finish struct {
	WinnerID string
}

func (WaitingForPlayers) isPhase() {}
func (Turn) isPhase()              {}
func (EndRound) isPhase()          {}
func (Finish) isPhase()            {}

func (WaitingForPlayers) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State string `json:"state"`
	}{State: "WaitingForPlayers"})
}

func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State     string `json:"state"`
		PlayerID  string `json:"playerID"`
		RailsLeft int    `json:"railsLeft"`
	}{State: "Turn", PlayerID: t.PlayerID, RailsLeft: t.RailsLeft})
}

func (e EndRound) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State    string `json:"state"`
		WinnerID string `json:"winnerID"`
	}{State: "EndRound", WinnerID: e.WinnerID})
}

func (f Finish) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State    string `json:"state"`
		WinnerID string `json:"winnerID"`
	}{State: "Finish", WinnerID: f.WinnerID})
}

// UnmarshalJSON は currentState のタグを見てPhaseの実体を復元する
func (s *GameState) UnmarshalJSON(data []byte) error {
	type alias GameState
	aux := struct {
		*alias
		CurrentPhase json.RawMessage `json:"currentState"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.CurrentPhase) == 0 || string(aux.CurrentPhase) == "null" {
		s.CurrentPhase = nil
		return nil
	}

	var envelope struct {
		State     string `json:"state"`
		PlayerID  string `json:"playerID"`
		RailsLeft int    `json:"railsLeft"`
		WinnerID  string `json:"winnerID"`
	}
	if err := json.Unmarshal(aux.CurrentPhase, &envelope); err != nil {
		return err
	}

	switch envelope.State {
	case "WaitingForPlayers":
		s.CurrentPhase = WaitingForPlayers{}
	case "Turn":
		s.CurrentPhase = Turn{PlayerID: envelope.PlayerID, RailsLeft: envelope.RailsLeft}
	case "EndRound":
		s.CurrentPhase = EndRound{WinnerID: envelope.WinnerID}
	case "Finish":
		s.CurrentPhase = Finish{WinnerID: envelope.WinnerID}
	default:
		return fmt.Errorf("unknown phase state: %q", envelope.State)
	}
	return nil
}
