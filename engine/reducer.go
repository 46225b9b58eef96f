package engine

import (
	"math/rand"

	"railserver/gamemap"
	"railserver/models"
)

// NewGameState はプレイヤー0人の初期状態を返す
func NewGameState(gameID string) models.GameState {
	return models.GameState{
		GameID:       gameID,
		CurrentPhase: models.WaitingForPlayers{},
		Players:      []models.Player{},
		Board:        []models.RailSegment{},
	}
}

// Reduce はゲームの状態遷移を行う決定的な状態機械。
// 必ずCanPerformActionで再検証し、不正なアクションなら元の状態を
// そのまま返す（例外は投げない）。受理した場合は新しい状態を返し、
// 引数のstateは変更しない。
// rngはADD_PLAYERの都市抽選とラウンド終了時の配り直しにのみ使われる
func Reduce(state models.GameState, action models.GameStateAction, actingPlayerID string, rng *rand.Rand) models.GameState {
	if !CanPerformAction(state, action, actingPlayerID) {
		return state
	}

	switch action.Type {
	case models.ActionAddPlayer:
		next := cloneState(state)
		if next.InitiatorID == "" {
			next.InitiatorID = action.Player.ID
		}
		next.Players = append(next.Players, *action.Player)
		return next

	case models.ActionRemovePlayer:
		next := cloneState(state)
		players := next.Players[:0]
		for _, p := range next.Players {
			if p.ID != action.ID {
				players = append(players, p)
			}
		}
		next.Players = players
		// 開始権を持つプレイヤーが抜けた場合は残りの先頭に引き継ぐ
		if next.InitiatorID == action.ID {
			if len(next.Players) > 0 {
				next.InitiatorID = next.Players[0].ID
			} else {
				next.InitiatorID = ""
			}
		}
		return next

	case models.ActionSetStartingPoint:
		next := cloneState(state)
		for i := range next.Players {
			if next.Players[i].ID == action.ID {
				point := *action.Position
				next.Players[i].StartingPoint = &point
			}
		}
		return next

	case models.ActionStartGame:
		next := cloneState(state)
		next.CurrentPhase = models.Turn{
			PlayerID:  InitialTurnPlayerID(next),
			RailsLeft: models.DefaultRailsLeft,
		}
		return next

	case models.ActionPlaceRail:
		return placeRail(state, *action.Rail, rng)
	}

	return state
}

func placeRail(state models.GameState, rail models.RailSegment, rng *rand.Rand) models.GameState {
	turn := state.CurrentPhase.(models.Turn)
	cost, _ := gamemap.PieceCost(rail)

	next := cloneState(state)
	next.Board = appendSegment(next.Board, rail)

	railsLeft := turn.RailsLeft - cost
	if railsLeft <= 0 {
		// レールを使い切ったので次の有効なプレイヤーに手番を渡す
		next.CurrentPhase = models.Turn{
			PlayerID:  NextTurnPlayerID(next, turn.PlayerID),
			RailsLeft: models.DefaultRailsLeft,
		}
	} else {
		next.CurrentPhase = models.Turn{PlayerID: turn.PlayerID, RailsLeft: railsLeft}
	}

	// 勝利判定は新しい区間を反映した状態でしかできない
	winners := FindWinnerPlayers(next)
	if len(winners) == 0 {
		return next
	}
	// 同時に複数勝者が出る盤面は想定していないため、先頭を採用する
	return finishRound(next, winners[0].ID, rng)
}

// finishRound はラウンド終了処理。ペナルティ加算、目的都市の配り直し、
// 開始地点と盤面のリセットを行い、EndRoundまたはFinishに遷移する
func finishRound(state models.GameState, winnerID string, rng *rand.Rand) models.GameState {
	// ペナルティ計算は盤面をクリアする前に行う
	for i := range state.Players {
		state.Players[i].PenaltyPoints += roundPenalty(state, state.Players[i])
	}

	// 目的都市を配り直す。同じ配り直しの中でも重複させない
	taken := map[string]bool{}
	for i := range state.Players {
		if cities, ok := DrawTargetCities(taken, rng); ok {
			state.Players[i].TargetCities = cities
		}
		state.Players[i].StartingPoint = nil
	}

	state.Board = []models.RailSegment{}
	state.LastWinnerID = winnerID

	remaining := 0
	for _, p := range state.Players {
		if IsEligible(p) {
			remaining++
		}
	}
	if remaining <= 1 {
		state.CurrentPhase = models.Finish{WinnerID: winnerID}
	} else {
		state.CurrentPhase = models.EndRound{WinnerID: winnerID}
	}
	return state
}

// roundPenalty は未到達の目的都市ごとに、その都市からプレイヤーの
// 路線網の最寄り点までの最短コスト（ダブル区間は2）を合算する。
// どうやっても届かない都市は上限値で打ち切る
func roundPenalty(state models.GameState, player models.Player) int {
	reached := map[models.BoardPoint]int{}
	if player.StartingPoint != nil {
		reached, _ = Dijkstra(state.Board, *player.StartingPoint, nil)
	}

	pieceWeight := func(rail models.RailSegment) int {
		cost, ok := gamemap.PieceCost(rail)
		if !ok {
			return 1
		}
		return cost
	}

	total := 0
	for _, name := range player.TargetCities {
		city, ok := gamemap.CityByName(name)
		if !ok {
			continue
		}
		if _, connected := reached[city.Position]; connected {
			continue // 到達済みの都市にペナルティはない
		}

		distances, _ := Dijkstra(gamemap.CandidateSegments(), city.Position, pieceWeight)
		best := models.MaxPenaltyPoints
		for point := range reached {
			if d, ok := distances[point]; ok && d < best {
				best = d
			}
		}
		total += best
	}
	return total
}

func appendSegment(board []models.RailSegment, rail models.RailSegment) []models.RailSegment {
	for _, segment := range board {
		if gamemap.SameSegment(segment, rail) {
			return board
		}
	}
	return append(board, rail)
}

// cloneState はプレイヤーと盤面のスライスまで複製した状態のコピーを返す。
// Reduceが元の状態を書き換えないための下支え
func cloneState(state models.GameState) models.GameState {
	next := state
	next.Players = make([]models.Player, len(state.Players))
	for i, p := range state.Players {
		clone := p
		clone.TargetCities = append([]string(nil), p.TargetCities...)
		if p.StartingPoint != nil {
			point := *p.StartingPoint
			clone.StartingPoint = &point
		}
		next.Players[i] = clone
	}
	next.Board = append([]models.RailSegment(nil), state.Board...)
	return next
}
