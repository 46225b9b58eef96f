package engine

import (
	"math/rand"

	"railserver/gamemap"
	"railserver/models"
)

// CanPerformAction はゲームルールの検証器。
// 「そのプレイヤーがその状態でそのアクションを実行できるか」を判定する。
// 純粋な述語で副作用を持たないため、UI側のヒント表示にもそのまま使える
func CanPerformAction(state models.GameState, action models.GameStateAction, actingPlayerID string) bool {
	switch action.Type {
	case models.ActionAddPlayer:
		if action.Player == nil {
			return false
		}
		if _, ok := state.CurrentPhase.(models.WaitingForPlayers); !ok {
			return false
		}
		// 色の数が参加可能人数の上限
		if len(state.Players) >= len(models.PlayerColors) {
			return false
		}
		for _, p := range state.Players {
			if p.ID == action.Player.ID || p.Name == action.Player.Name || p.Color == action.Player.Color {
				return false
			}
			// 目的都市は全プレイヤー間で互いに素でなければならない
			for _, city := range p.TargetCities {
				if containsCity(action.Player.TargetCities, city) {
					return false
				}
			}
		}
		return true

	case models.ActionRemovePlayer:
		// 削除できるのは自分自身のみ
		return action.ID == actingPlayerID

	case models.ActionSetStartingPoint:
		if action.ID != actingPlayerID || action.Position == nil {
			return false
		}
		switch state.CurrentPhase.(type) {
		case models.WaitingForPlayers, models.EndRound:
		default:
			return false
		}
		if !gamemap.IsVertex(*action.Position) {
			return false
		}
		if PlayerByID(state, action.ID) == nil {
			return false
		}
		// 他のプレイヤーが既に確保している点には置けない
		for _, p := range state.Players {
			if p.ID != action.ID && p.StartingPoint != nil && gamemap.SamePoint(*p.StartingPoint, *action.Position) {
				return false
			}
		}
		return true

	case models.ActionStartGame:
		// ゲームを開始できるのは最初に参加したプレイヤーのみ
		if state.InitiatorID == "" || actingPlayerID != state.InitiatorID {
			return false
		}
		switch state.CurrentPhase.(type) {
		case models.WaitingForPlayers, models.EndRound:
		default:
			return false
		}
		if len(state.Players) == 0 {
			return false
		}
		for _, p := range state.Players {
			if p.StartingPoint == nil {
				return false
			}
		}
		return true

	case models.ActionPlaceRail:
		turn, ok := state.CurrentPhase.(models.Turn)
		if !ok {
			return false
		}
		if actingPlayerID != turn.PlayerID {
			return false
		}
		if action.Rail == nil {
			return false
		}
		cost, ok := gamemap.PieceCost(*action.Rail)
		if !ok {
			// 候補にない区間は置けない
			return false
		}
		if turn.RailsLeft-cost < 0 {
			return false
		}
		return IsSegmentReachable(state, *action.Rail, actingPlayerID)
	}

	return false
}

// IsSegmentReachable は区間の少なくとも一端がプレイヤーの路線網
// （開始地点から敷設済みレールで到達できる点の集合）に接しているかを返す
func IsSegmentReachable(state models.GameState, rail models.RailSegment, playerID string) bool {
	player := PlayerByID(state, playerID)
	if player == nil || player.StartingPoint == nil {
		return false
	}

	distances, _ := Dijkstra(state.Board, *player.StartingPoint, nil)
	_, reachA := distances[rail[0]]
	_, reachB := distances[rail[1]]
	return reachA || reachB
}

// FindWinnerPlayers は勝利条件を満たしているプレイヤーを返す。
// 開始地点から全ての目的都市に敷設済みレールだけで到達できれば勝ち
func FindWinnerPlayers(state models.GameState) []models.Player {
	var winners []models.Player
	for _, player := range state.Players {
		if player.StartingPoint == nil {
			continue
		}
		distances, _ := Dijkstra(state.Board, *player.StartingPoint, nil)
		all := true
		for _, name := range player.TargetCities {
			city, ok := gamemap.CityByName(name)
			if !ok {
				all = false
				break
			}
			if _, reached := distances[city.Position]; !reached {
				all = false
				break
			}
		}
		if all {
			winners = append(winners, player)
		}
	}
	return winners
}

// CreatePlayer は新しいプレイヤーを生成する。
// 色は参加順に割り当て、目的都市は他プレイヤーと重複しないように
// 色グループごとに1都市ずつランダムに引く。空きがない場合は ok=false
func CreatePlayer(state models.GameState, id, name string, rng *rand.Rand) (models.Player, bool) {
	if len(state.Players) >= len(models.PlayerColors) {
		return models.Player{}, false
	}

	taken := map[string]bool{}
	for _, p := range state.Players {
		for _, city := range p.TargetCities {
			taken[city] = true
		}
	}
	targets, ok := DrawTargetCities(taken, rng)
	if !ok {
		return models.Player{}, false
	}

	return models.Player{
		ID:           id,
		Name:         name,
		Color:        models.PlayerColors[len(state.Players)],
		TargetCities: targets,
	}, true
}

// DrawTargetCities は色グループごとに1都市をランダムに選ぶ。
// takenに含まれる都市は除外し、選んだ都市をtakenに追記する
func DrawTargetCities(taken map[string]bool, rng *rand.Rand) ([]string, bool) {
	cities := make([]string, 0, len(gamemap.CityColors))
	for _, color := range gamemap.CityColors {
		var free []gamemap.City
		for _, city := range gamemap.Cities {
			if city.Color == color && !taken[city.Name] {
				free = append(free, city)
			}
		}
		if len(free) == 0 {
			return nil, false
		}
		pick := free[rng.Intn(len(free))]
		cities = append(cities, pick.Name)
		taken[pick.Name] = true
	}
	return cities, true
}

// PlayerByID はIDからプレイヤーを引く。見つからなければnil
func PlayerByID(state models.GameState, id string) *models.Player {
	for i := range state.Players {
		if state.Players[i].ID == id {
			return &state.Players[i]
		}
	}
	return nil
}

// IsEligible はプレイヤーがまだ手番を持てるか（ペナルティ上限以内か）を返す
func IsEligible(player models.Player) bool {
	return player.PenaltyPoints <= models.MaxPenaltyPoints
}

// InitialTurnPlayerID は開始時の手番プレイヤーを返す。
// 原則は最初に参加したプレイヤーで、脱落している場合は次の有効なプレイヤー
func InitialTurnPlayerID(state models.GameState) string {
	if initiator := PlayerByID(state, state.InitiatorID); initiator != nil && IsEligible(*initiator) {
		return initiator.ID
	}
	for _, p := range state.Players {
		if IsEligible(p) {
			return p.ID
		}
	}
	return state.Players[0].ID
}

// NextTurnPlayerID は次の手番プレイヤーを返す。
// 参加順に巡回し、ペナルティ上限を超えたプレイヤーは飛ばす
func NextTurnPlayerID(state models.GameState, currentID string) string {
	current := 0
	for i, p := range state.Players {
		if p.ID == currentID {
			current = i
			break
		}
	}
	for offset := 1; offset <= len(state.Players); offset++ {
		next := state.Players[(current+offset)%len(state.Players)]
		if IsEligible(next) {
			return next.ID
		}
	}
	return currentID
}

func containsCity(cities []string, name string) bool {
	for _, city := range cities {
		if city == name {
			return true
		}
	}
	return false
}
