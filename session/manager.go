package session

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"railserver/engine"
	"railserver/models"

	"go.uber.org/zap"
)

// userConn はプレイヤーIDに紐づくWebSocket接続と参加中のゲーム
type userConn struct {
	gameID string
	client *models.Client
}

// gameEntry は1ゲームの状態と、そのゲーム専用のロック・乱数源。
// muがディスパッチの読み取り・検証・遷移・書き込みを直列化する
type gameEntry struct {
	mu         sync.Mutex
	state      models.GameState
	rng        *rand.Rand
	lastActive time.Time
}

// Manager はゲームIDごとの状態と、プレイヤーID→接続の対応表を持つ。
// ハンドラにはこのManagerを渡し、グローバル変数としては参照しない
type Manager struct {
	mu     sync.Mutex
	games  map[string]*gameEntry
	conns  map[string]*userConn
	logger *zap.Logger

	// テストで決定的な乱数源に差し替えられるようにしておく
	newRand func() *rand.Rand
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		games:   make(map[string]*gameEntry),
		conns:   make(map[string]*userConn),
		logger:  logger,
		newRand: createLocalRandGenerator,
	}
}

func createLocalRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}

// entry はゲームIDに対応するエントリを返す。存在しなければ空のゲームを作る
func (m *Manager) entry(gameID string) *gameEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[gameID]; ok {
		return e
	}
	e := &gameEntry{
		state:      engine.NewGameState(gameID),
		rng:        m.newRand(),
		lastActive: time.Now(),
	}
	m.games[gameID] = e
	m.logger.Info("New game created", zap.String("gameID", gameID))
	return e
}

// TryGetGameState は現在の状態を返す。未知のIDはその場で空のゲームとして作る
func (m *Manager) TryGetGameState(gameID string) models.GameState {
	e := m.entry(gameID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Dispatch はアクションを該当ゲームのreducerに通し、結果の状態を
// そのゲームの全接続にブロードキャストする。
// ADD_PLAYER/REMOVE_PLAYERの際には接続の対応表も更新する
func (m *Manager) Dispatch(gameID string, client *models.Client, action models.GameStateAction) {
	e := m.entry(gameID)

	actingID := m.actingPlayerID(client, action)

	e.mu.Lock()
	if action.Type == models.ActionAddPlayer {
		// プレイヤーの生成（色の割り当てと都市の抽選）はサーバー側で行う
		if player, ok := engine.CreatePlayer(e.state, action.ID, action.Name, e.rng); ok {
			action.Player = &player
		}
	}

	accepted := engine.CanPerformAction(e.state, action, actingID)
	if !accepted {
		// 不正なアクションは黙って無視する。状態は変えない
		m.logger.Info("Action rejected",
			zap.String("gameID", gameID),
			zap.String("type", action.Type),
			zap.String("actingPlayerID", actingID),
		)
	}

	e.state = engine.Reduce(e.state, action, actingID, e.rng)
	e.lastActive = time.Now()
	newState := e.state
	stateJSON, err := json.Marshal(newState)
	e.mu.Unlock()

	if err != nil {
		m.logger.Error("Failed to marshal game state", zap.Error(err))
		return
	}

	switch action.Type {
	case models.ActionAddPlayer:
		// 参加が受理された場合のみ接続を登録する
		if accepted && client != nil {
			m.mu.Lock()
			m.conns[action.ID] = &userConn{gameID: gameID, client: client}
			m.mu.Unlock()
		}
	case models.ActionRemovePlayer:
		if accepted {
			m.mu.Lock()
			delete(m.conns, action.ID)
			// 最後のプレイヤーが抜けたらゲームも同期的に破棄する
			if len(newState.Players) == 0 {
				delete(m.games, gameID)
				m.logger.Info("Game removed", zap.String("gameID", gameID))
			}
			m.mu.Unlock()
		}
	}

	m.broadcast(gameID, newState.Players, stateJSON)
}

// HandleDisconnect は切断された接続のプレイヤーを探し、
// REMOVE_PLAYERを合成してディスパッチする。該当がなければ何もしない
func (m *Manager) HandleDisconnect(client *models.Client) {
	m.mu.Lock()
	playerID := ""
	gameID := ""
	for id, uc := range m.conns {
		if uc.client == client {
			playerID = id
			gameID = uc.gameID
			break
		}
	}
	m.mu.Unlock()

	if playerID == "" {
		return
	}
	m.logger.Info("Client disconnected, removing player",
		zap.String("playerID", playerID),
		zap.String("gameID", gameID),
	)
	m.Dispatch(gameID, client, models.GameStateAction{
		Type: models.ActionRemovePlayer,
		ID:   playerID,
	})
}

// actingPlayerID はアクションの主体を解決する。
// IDを持つアクションは名乗られたIDをそのまま信用し（認証は範囲外）、
// START_GAME/PLACE_RAILは接続の対応表から逆引きする
func (m *Manager) actingPlayerID(client *models.Client, action models.GameStateAction) string {
	switch action.Type {
	case models.ActionAddPlayer, models.ActionRemovePlayer, models.ActionSetStartingPoint:
		return action.ID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, uc := range m.conns {
		if uc.client == client {
			return id
		}
	}
	return ""
}

// broadcast は状態をゲームの参加者全員に送る。
// 一部の接続への送信失敗は記録するだけで、他の接続への配信は続ける
func (m *Manager) broadcast(gameID string, players []models.Player, data []byte) {
	type recipient struct {
		playerID string
		client   *models.Client
	}
	var recipients []recipient

	m.mu.Lock()
	for _, p := range players {
		if uc, ok := m.conns[p.ID]; ok && uc.gameID == gameID && uc.client != nil {
			recipients = append(recipients, recipient{playerID: p.ID, client: uc.client})
		}
	}
	m.mu.Unlock()

	for _, r := range recipients {
		if err := r.client.Send(data); err != nil {
			m.logger.Error("Failed to broadcast game state",
				zap.String("gameID", gameID),
				zap.String("to", r.playerID),
				zap.Error(err),
			)
		}
	}
}

// CleanupIdleGames は一定時間更新がなく、接続も残っていないゲームを
// 破棄する。削除した数を返す
func (m *Manager) CleanupIdleGames(maxIdle time.Duration) int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for gameID, e := range m.games {
		e.mu.Lock()
		idle := now.Sub(e.lastActive) > maxIdle
		e.mu.Unlock()
		if !idle {
			continue
		}
		hasConn := false
		for _, uc := range m.conns {
			if uc.gameID == gameID {
				hasConn = true
				break
			}
		}
		if !hasConn {
			delete(m.games, gameID)
			removed++
		}
	}
	return removed
}
