package rail

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"railserver/models"
	"railserver/session"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*session.Manager, *websocket.Conn) {
	t.Helper()
	logger := zap.NewNop()
	manager := session.NewManager(logger)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleConnections(w, r, manager, logger, upgrader)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return manager, conn
}

func sendAction(t *testing.T, conn *websocket.Conn, gameID string, action models.GameStateAction) {
	t.Helper()
	payload := models.WSPayload{GameID: gameID, Action: action}
	if err := conn.WriteJSON(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readState(t *testing.T, conn *websocket.Conn) models.GameState {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var state models.GameState
	if err := json.Unmarshal(message, &state); err != nil {
		t.Fatalf("decode broadcast: %v", err)
	}
	return state
}

func TestJoinBroadcastsState(t *testing.T) {
	_, conn := newTestServer(t)

	sendAction(t, conn, "game-1", models.GameStateAction{
		Type: models.ActionAddPlayer,
		ID:   "p1",
		Name: "Alice",
	})

	state := readState(t, conn)
	if state.GameID != "game-1" {
		t.Errorf("gameID: got %q, want game-1", state.GameID)
	}
	if len(state.Players) != 1 || state.Players[0].ID != "p1" {
		t.Fatalf("expected p1 in broadcast state, got %v", state.Players)
	}
	if state.Players[0].Color == "" || len(state.Players[0].TargetCities) == 0 {
		t.Errorf("server should assign color and target cities: %+v", state.Players[0])
	}
	if _, ok := state.CurrentPhase.(models.WaitingForPlayers); !ok {
		t.Errorf("expected WaitingForPlayers, got %T", state.CurrentPhase)
	}
}

func TestMalformedFrameIsIgnored(t *testing.T) {
	_, conn := newTestServer(t)

	// 壊れたJSON、gameIDなし、未知のアクション。いずれも接続は生き続ける
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	sendAction(t, conn, "", models.GameStateAction{Type: models.ActionAddPlayer, ID: "p1", Name: "Alice"})
	sendAction(t, conn, "game-1", models.GameStateAction{Type: "SET_STATE"})

	sendAction(t, conn, "game-1", models.GameStateAction{
		Type: models.ActionAddPlayer,
		ID:   "p1",
		Name: "Alice",
	})
	state := readState(t, conn)
	if len(state.Players) != 1 {
		t.Errorf("join after malformed frames should still work: %v", state.Players)
	}
}

func TestDisconnectRemovesPlayer(t *testing.T) {
	manager, conn := newTestServer(t)

	sendAction(t, conn, "game-1", models.GameStateAction{
		Type: models.ActionAddPlayer,
		ID:   "p1",
		Name: "Alice",
	})
	readState(t, conn)

	conn.Close()

	// 切断処理は読み取りゴルーチン側で非同期に走る
	deadline := time.Now().Add(5 * time.Second)
	for {
		if len(manager.TryGetGameState("game-1").Players) == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("player was not removed after disconnect: %v",
				manager.TryGetGameState("game-1").Players)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
