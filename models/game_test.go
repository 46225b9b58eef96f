package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestGameStateJSONRoundTrip(t *testing.T) {
	start := BoardPoint{2, 3}
	phases := []Phase{
		WaitingForPlayers{},
		Turn{PlayerID: "p1", RailsLeft: 2},
		EndRound{WinnerID: "p2"},
		Finish{WinnerID: "p1"},
	}

	for _, phase := range phases {
		state := GameState{
			GameID:       "game-1",
			CurrentPhase: phase,
			InitiatorID:  "p1",
			LastWinnerID: "p2",
			Players: []Player{
				{ID: "p1", Name: "Alice", Color: "blue", TargetCities: []string{"London"}, StartingPoint: &start},
				{ID: "p2", Name: "Bob", Color: "red", PenaltyPoints: 4, TargetCities: []string{"Roma"}},
			},
			Board: []RailSegment{{{0, 0}, {1, 0}}},
		}

		data, err := json.Marshal(state)
		if err != nil {
			t.Fatalf("marshal %T: %v", phase, err)
		}

		var decoded GameState
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %T: %v", phase, err)
		}
		if !reflect.DeepEqual(decoded, state) {
			t.Errorf("%T: round trip mismatch\n got %+v\nwant %+v", phase, decoded, state)
		}
	}
}

func TestPhaseMarshalUsesStateTag(t *testing.T) {
	data, err := json.Marshal(GameState{
		GameID:       "game-1",
		CurrentPhase: Turn{PlayerID: "p1", RailsLeft: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"state":"Turn"`, `"playerID":"p1"`, `"railsLeft":1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("marshaled state missing %s: %s", want, data)
		}
	}
}

func TestUnmarshalUnknownPhaseFails(t *testing.T) {
	raw := `{"gameID":"game-1","currentState":{"state":"Paused"}}`
	var state GameState
	if err := json.Unmarshal([]byte(raw), &state); err == nil {
		t.Error("unknown phase tag should fail to decode")
	}
}

func TestUnmarshalNullPhase(t *testing.T) {
	raw := `{"gameID":"game-1","currentState":null}`
	var state GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		t.Fatal(err)
	}
	if state.CurrentPhase != nil {
		t.Errorf("null phase should decode to nil, got %T", state.CurrentPhase)
	}
}
