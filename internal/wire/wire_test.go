package wire

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/config"
	"github.com/vovakirdan/ufo-race/internal/core"
)

func TestEncodeFields(t *testing.T) {
	data, err := Encode(arena.RoleTop, arena.ShipState{
		X: 64, Y: 150, Score: 90, Teleported: true,
		Projectiles: []core.Point{{X: 85, Y: 150}},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	for _, key := range []string{"role", "x", "y", "score", "isTeleported", "bullets"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in %s", key, data)
		}
	}
	if raw["role"] != 1.0 || raw["isTeleported"] != true {
		t.Errorf("Unexpected role or flag in %s", data)
	}
}

func TestEncodeEmptyBulletsIsArray(t *testing.T) {
	data, err := Encode(arena.RoleBottom, arena.ShipState{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if string(raw["bullets"]) != "[]" {
		t.Errorf("Expected bullets [], got %s", raw["bullets"])
	}
}

func TestEncodeRejectsInvalidRole(t *testing.T) {
	if _, err := Encode(arena.RoleNone, arena.ShipState{}); err == nil {
		t.Error("Expected error for role 0")
	}
}

func TestDecodeIgnoresOwnRole(t *testing.T) {
	data, err := Encode(arena.RoleTop, arena.ShipState{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, ok, err := Decode(data, arena.RoleTop)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ok {
		t.Error("Expected own echo to be ignored")
	}
}

func TestDecodeIgnoresMissingOrBadRole(t *testing.T) {
	for _, msg := range []string{
		`{"x": 1, "y": 2}`,
		`{"role": 7, "x": 1}`,
		`{"role": 1.5, "x": 1}`,
	} {
		_, ok, err := Decode([]byte(msg), arena.RoleBottom)
		if err != nil {
			t.Errorf("Decode(%s) returned error %v", msg, err)
		}
		if ok {
			t.Errorf("Expected %s to be ignored", msg)
		}
	}
}

func TestRoundTripIntoMirror(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	sender, err := arena.NewSession(cfg, arena.RoleTop, 1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	receiver, err := arena.NewSession(cfg, arena.RoleBottom, 2)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	sender.SetThrust(1)
	sender.Step()
	sender.Fire(1)
	sender.Fire(-1)

	data, err := Encode(sender.Role(), sender.LocalState())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	u, ok, err := Decode(data, receiver.Role())
	if err != nil || !ok {
		t.Fatalf("Expected update, got ok=%v err=%v", ok, err)
	}
	receiver.ApplyPeer(u)

	want := sender.Ship(arena.RoleTop)
	got := receiver.Ship(arena.RoleTop)
	if got.X != want.X || got.Y != want.Y || got.Score != want.Score || got.Teleported != want.Teleported {
		t.Errorf("Expected mirror %+v, got %+v", want, got)
	}

	sent := sender.Projectiles(arena.RoleTop)
	mirrored := receiver.Projectiles(arena.RoleTop)
	if len(mirrored) != len(sent) {
		t.Fatalf("Expected %d mirrored projectiles, got %d", len(sent), len(mirrored))
	}
	for i := range sent {
		if mirrored[i].X != sent[i].X || mirrored[i].Y != sent[i].Y {
			t.Errorf("Projectile %d: expected (%v,%v), got (%v,%v)",
				i, sent[i].X, sent[i].Y, mirrored[i].X, mirrored[i].Y)
		}
		if mirrored[i].DX != 0 || mirrored[i].DY != 0 {
			t.Errorf("Expected placeholder with zero velocity, got (%v,%v)", mirrored[i].DX, mirrored[i].DY)
		}
	}
}

func TestDecodeMissingFields(t *testing.T) {
	u, ok, err := Decode([]byte(`{"role": 2, "y": 321}`), arena.RoleTop)
	if err != nil || !ok {
		t.Fatalf("Expected update, got ok=%v err=%v", ok, err)
	}
	if u.X != nil || u.Score != nil {
		t.Error("Expected absent x and score to stay unset")
	}
	if u.Y == nil || *u.Y != 321 {
		t.Errorf("Expected y=321, got %v", u.Y)
	}
	if u.Teleported {
		t.Error("Expected teleported to default to false")
	}
	if len(u.Projectiles) != 0 {
		t.Errorf("Expected no projectiles, got %d", len(u.Projectiles))
	}
}

func TestDecodeScoreAndBullets(t *testing.T) {
	msg := `{"role":1,"x":10,"y":20,"score":-100,"isTeleported":true,"bullets":[{"x":1,"y":2},{"x":3},{"x":5,"y":6}]}`
	u, ok, err := Decode([]byte(msg), arena.RoleBottom)
	if err != nil || !ok {
		t.Fatalf("Expected update, got ok=%v err=%v", ok, err)
	}
	if u.Score == nil || *u.Score != -100 {
		t.Errorf("Expected score -100, got %v", u.Score)
	}
	if !u.Teleported {
		t.Error("Expected teleported flag")
	}
	if len(u.Projectiles) != 2 || u.Projectiles[1] != (core.Point{X: 5, Y: 6}) {
		t.Errorf("Expected bullets without coordinates skipped, got %+v", u.Projectiles)
	}
}

func TestDecodeOutOfRangeScoreIsAbsent(t *testing.T) {
	for _, score := range []string{"1e300", "-1e300", "3000000000"} {
		msg := `{"role":1,"x":10,"y":20,"score":` + score + `}`
		u, ok, err := Decode([]byte(msg), arena.RoleBottom)
		if err != nil || !ok {
			t.Fatalf("Expected update for score %s, got ok=%v err=%v", score, ok, err)
		}
		if u.Score != nil {
			t.Errorf("Expected score %s treated as absent, got %d", score, *u.Score)
		}
		if u.X == nil || *u.X != 10 {
			t.Errorf("Expected other fields kept for score %s, got %v", score, u.X)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, _, err := Decode(nil, arena.RoleTop); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
	for _, msg := range []string{`{"role":`, `[1,2,3]`, `"hello"`, `{"role":2,"x":"left"}`} {
		if _, ok, err := Decode([]byte(msg), arena.RoleTop); err == nil || ok {
			t.Errorf("Expected error for %s, got ok=%v err=%v", msg, ok, err)
		}
	}
}
