package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/config"
	"github.com/vovakirdan/ufo-race/internal/core"
	"github.com/vovakirdan/ufo-race/internal/storage"
)

func newTestSession(t *testing.T, role arena.Role) *arena.Session {
	t.Helper()
	cfg := config.DefaultArenaConfig()
	cfg.Hazards.AttackRate = 1_000_000
	s, err := arena.NewSession(cfg, role, 1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Expected Model, got %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey("w"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey("s"), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionFireLeft},
		{runeKey("d"), core.ActionFireRight},
		{runeKey("p"), core.ActionPause},
		{runeKey("r"), core.ActionReset},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("x"), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q): expected %v, got %v", tt.msg.String(), tt.want, got)
		}
	}
}

func TestRoleForUser(t *testing.T) {
	tests := map[string]arena.Role{
		"p1":    arena.RoleTop,
		"TOP":   arena.RoleTop,
		"1":     arena.RoleTop,
		"p2":    arena.RoleBottom,
		"alice": arena.RoleBottom,
		"":      arena.RoleBottom,
	}
	for user, want := range tests {
		if got := RoleForUser(user); got != want {
			t.Errorf("RoleForUser(%q): expected %v, got %v", user, want, got)
		}
	}
}

func TestDrawArenaShowsBothPlayers(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	scr := core.NewScreen(80, 24)
	DrawArena(scr, s, ArenaStatus{Offline: true})

	if top := scr.Row(0); !strings.Contains(top, "P1*") || !strings.Contains(top, " 100") {
		t.Errorf("Expected local HUD on the first row, got %q", top)
	}
	if bottom := scr.Row(23); !strings.Contains(bottom, "P2") || !strings.Contains(bottom, "OFFLINE") {
		t.Errorf("Expected remote HUD with OFFLINE on the last row, got %q", bottom)
	}
	ships := strings.Count(scr.String(), ShipGlyph)
	if ships != 2 {
		t.Errorf("Expected 2 ships drawn, got %d", ships)
	}
}

func TestDrawArenaGameOverPopup(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	score := -1
	s.ApplyPeer(arena.PeerUpdate{Score: &score})
	s.Step()

	scr := core.NewScreen(80, 24)
	DrawArena(scr, s, ArenaStatus{})
	out := scr.String()
	if !strings.Contains(out, "game over") || !strings.Contains(out, "Player 1 wins!!") {
		t.Errorf("Expected game over popup naming Player 1, got:\n%s", out)
	}
}

func TestDrawArenaTooSmall(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	scr := core.NewScreen(10, 3)
	DrawArena(scr, s, ArenaStatus{})
	if !strings.HasPrefix(scr.Row(0), "terminal") {
		t.Errorf("Expected size warning, got %q", scr.String())
	}
}

func TestModelThrustHoldsForFewTicks(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	m := NewModel(Options{Session: s, Width: 80, Height: 24})
	startY := s.Ship(arena.RoleTop).Y

	m, _ = update(t, m, runeKey("w"))
	m = tick(t, m)
	if y := s.Ship(arena.RoleTop).Y; y >= startY {
		t.Fatalf("Expected ship to move up from %v, got %v", startY, y)
	}

	for i := 0; i < m.holdTicks+2; i++ {
		m = tick(t, m)
	}
	y := s.Ship(arena.RoleTop).Y
	m = tick(t, m)
	if got := s.Ship(arena.RoleTop).Y; got != y {
		t.Errorf("Expected ship to stop after the hold expired, moved from %v to %v", y, got)
	}
}

func TestModelPauseAndFire(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	m := NewModel(Options{Session: s, Width: 80, Height: 24})

	m, _ = update(t, m, runeKey("d"))
	if n := len(s.Projectiles(arena.RoleTop)); n != 1 {
		t.Fatalf("Expected fire on key press, got %d projectiles", n)
	}
	m, _ = update(t, m, runeKey("a"))
	if n := len(s.Projectiles(arena.RoleTop)); n != 2 {
		t.Fatalf("Expected a second shot within the same tick, got %d projectiles", n)
	}
	m = tick(t, m)
	if n := len(s.Projectiles(arena.RoleTop)); n != 2 {
		t.Fatalf("Expected tick not to fire again, got %d projectiles", n)
	}

	m, _ = update(t, m, runeKey("p"))
	m = tick(t, m)
	if !s.Paused() {
		t.Fatal("Expected session to be paused")
	}
	before := s.Tick()
	m = tick(t, m)
	if s.Tick() != before {
		t.Errorf("Expected tick to stay at %d while paused, got %d", before, s.Tick())
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("Expected pause popup in view")
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	s := newTestSession(t, arena.RoleBottom)
	m := NewModel(Options{Session: s, Store: store, Width: 80, Height: 24})

	score := -5
	s.ApplyPeer(arena.PeerUpdate{Score: &score})
	m = tick(t, m)
	m = tick(t, m)

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 saved result, got %d", len(results))
	}
	r := results[0]
	if r.Role != 2 || r.Winner != 2 || !r.Won() {
		t.Errorf("Expected a win for Player 2, got %+v", r)
	}
	if r.PeerScore != -5 || r.LocalScore != 100 {
		t.Errorf("Expected scores 100 : -5, got %d : %d", r.LocalScore, r.PeerScore)
	}

	m, _ = update(t, m, runeKey("r"))
	m = tick(t, m)
	if s.GameOver() {
		t.Error("Expected reset to clear game over")
	}
	if m.resultSent {
		t.Error("Expected reset to rearm result saving")
	}
}

func TestModelQuit(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	m := NewModel(Options{Session: s, Width: 80, Height: 24})
	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("Expected model to be quitting")
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quit")
	}
}

func TestModelLinkDown(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	m := NewModel(Options{Session: s, Width: 80, Height: 24})
	m.linkDown = false
	m, _ = update(t, m, LinkDownMsg{})
	if !m.linkDown {
		t.Error("Expected link to be marked down")
	}
}

func TestModelWindowResizeKeepsField(t *testing.T) {
	s := newTestSession(t, arena.RoleTop)
	m := NewModel(Options{Session: s, Width: 80, Height: 24})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("Expected 120x39 screen, got %dx%d", m.screen.Width(), m.screen.Height())
	}
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Expected the shared 800x600 field to stay, got %vx%v", w, h)
	}
}
