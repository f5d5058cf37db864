package main

import (
	"testing"
)

func TestRelayPort(t *testing.T) {
	defer func() { flagPort = 0 }()

	t.Setenv("PORT", "")
	if p, err := relayPort(); err != nil || p != 8765 {
		t.Errorf("Expected default 8765, got %d (err %v)", p, err)
	}

	t.Setenv("PORT", "9100")
	if p, err := relayPort(); err != nil || p != 9100 {
		t.Errorf("Expected 9100 from env, got %d (err %v)", p, err)
	}

	flagPort = 9200
	if p, err := relayPort(); err != nil || p != 9200 {
		t.Errorf("Expected flag to win with 9200, got %d (err %v)", p, err)
	}

	flagPort = 0
	t.Setenv("PORT", "nope")
	if _, err := relayPort(); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func TestLoadArenaConfigAppliesFlags(t *testing.T) {
	defer func() { flagFPS, flagDifficulty, flagConfig = 0, "", "" }()

	t.Setenv("HOME", t.TempDir())
	flagFPS = 60
	flagDifficulty = "fixed"
	cfg, err := loadArenaConfig()
	if err != nil {
		t.Fatalf("loadArenaConfig failed: %v", err)
	}
	if cfg.Field.TickRate != 60 {
		t.Errorf("Expected tick rate 60, got %d", cfg.Field.TickRate)
	}
	if cfg.Difficulty.Enabled {
		t.Error("Expected fixed preset to disable progression")
	}
}
