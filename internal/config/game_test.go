package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.GridSize != 5 {
		t.Fatalf("GridSize = %d, want 5", cfg.GridSize)
	}
	if cfg.StartingPoints != 1000 || cfg.StartingWallet != 100 || cfg.StartingFreeCredits != 3 {
		t.Fatalf("unexpected starting account: %+v", cfg)
	}
	if cfg.MinTopupPoints != 100 || cfg.MinWalletTransfer != 10 {
		t.Fatalf("unexpected transfer minimums: %+v", cfg)
	}
	if cfg.MirrorWinningsToWallet {
		t.Fatal("MirrorWinningsToWallet = true, want false")
	}
}

func TestLoadGameRejectsTinyGrid(t *testing.T) {
	t.Setenv("GRID_SIZE", "1")
	if _, err := LoadGame(); !errors.Is(err, ErrInvalidGridSize) {
		t.Fatalf("LoadGame() error = %v, want ErrInvalidGridSize", err)
	}
}

func TestLoadRiskProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk.yaml")
	body := "increments:\n  1: 5.0\n  2: 8.5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	got, err := LoadRiskProfile(path)
	if err != nil {
		t.Fatalf("LoadRiskProfile() error = %v", err)
	}
	if len(got) != 2 || got[1] != 5.0 || got[2] != 8.5 {
		t.Fatalf("unexpected increments: %v", got)
	}
}

func TestLoadRiskProfileEmptyPath(t *testing.T) {
	got, err := LoadRiskProfile("")
	if err != nil || got != nil {
		t.Fatalf("LoadRiskProfile(\"\") = %v, %v; want nil, nil", got, err)
	}
}

func TestLoadRiskProfileRejectsEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk.yaml")
	if err := os.WriteFile(path, []byte("increments: {}\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if _, err := LoadRiskProfile(path); !errors.Is(err, ErrInvalidRiskProfile) {
		t.Fatalf("LoadRiskProfile() error = %v, want ErrInvalidRiskProfile", err)
	}
}
