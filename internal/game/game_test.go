package game

import (
	"testing"

	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

func TestPresetsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Session.Presets = []int{10, 20}
	cfg.Session.DefaultDuration = 20

	mode := ForGame(domain.GameFishing, cfg)
	presets := mode.Presets()
	if len(presets) != 2 || presets[0] != 10 {
		t.Fatalf("Presets() = %v", presets)
	}
	if mode.DefaultDuration() != 20 {
		t.Errorf("DefaultDuration() = %d, want 20", mode.DefaultDuration())
	}
}

func TestPresetsNilConfig(t *testing.T) {
	mode := ForGame(domain.GameFarm, nil)
	presets := mode.Presets()
	if len(presets) != 5 {
		t.Fatalf("expected 5 presets with nil config, got %d", len(presets))
	}
	if mode.DefaultDuration() != 25 {
		t.Errorf("DefaultDuration() = %d, want 25", mode.DefaultDuration())
	}
}

func TestPresetsAreCopies(t *testing.T) {
	mode := ForGame(domain.GameFarm, nil)
	p := mode.Presets()
	p[0] = 999
	if mode.Presets()[0] == 999 {
		t.Error("Presets() exposed internal slice")
	}
	if domain.SessionPresets[0] == 999 {
		t.Error("Presets() exposed domain.SessionPresets")
	}
}

func TestForGame(t *testing.T) {
	tests := []struct {
		game      domain.GameType
		wantType  domain.GameType
		wantTitle string
	}{
		{domain.GameFarm, domain.GameFarm, "Productivity Farm"},
		{domain.GameFishing, domain.GameFishing, "Fishing Trip"},
		{"unknown", domain.GameFarm, "Productivity Farm"},
	}
	for _, tt := range tests {
		mode := ForGame(tt.game, nil)
		if mode.Type() != tt.wantType {
			t.Errorf("Type() for %s = %v, want %v", tt.game, mode.Type(), tt.wantType)
		}
		if mode.Title() != tt.wantTitle {
			t.Errorf("Title() for %s = %q, want %q", tt.game, mode.Title(), tt.wantTitle)
		}
		if mode.CompletionTitle() == "" || mode.Activity() == "" || mode.Scene() == "" {
			t.Errorf("%s: empty copy", tt.game)
		}
	}
}
