// Package game encapsulates the flavour of each focus game.
// The TUI and dashboard query the Mode interface for presets, copy and icons
// instead of scattering game checks everywhere.
package game

import (
	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

// Mode defines the interface for game-specific behavior.
type Mode interface {
	// Type returns the game identifier.
	Type() domain.GameType

	// Title returns the heading shown on the session screens.
	Title() string

	// Character returns the companion shown during the session.
	Character() string

	// Activity describes what the character does while the timer runs.
	Activity() string

	// Scene returns a one-line picture of the game world.
	Scene() string

	// RewardIcon returns the icon shown next to coins.
	RewardIcon() string

	// Presets returns the session lengths in minutes.
	Presets() []int

	// DefaultDuration returns the preselected session length.
	DefaultDuration() int

	// CompletionTitle returns the title shown on session completion.
	CompletionTitle() string
}

// ForGame returns the Mode implementation for the given game type.
// A nil cfg falls back to the built-in presets.
func ForGame(g domain.GameType, cfg *config.Config) Mode {
	presets := domain.SessionPresets
	def := 25
	if cfg != nil && len(cfg.Session.Presets) > 0 {
		presets = cfg.Session.Presets
		def = cfg.Session.DefaultDuration
	}
	if !domain.IsPreset(def, presets) {
		def = presets[0]
	}

	base := modeBase{presets: append([]int(nil), presets...), def: def}
	switch g {
	case domain.GameFishing:
		return &fishingMode{modeBase: base}
	default:
		return &farmMode{modeBase: base}
	}
}

type modeBase struct {
	presets []int
	def     int
}

func (b modeBase) Presets() []int       { return append([]int(nil), b.presets...) }
func (b modeBase) DefaultDuration() int { return b.def }

// --- Farm ---

type farmMode struct{ modeBase }

func (f *farmMode) Type() domain.GameType   { return domain.GameFarm }
func (f *farmMode) Title() string           { return "Productivity Farm" }
func (f *farmMode) Character() string       { return "👨‍🌾" }
func (f *farmMode) Activity() string        { return "Tending the crops while you focus..." }
func (f *farmMode) Scene() string           { return "🌱 🌿 🌾 🌻 🌽" }
func (f *farmMode) RewardIcon() string      { return "🌾" }
func (f *farmMode) CompletionTitle() string { return "Harvest complete!" }

// --- Fishing ---

type fishingMode struct{ modeBase }

func (f *fishingMode) Type() domain.GameType   { return domain.GameFishing }
func (f *fishingMode) Title() string           { return "Fishing Trip" }
func (f *fishingMode) Character() string       { return "🎣" }
func (f *fishingMode) Activity() string        { return "Waiting for a bite while you focus..." }
func (f *fishingMode) Scene() string           { return "🌊 🐟 🌊 🐠 🌊" }
func (f *fishingMode) RewardIcon() string      { return "🐟" }
func (f *fishingMode) CompletionTitle() string { return "What a catch!" }
