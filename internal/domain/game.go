package domain

import (
	"fmt"
	"strings"
)

// GameType is the theme of a focus session.
type GameType string

const (
	GameFarm    GameType = "farm"
	GameFishing GameType = "fishing"
)

// ValidGames lists all supported game values.
var ValidGames = []GameType{GameFarm, GameFishing}

// ParseGame checks if a string is a valid game type.
func ParseGame(s string) (GameType, error) {
	g := GameType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidGames {
		if g == valid {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGame, s)
}

// Label returns a human-readable label.
func (g GameType) Label() string {
	switch g {
	case GameFarm:
		return "Productivity Farm"
	case GameFishing:
		return "Fishing Trip"
	default:
		return "Unknown"
	}
}
