package domain

import (
	"fmt"
	"math"
)

const (
	// CoinsPerMinute is the session payout rate.
	CoinsPerMinute = 2

	// LevelStep is the cumulative coin threshold per level.
	LevelStep = 100
)

// SessionPresets lists the session lengths a player can pick, in minutes.
var SessionPresets = []int{15, 25, 30, 45, 60}

// Reward returns the coins earned for a completed session of the given length.
func Reward(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return int(math.Floor(float64(minutes) * CoinsPerMinute))
}

// IsPreset reports whether minutes is one of presets.
func IsPreset(minutes int, presets []int) bool {
	for _, p := range presets {
		if p == minutes {
			return true
		}
	}
	return false
}

// InsufficientFundsError is returned when a purchase costs more than the balance.
type InsufficientFundsError struct {
	Cost    int
	Balance int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough coins: need %d more", e.Shortfall())
}

// Unwrap lets errors.Is match ErrInsufficientFunds.
func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Shortfall is how many coins are missing.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Cost - e.Balance
}

// Wallet holds a player's coin balance and level.
type Wallet struct {
	Coins  int `json:"coins"`
	Level  int `json:"level"`
	Earned int `json:"earned"`
}

// NewWallet returns a level 1 wallet with the starting balance.
func NewWallet(startingCoins int) Wallet {
	if startingCoins < 0 {
		startingCoins = 0
	}
	return Wallet{Coins: startingCoins, Level: 1}
}

// Earn credits coins and advances the level each time cumulative earnings
// cross Level*LevelStep. It returns the number of levels gained.
func (w *Wallet) Earn(coins int) int {
	if coins <= 0 {
		return 0
	}
	if w.Level < 1 {
		w.Level = 1
	}
	w.Coins += coins
	w.Earned += coins

	gained := 0
	for w.Earned >= w.Level*LevelStep {
		w.Level++
		gained++
	}
	return gained
}

// Spend deducts cost if the balance covers it. The wallet is untouched otherwise.
func (w *Wallet) Spend(cost int) error {
	if cost < 0 {
		return fmt.Errorf("invalid cost %d", cost)
	}
	if w.Coins < cost {
		return &InsufficientFundsError{Cost: cost, Balance: w.Coins}
	}
	w.Coins -= cost
	return nil
}

// CanAfford reports whether the balance covers cost.
func (w Wallet) CanAfford(cost int) bool {
	return w.Coins >= cost
}

// LevelProgress returns the percentage (0-99) toward the next level.
func (w Wallet) LevelProgress() int {
	floor := (w.Level - 1) * LevelStep
	p := (w.Earned - floor) * 100 / LevelStep
	if p < 0 {
		return 0
	}
	if p > 99 {
		return 99
	}
	return p
}
