// Package notification provides desktop notification utilities.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// CelebratePattern is the on/off rhythm (milliseconds) of the completion
// beeps: on, off, on.
var CelebratePattern = []int{200, 100, 200}

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message string) error
	beep   func(ms int) error
	sleep  func(time.Duration)
}

// Ensure Notifier implements ports.Feedback.
var _ ports.Feedback = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		beep: func(ms int) error {
			return beeep.Beep(beeep.DefaultFreq, ms)
		},
		sleep: time.Sleep,
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.notify(title, message)
}

// Celebrate announces a completed session with a notification and, when
// sound is on, the beep pattern.
func (n *Notifier) Celebrate(ctx context.Context, s domain.GameSession) error {
	if !n.IsEnabled() {
		return nil
	}

	title := fmt.Sprintf("🎉 %s complete!", s.Game.Label())
	message := fmt.Sprintf("%q is done. Claim your %d coins.", s.TaskLabel, s.Reward)
	if err := n.notify(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if !n.cfg.Sound {
		return nil
	}
	for i, ms := range CelebratePattern {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i%2 == 1 {
			n.sleep(time.Duration(ms) * time.Millisecond)
			continue
		}
		if err := n.beep(ms); err != nil {
			return fmt.Errorf("failed to beep: %w", err)
		}
	}
	return nil
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
