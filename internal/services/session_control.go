package services

import (
	"context"

	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// SessionControl drives the open session step by step on behalf of the
// signed-in user. Interactive front ends use it instead of StartSession.
type SessionControl struct {
	app *AppService
}

// Control returns a SessionControl bound to a.
func (a *AppService) Control() *SessionControl {
	return &SessionControl{app: a}
}

// Setup opens a setup session for the signed-in user.
func (c *SessionControl) Setup(ctx context.Context, game domain.GameType) (domain.GameSession, error) {
	owner, err := c.app.Owner()
	if err != nil {
		return domain.GameSession{}, err
	}
	return c.app.sessions.Setup(ctx, owner, game)
}

// Current returns a copy of the open session, if any.
func (c *SessionControl) Current() (domain.GameSession, bool) {
	return c.app.sessions.Current()
}

// Start submits the setup form.
func (c *SessionControl) Start(label string, minutes int) (domain.GameSession, error) {
	return c.app.sessions.Start(label, minutes)
}

// Begin starts the countdown. It runs until ctx ends or the session leaves
// the active state.
func (c *SessionControl) Begin(ctx context.Context) (domain.GameSession, error) {
	return c.app.sessions.Begin(ctx)
}

// Notes replaces the session notes.
func (c *SessionControl) Notes(text string) (domain.GameSession, error) {
	return c.app.sessions.Notes(text)
}

// Finish claims the reward of a completed session.
func (c *SessionControl) Finish(ctx context.Context) (*ports.SessionOutcome, error) {
	return c.app.FinishSession(ctx)
}

// Restart discards a completed session.
func (c *SessionControl) Restart(ctx context.Context) error {
	return c.app.RestartSession(ctx)
}

// Cancel abandons a session in preparation or active.
func (c *SessionControl) Cancel(ctx context.Context) error {
	return c.app.CancelSession(ctx)
}
