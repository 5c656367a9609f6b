package domain

import (
	"fmt"
	"strings"
	"time"
)

// SessionState is the lifecycle position of a game session.
type SessionState string

const (
	StateSetup       SessionState = "setup"
	StatePreparation SessionState = "preparation"
	StateActive      SessionState = "active"
	StateCompleted   SessionState = "completed"
)

// EventKind identifies an input to Reduce.
type EventKind string

const (
	EventStart   EventKind = "start"
	EventBegin   EventKind = "begin"
	EventTick    EventKind = "tick"
	EventRestart EventKind = "restart"
	EventCancel  EventKind = "cancel"
	EventNotes   EventKind = "notes"
)

// Event is an input to the session state machine.
type Event struct {
	Kind     EventKind
	Label    string
	Duration int
	Presets  []int
	Text     string
	At       time.Time
}

// StartEvent submits the setup form.
func StartEvent(label string, minutes int, presets []int) Event {
	return Event{Kind: EventStart, Label: label, Duration: minutes, Presets: presets}
}

// BeginEvent acknowledges the preparation step.
func BeginEvent(at time.Time) Event {
	return Event{Kind: EventBegin, At: at}
}

// TickEvent is one second of countdown.
func TickEvent(at time.Time) Event {
	return Event{Kind: EventTick, At: at}
}

// NotesEvent replaces the session notes.
func NotesEvent(text string) Event {
	return Event{Kind: EventNotes, Text: text}
}

// Effect tells the caller what side effect a transition calls for.
type Effect int

const (
	EffectNone Effect = iota
	EffectBegan
	EffectCompleted
	EffectReset
)

// GameSession is one timed focus activity.
type GameSession struct {
	ID          string       `json:"id"`
	Game        GameType     `json:"game"`
	Duration    int          `json:"duration_minutes"`
	Remaining   int          `json:"remaining_seconds"`
	TaskLabel   string       `json:"task"`
	Notes       string       `json:"notes"`
	State       SessionState `json:"state"`
	Reward      int          `json:"reward"`
	GitBranch   string       `json:"git_branch,omitempty"`
	StartedAt   *time.Time   `json:"started_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// NewGameSession creates a session in the setup state.
func NewGameSession(game GameType) GameSession {
	return GameSession{
		ID:    generateID(),
		Game:  game,
		State: StateSetup,
	}
}

// Reduce applies ev to s and returns the next session. On error the returned
// session equals s.
func Reduce(s GameSession, ev Event) (GameSession, Effect, error) {
	switch ev.Kind {
	case EventStart:
		if s.State != StateSetup {
			return s, EffectNone, transitionError(s.State, ev.Kind)
		}
		label := strings.TrimSpace(ev.Label)
		if label == "" {
			return s, EffectNone, ErrEmptySessionLabel
		}
		presets := ev.Presets
		if len(presets) == 0 {
			presets = SessionPresets
		}
		if !IsPreset(ev.Duration, presets) {
			return s, EffectNone, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, ev.Duration)
		}
		s.TaskLabel = label
		s.Duration = ev.Duration
		s.State = StatePreparation
		return s, EffectNone, nil

	case EventBegin:
		if s.State != StatePreparation {
			return s, EffectNone, transitionError(s.State, ev.Kind)
		}
		at := ev.At
		s.Remaining = s.Duration * 60
		s.StartedAt = &at
		s.State = StateActive
		return s, EffectBegan, nil

	case EventTick:
		if s.State != StateActive {
			return s, EffectNone, transitionError(s.State, ev.Kind)
		}
		if s.Remaining > 0 {
			s.Remaining--
		}
		if s.Remaining > 0 {
			return s, EffectNone, nil
		}
		at := ev.At
		s.Reward = Reward(s.Duration)
		s.CompletedAt = &at
		s.State = StateCompleted
		return s, EffectCompleted, nil

	case EventRestart:
		if s.State != StateCompleted {
			return s, EffectNone, transitionError(s.State, ev.Kind)
		}
		return s.reset(), EffectReset, nil

	case EventCancel:
		if s.State != StatePreparation && s.State != StateActive {
			return s, EffectNone, transitionError(s.State, ev.Kind)
		}
		return s.reset(), EffectReset, nil

	case EventNotes:
		if s.State == StateSetup {
			return s, EffectNone, transitionError(s.State, ev.Kind)
		}
		s.Notes = ev.Text
		return s, EffectNone, nil
	}

	return s, EffectNone, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev.Kind)
}

func transitionError(from SessionState, kind EventKind) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, kind, from)
}

// reset returns a blank setup session for the same game.
func (s GameSession) reset() GameSession {
	return GameSession{ID: s.ID, Game: s.Game, State: StateSetup}
}

// IsLive reports whether the session is between setup and completion.
func (s GameSession) IsLive() bool {
	return s.State == StatePreparation || s.State == StateActive
}

// RemainingTime returns the countdown as a duration.
func (s GameSession) RemainingTime() time.Duration {
	return time.Duration(s.Remaining) * time.Second
}

// ElapsedSeconds returns how much of an active or completed session has run.
func (s GameSession) ElapsedSeconds() int {
	switch s.State {
	case StateActive:
		return s.Duration*60 - s.Remaining
	case StateCompleted:
		return s.Duration * 60
	default:
		return 0
	}
}

// Progress returns the completion ratio (0.0 to 1.0).
func (s GameSession) Progress() float64 {
	if s.Duration == 0 {
		return 0
	}
	return float64(s.ElapsedSeconds()) / float64(s.Duration*60)
}

// SessionResult is what a finished session hands back to the dashboard.
type SessionResult struct {
	SessionID   string    `json:"session_id"`
	Game        GameType  `json:"game"`
	Duration    int       `json:"duration_minutes"`
	Coins       int       `json:"coins"`
	TaskLabel   string    `json:"task"`
	Notes       string    `json:"notes"`
	CompletedAt time.Time `json:"completed_at"`
}

// Result builds the session result. Only completed sessions have one.
func (s GameSession) Result() (SessionResult, error) {
	if s.State != StateCompleted {
		return SessionResult{}, fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	r := SessionResult{
		SessionID: s.ID,
		Game:      s.Game,
		Duration:  s.Duration,
		Coins:     s.Reward,
		TaskLabel: s.TaskLabel,
		Notes:     s.Notes,
	}
	if s.CompletedAt != nil {
		r.CompletedAt = *s.CompletedAt
	}
	return r, nil
}

// SessionOutcome records how a session run ended.
type SessionOutcome string

const (
	OutcomeFinished  SessionOutcome = "finished"
	OutcomeUnclaimed SessionOutcome = "unclaimed"
	OutcomeAbandoned SessionOutcome = "abandoned"
)

// SessionRecord is the history entry written when a run ends.
type SessionRecord struct {
	ID           string         `json:"id"`
	Owner        string         `json:"owner"`
	Game         GameType       `json:"game"`
	Duration     int            `json:"duration_minutes"`
	TaskLabel    string         `json:"task"`
	Notes        string         `json:"notes"`
	Outcome      SessionOutcome `json:"outcome"`
	Coins        int            `json:"coins"`
	FocusSeconds int            `json:"focus_seconds"`
	GitBranch    string         `json:"git_branch,omitempty"`
	EndedAt      time.Time      `json:"ended_at"`
}

// NewSessionRecord captures s for owner with the given outcome.
func NewSessionRecord(owner string, s GameSession, outcome SessionOutcome, endedAt time.Time) SessionRecord {
	coins := 0
	if outcome == OutcomeFinished {
		coins = s.Reward
	}
	return SessionRecord{
		ID:           generateID(),
		Owner:        owner,
		Game:         s.Game,
		Duration:     s.Duration,
		TaskLabel:    s.TaskLabel,
		Notes:        s.Notes,
		Outcome:      outcome,
		Coins:        coins,
		FocusSeconds: s.ElapsedSeconds(),
		GitBranch:    s.GitBranch,
		EndedAt:      endedAt,
	}
}
