package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// TickInterval is how often an active session counts down.
const TickInterval = time.Second

// SessionService runs the single live game session: the state machine, the
// countdown goroutine and the history records written when a run ends.
type SessionService struct {
	storage  ports.Storage
	wallets  *WalletService
	clock    ports.Clock
	feedback ports.Feedback
	git      ports.GitDetector
	presets  []int
	logger   *log.Logger

	mu      sync.Mutex
	owner   string
	session *domain.GameSession
	run     *tickRun
}

// tickRun is one countdown goroutine. A run is current while s.run points at it.
type tickRun struct {
	ticker ports.Ticker
	cancel context.CancelFunc
}

// SessionDeps bundles the collaborators of a SessionService. Feedback and Git
// are optional.
type SessionDeps struct {
	Storage  ports.Storage
	Wallets  *WalletService
	Clock    ports.Clock
	Feedback ports.Feedback
	Git      ports.GitDetector
	Presets  []int
	Logger   *log.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(deps SessionDeps) *SessionService {
	presets := deps.Presets
	if len(presets) == 0 {
		presets = domain.SessionPresets
	}
	return &SessionService{
		storage:  deps.Storage,
		wallets:  deps.Wallets,
		clock:    deps.Clock,
		feedback: deps.Feedback,
		git:      deps.Git,
		presets:  presets,
		logger:   deps.Logger,
	}
}

// Presets returns the session lengths on offer, in minutes.
func (s *SessionService) Presets() []int {
	return s.presets
}

// Setup opens a fresh session of game for owner. A completed session that was
// never claimed is recorded as unclaimed.
func (s *SessionService) Setup(ctx context.Context, owner string, game domain.GameType) (domain.GameSession, error) {
	if owner == "" {
		return domain.GameSession{}, domain.ErrNotAuthenticated
	}
	if _, err := domain.ParseGame(string(game)); err != nil {
		return domain.GameSession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		switch {
		case s.session.IsLive():
			return domain.GameSession{}, domain.ErrSessionAlreadyActive
		case s.session.State == domain.StateCompleted:
			s.record(ctx, domain.OutcomeUnclaimed)
		}
	}

	next := domain.NewGameSession(game)
	s.owner = owner
	s.session = &next
	s.logger.Debug("session setup", "id", next.ID, "game", game, "owner", owner)
	return next, nil
}

// Start submits the setup form. Validation errors come back unwrapped so the
// caller can show them in place.
func (s *SessionService) Start(label string, minutes int) (domain.GameSession, error) {
	return s.apply(domain.StartEvent(label, minutes, s.presets))
}

// Begin leaves preparation and starts the countdown. The countdown stops when
// ctx ends.
func (s *SessionService) Begin(ctx context.Context) (domain.GameSession, error) {
	branch := s.detectBranch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.GameSession{}, domain.ErrNoActiveSession
	}
	next, effect, err := domain.Reduce(*s.session, domain.BeginEvent(s.clock.Now()))
	if err != nil {
		return *s.session, err
	}
	next.GitBranch = branch
	*s.session = next

	if effect == domain.EffectBegan {
		s.startRunLocked(ctx)
	}
	s.logger.Debug("session began", "id", next.ID, "minutes", next.Duration, "branch", branch)
	return next, nil
}

// Finish claims a completed session: the reward is credited to the owner's
// wallet and the run is recorded as finished.
func (s *SessionService) Finish(ctx context.Context) (domain.SessionResult, *domain.Wallet, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.SessionResult{}, nil, 0, domain.ErrNoActiveSession
	}
	result, err := s.session.Result()
	if err != nil {
		return domain.SessionResult{}, nil, 0, err
	}

	wallet, gained, err := s.wallets.Earn(ctx, s.owner, result.Coins)
	if err != nil {
		return domain.SessionResult{}, nil, 0, fmt.Errorf("failed to credit reward: %w", err)
	}
	s.record(ctx, domain.OutcomeFinished)
	s.session = nil

	s.logger.Debug("session finished", "id", result.SessionID, "coins", result.Coins)
	return result, wallet, gained, nil
}

// Restart discards a completed session without claiming it and returns to setup.
func (s *SessionService) Restart(ctx context.Context) (domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.GameSession{}, domain.ErrNoActiveSession
	}
	before := *s.session
	next, _, err := domain.Reduce(before, domain.Event{Kind: domain.EventRestart})
	if err != nil {
		return before, err
	}
	s.record(ctx, domain.OutcomeUnclaimed)
	next.ID = domain.NewID()
	*s.session = next

	s.logger.Debug("session restarted", "previous", before.ID, "id", next.ID)
	return next, nil
}

// Cancel abandons a session in preparation or active and returns to setup.
// A run that never became active leaves no record.
func (s *SessionService) Cancel(ctx context.Context) (domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.GameSession{}, domain.ErrNoActiveSession
	}
	before := *s.session
	next, _, err := domain.Reduce(before, domain.Event{Kind: domain.EventCancel})
	if err != nil {
		return before, err
	}
	s.stopRunLocked()
	if before.State == domain.StateActive {
		s.record(ctx, domain.OutcomeAbandoned)
	}
	next.ID = domain.NewID()
	*s.session = next

	s.logger.Debug("session cancelled", "previous", before.ID, "state", before.State)
	return next, nil
}

// End tears down whatever session is open, as on logout. Live sessions are
// cancelled and an unclaimed completed session is recorded.
func (s *SessionService) End(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.stopRunLocked()
	switch s.session.State {
	case domain.StateActive:
		s.record(ctx, domain.OutcomeAbandoned)
	case domain.StateCompleted:
		s.record(ctx, domain.OutcomeUnclaimed)
	}
	s.session = nil
	s.owner = ""
}

// Notes replaces the notes on the open session.
func (s *SessionService) Notes(text string) (domain.GameSession, error) {
	return s.apply(domain.NotesEvent(text))
}

// Current returns a copy of the open session, if any.
func (s *SessionService) Current() (domain.GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.GameSession{}, false
	}
	return *s.session, true
}

func (s *SessionService) apply(ev domain.Event) (domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.GameSession{}, domain.ErrNoActiveSession
	}
	next, _, err := domain.Reduce(*s.session, ev)
	if err != nil {
		return *s.session, err
	}
	*s.session = next
	return next, nil
}

// startRunLocked launches the countdown goroutine. Callers hold s.mu.
func (s *SessionService) startRunLocked(ctx context.Context) {
	s.stopRunLocked()
	runCtx, cancel := context.WithCancel(ctx)
	r := &tickRun{
		ticker: s.clock.NewTicker(TickInterval),
		cancel: cancel,
	}
	s.run = r
	go s.tickLoop(runCtx, r)
}

// stopRunLocked stops the current countdown, if any. Callers hold s.mu.
func (s *SessionService) stopRunLocked() {
	if s.run == nil {
		return
	}
	s.run.ticker.Stop()
	s.run.cancel()
	s.run = nil
}

func (s *SessionService) tickLoop(ctx context.Context, r *tickRun) {
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.run == r {
				s.stopRunLocked()
			}
			s.mu.Unlock()
			return
		case at := <-r.ticker.C():
			if !s.tick(r, at) {
				return
			}
		}
	}
}

// tick applies one countdown step and reports whether the run continues.
func (s *SessionService) tick(r *tickRun, at time.Time) bool {
	s.mu.Lock()
	if s.run != r || s.session == nil {
		s.mu.Unlock()
		return false
	}

	next, effect, err := domain.Reduce(*s.session, domain.TickEvent(at))
	if err != nil {
		s.stopRunLocked()
		s.mu.Unlock()
		s.logger.Warn("countdown stopped", "err", err)
		return false
	}
	*s.session = next
	if effect != domain.EffectCompleted {
		s.mu.Unlock()
		return true
	}

	s.stopRunLocked()
	s.mu.Unlock()

	s.logger.Debug("session completed", "id", next.ID, "reward", next.Reward)
	if s.feedback != nil {
		go func() {
			if err := s.feedback.Celebrate(context.Background(), next); err != nil {
				s.logger.Debug("celebration failed", "err", err)
			}
		}()
	}
	return false
}

// record writes the open session to history. Failures are logged. Callers
// hold s.mu.
func (s *SessionService) record(ctx context.Context, outcome domain.SessionOutcome) {
	rec := domain.NewSessionRecord(s.owner, *s.session, outcome, s.clock.Now())
	if err := s.storage.Sessions().Save(ctx, &rec); err != nil {
		s.logger.Warn("failed to record session", "id", s.session.ID, "outcome", outcome, "err", err)
	}
}

func (s *SessionService) detectBranch(ctx context.Context) string {
	if s.git == nil || !s.git.IsAvailable() {
		return ""
	}
	info, err := s.git.Detect(ctx, "")
	if err != nil {
		s.logger.Debug("git detection failed", "err", err)
		return ""
	}
	return info.Branch
}
