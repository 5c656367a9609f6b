package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xvierd/prodvana-cli/internal/adapters/clock"
	"github.com/xvierd/prodvana-cli/internal/adapters/storage"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/logging"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

var testStart = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

// recordingFeedback remembers every celebrated session.
type recordingFeedback struct {
	mu       sync.Mutex
	sessions []domain.GameSession
}

func (f *recordingFeedback) Celebrate(ctx context.Context, s domain.GameSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *recordingFeedback) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type stubGit struct{ branch string }

func (g stubGit) Detect(ctx context.Context, dir string) (*ports.RepoContext, error) {
	return &ports.RepoContext{Branch: g.branch}, nil
}

func (g stubGit) IsAvailable() bool { return true }

type harness struct {
	store    ports.Storage
	clock    *clock.Fake
	feedback *recordingFeedback
	tasks    *TaskService
	wallets  *WalletService
	sessions *SessionService
	reports  *ReportService
	app      *AppService
}

func newHarness(t *testing.T, opts AppOptions) *harness {
	t.Helper()

	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logging.Discard()
	h := &harness{
		store:    store,
		clock:    clock.NewFake(testStart),
		feedback: &recordingFeedback{},
	}
	h.tasks = NewTaskService(store, logger)
	h.wallets = NewWalletService(store, domain.DefaultCatalog(), logger)
	h.sessions = NewSessionService(SessionDeps{
		Storage:  store,
		Wallets:  h.wallets,
		Clock:    h.clock,
		Feedback: h.feedback,
		Git:      stubGit{branch: "main"},
		Logger:   logger,
	})
	h.reports = NewReportService(store, h.tasks, h.clock)

	if opts.TrialDuration == 0 {
		opts.TrialDuration = 5 * time.Minute
	}
	h.app = NewAppService(h.tasks, h.wallets, h.sessions, h.reports, h.clock, opts, logger)

	t.Cleanup(func() { h.sessions.End(context.Background()) })
	return h
}

// runToCompletion begins the prepared session and advances the clock through
// its whole countdown.
func (h *harness) runToCompletion(t *testing.T, ctx context.Context) domain.GameSession {
	t.Helper()

	s, err := h.sessions.Begin(ctx)
	require.NoError(t, err)
	h.clock.Advance(time.Duration(s.Duration) * time.Minute)
	require.Eventually(t, func() bool {
		cur, ok := h.sessions.Current()
		return ok && cur.State == domain.StateCompleted
	}, 2*time.Second, 5*time.Millisecond)

	cur, _ := h.sessions.Current()
	return cur
}
