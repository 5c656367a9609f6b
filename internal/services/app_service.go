package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

var validate = validator.New()

// LoginRequest is the sign-in form. The password is checked for presence only
// and never stored.
type LoginRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AppOptions holds the account settings of an AppService.
type AppOptions struct {
	StartingCoins int
	TrialDuration time.Duration
	DefaultGame   domain.GameType
}

// AppService is the view router and account layer. It implements
// ports.AppProvider on top of the other services.
type AppService struct {
	tasks    *TaskService
	wallets  *WalletService
	sessions *SessionService
	reports  *ReportService
	clock    ports.Clock
	opts     AppOptions
	logger   *log.Logger

	mu         sync.Mutex
	state      domain.AppState
	trialTimer ports.Timer
}

// Ensure AppService implements ports.AppProvider.
var _ ports.AppProvider = (*AppService)(nil)

// NewAppService creates the application facade.
func NewAppService(tasks *TaskService, wallets *WalletService, sessions *SessionService, reports *ReportService, clock ports.Clock, opts AppOptions, logger *log.Logger) *AppService {
	if opts.DefaultGame == "" {
		opts.DefaultGame = domain.GameFarm
	}
	return &AppService{
		tasks:    tasks,
		wallets:  wallets,
		sessions: sessions,
		reports:  reports,
		clock:    clock,
		opts:     opts,
		logger:   logger,
		state:    domain.NewAppState(),
	}
}

// Tasks returns the task service.
func (a *AppService) Tasks() *TaskService { return a.tasks }

// Sessions returns the session service.
func (a *AppService) Sessions() *SessionService { return a.sessions }

// Snapshot implements ports.AppProvider.
func (a *AppService) Snapshot(ctx context.Context) ports.Snapshot {
	a.mu.Lock()
	state := a.state
	if state.User != nil {
		u := *state.User
		state.User = &u
	}
	if state.Wallet != nil {
		w := *state.Wallet
		state.Wallet = &w
	}
	a.mu.Unlock()

	snap := ports.Snapshot{App: state}
	if s, ok := a.sessions.Current(); ok {
		snap.Session = &s
	}
	return snap
}

// Owner returns the signed-in user's ID, or ErrNotAuthenticated.
func (a *AppService) Owner() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ownerLocked()
}

func (a *AppService) ownerLocked() (string, error) {
	if a.state.User == nil {
		return "", domain.ErrNotAuthenticated
	}
	return a.state.User.ID, nil
}

// Navigate switches the top-level view.
func (a *AppService) Navigate(v domain.View) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Navigate(v)
}

// OpenTab selects a dashboard tab.
func (a *AppService) OpenTab(t domain.Tab) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.OpenTab(t)
}

// Login implements ports.AppProvider.
func (a *AppService) Login(ctx context.Context, name, email, password string) error {
	return a.LoginWith(ctx, LoginRequest{Name: name, Email: email, Password: password})
}

// LoginWith validates req and signs the user in with their stored wallet.
func (a *AppService) LoginWith(ctx context.Context, req LoginRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		return credentialsError(err)
	}

	user, err := domain.NewUser(req.Name, req.Email)
	if err != nil {
		return err
	}
	return a.signIn(ctx, user)
}

// Resume signs a returning user back in by email without a password prompt.
func (a *AppService) Resume(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email must be a valid email address", domain.ErrInvalidCredentials)
	}
	name, _, _ := strings.Cut(email, "@")
	user, err := domain.NewUser(name, email)
	if err != nil {
		return err
	}
	return a.signIn(ctx, user)
}

// StartTrial implements ports.AppProvider. The trial user is signed out once
// the trial duration has passed.
func (a *AppService) StartTrial(ctx context.Context) error {
	user := domain.NewTrialUser()
	if err := a.signIn(ctx, user); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.trialTimer = a.clock.AfterFunc(a.opts.TrialDuration, func() {
		a.expireTrial(user.ID)
	})
	a.logger.Info("trial started", "duration", a.opts.TrialDuration)
	return nil
}

func (a *AppService) expireTrial(userID string) {
	a.mu.Lock()
	current := a.state.User != nil && a.state.User.ID == userID
	a.mu.Unlock()
	if !current {
		return
	}

	a.logger.Info("trial expired")
	if err := a.Logout(context.Background()); err != nil {
		a.logger.Warn("failed to end trial", "err", err)
	}
}

func (a *AppService) signIn(ctx context.Context, user *domain.User) error {
	if err := a.Logout(ctx); err != nil {
		return err
	}

	wallet, err := a.wallets.Load(ctx, user.ID, a.opts.StartingCoins)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.SignIn(user, wallet)
	a.logger.Debug("signed in", "user", user.ID, "trial", user.Trial)
	return nil
}

// Logout implements ports.AppProvider. It stops the trial timer and ends any
// open session before clearing the user.
func (a *AppService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.trialTimer != nil {
		a.trialTimer.Stop()
		a.trialTimer = nil
	}
	if a.state.User == nil {
		a.state.SignOut()
		return nil
	}

	a.sessions.End(ctx)
	a.logger.Debug("signed out", "user", a.state.User.ID)
	a.state.SignOut()
	return nil
}

// ListTasks implements ports.AppProvider.
func (a *AppService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return a.tasks.ListTasks(ctx)
}

// AddTask implements ports.AppProvider.
func (a *AppService) AddTask(ctx context.Context, title, hhmm, priority string) (*domain.Task, error) {
	return a.tasks.AddTask(ctx, AddTaskRequest{Title: title, Time: hhmm, Priority: priority})
}

// ToggleTask implements ports.AppProvider.
func (a *AppService) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return a.tasks.ToggleTask(ctx, id)
}

// EditTask implements ports.AppProvider.
func (a *AppService) EditTask(ctx context.Context, id, title, hhmm, priority string) (*domain.Task, error) {
	return a.tasks.EditTask(ctx, id, EditTaskRequest{Title: title, Time: hhmm, Priority: priority})
}

// DeleteTask implements ports.AppProvider.
func (a *AppService) DeleteTask(ctx context.Context, id string) error {
	return a.tasks.DeleteTask(ctx, id)
}

// SearchTasks implements ports.AppProvider.
func (a *AppService) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	return a.tasks.SearchTasks(ctx, query)
}

// Catalog implements ports.AppProvider.
func (a *AppService) Catalog() domain.Catalog {
	return a.wallets.Catalog()
}

// Purchase implements ports.AppProvider.
func (a *AppService) Purchase(ctx context.Context, itemID string) (*domain.Wallet, error) {
	owner, err := a.Owner()
	if err != nil {
		return nil, err
	}

	wallet, _, err := a.wallets.Purchase(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}
	a.setWallet(owner, wallet)
	return wallet, nil
}

// Report implements ports.AppProvider.
func (a *AppService) Report(ctx context.Context) (*domain.Report, error) {
	owner, err := a.Owner()
	if err != nil {
		return nil, err
	}
	return a.reports.Today(ctx, owner)
}

// StartSession implements ports.AppProvider. An empty game picks the
// configured default. The countdown outlives ctx and stops on finish, cancel
// or logout.
func (a *AppService) StartSession(ctx context.Context, game, label string, minutes int) (*domain.GameSession, error) {
	owner, err := a.Owner()
	if err != nil {
		return nil, err
	}

	g := a.opts.DefaultGame
	if game != "" {
		if g, err = domain.ParseGame(game); err != nil {
			return nil, err
		}
	}

	// Check the form on a scratch session so a rejected start leaves the
	// open session, if any, untouched.
	draft := domain.NewGameSession(g)
	if _, _, err := domain.Reduce(draft, domain.StartEvent(label, minutes, a.sessions.Presets())); err != nil {
		return nil, err
	}

	if _, err := a.sessions.Setup(ctx, owner, g); err != nil {
		return nil, err
	}
	if _, err := a.sessions.Start(label, minutes); err != nil {
		return nil, err
	}
	s, err := a.sessions.Begin(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FinishSession implements ports.AppProvider.
func (a *AppService) FinishSession(ctx context.Context) (*ports.SessionOutcome, error) {
	owner, err := a.Owner()
	if err != nil {
		return nil, err
	}

	result, wallet, gained, err := a.sessions.Finish(ctx)
	if err != nil {
		return nil, err
	}
	a.setWallet(owner, wallet)
	return &ports.SessionOutcome{Result: result, LevelsGained: gained, Wallet: *wallet}, nil
}

// RestartSession implements ports.AppProvider.
func (a *AppService) RestartSession(ctx context.Context) error {
	if _, err := a.Owner(); err != nil {
		return err
	}
	_, err := a.sessions.Restart(ctx)
	return err
}

// CancelSession implements ports.AppProvider.
func (a *AppService) CancelSession(ctx context.Context) error {
	if _, err := a.Owner(); err != nil {
		return err
	}
	_, err := a.sessions.Cancel(ctx)
	return err
}

// Wallet returns the signed-in user's wallet.
func (a *AppService) Wallet(ctx context.Context) (*domain.Wallet, error) {
	owner, err := a.Owner()
	if err != nil {
		return nil, err
	}
	w, err := a.wallets.Balance(ctx, owner)
	if err != nil {
		return nil, err
	}
	a.setWallet(owner, w)
	return w, nil
}

// setWallet refreshes the cached wallet if owner is still signed in.
func (a *AppService) setWallet(owner string, w *domain.Wallet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.User == nil || a.state.User.ID != owner {
		return
	}
	cp := *w
	a.state.Wallet = &cp
}

// credentialsError turns validator failures into a user-facing message that
// names each field.
func credentialsError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		default:
			msgs = append(msgs, field+" is required")
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, strings.Join(msgs, ", "))
}
