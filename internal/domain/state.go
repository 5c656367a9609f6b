package domain

import "fmt"

// View is a top-level screen.
type View string

const (
	ViewWelcome   View = "welcome"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// Tab is a dashboard section.
type Tab string

const (
	TabMain     Tab = "main"
	TabTasks    Tab = "tasks"
	TabGame     Tab = "game"
	TabReport   Tab = "report"
	TabStore    Tab = "store"
	TabAnalysis Tab = "analysis"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabMain, TabTasks, TabGame, TabReport, TabStore, TabAnalysis}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// AppState is the view router state: which screen is shown and who is signed in.
type AppState struct {
	View   View    `json:"view"`
	Tab    Tab     `json:"tab"`
	User   *User   `json:"user,omitempty"`
	Wallet *Wallet `json:"wallet,omitempty"`
}

// NewAppState starts on the welcome screen with nobody signed in.
func NewAppState() AppState {
	return AppState{View: ViewWelcome, Tab: TabMain}
}

// SignedIn reports whether a user is present.
func (s AppState) SignedIn() bool {
	return s.User != nil
}

// Navigate switches screens. The dashboard requires a signed in user.
func (s *AppState) Navigate(v View) error {
	switch v {
	case ViewWelcome, ViewLogin:
	case ViewDashboard:
		if !s.SignedIn() {
			return ErrNotAuthenticated
		}
	default:
		return fmt.Errorf("unknown view %q", v)
	}
	s.View = v
	return nil
}

// OpenTab selects a dashboard tab.
func (s *AppState) OpenTab(t Tab) error {
	if s.View != ViewDashboard {
		return ErrNotAuthenticated
	}
	if _, err := ParseTab(string(t)); err != nil {
		return err
	}
	s.Tab = t
	return nil
}

// SignIn stores the user and wallet and opens the dashboard.
func (s *AppState) SignIn(u *User, w *Wallet) {
	s.User = u
	s.Wallet = w
	s.View = ViewDashboard
	s.Tab = TabMain
}

// SignOut clears the user and returns to the welcome screen.
func (s *AppState) SignOut() {
	*s = NewAppState()
}
