package domain

import (
	"errors"
	"testing"
)

func TestAppState_Navigate(t *testing.T) {
	s := NewAppState()

	if err := s.Navigate(ViewDashboard); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Navigate(dashboard) error = %v, want %v", err, ErrNotAuthenticated)
	}
	if s.View != ViewWelcome {
		t.Errorf("View = %v, want %v", s.View, ViewWelcome)
	}

	if err := s.Navigate(ViewLogin); err != nil {
		t.Fatal(err)
	}
	if s.View != ViewLogin {
		t.Errorf("View = %v, want %v", s.View, ViewLogin)
	}

	if err := s.Navigate("settings"); err == nil {
		t.Error("Navigate(settings) should fail")
	}
}

func TestAppState_SignInOut(t *testing.T) {
	s := NewAppState()
	u, err := NewUser("Ana", "Ana@Example.com")
	if err != nil {
		t.Fatal(err)
	}
	w := NewWallet(50)

	s.SignIn(u, &w)
	if s.View != ViewDashboard || s.Tab != TabMain {
		t.Errorf("after SignIn view=%v tab=%v", s.View, s.Tab)
	}
	if err := s.OpenTab(TabStore); err != nil {
		t.Fatal(err)
	}
	if s.Tab != TabStore {
		t.Errorf("Tab = %v, want %v", s.Tab, TabStore)
	}
	if err := s.OpenTab("bogus"); err == nil {
		t.Error("OpenTab(bogus) should fail")
	}

	s.SignOut()
	if s.SignedIn() || s.Wallet != nil || s.View != ViewWelcome {
		t.Errorf("after SignOut: %+v", s)
	}
	if err := s.OpenTab(TabTasks); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("OpenTab() after SignOut error = %v", err)
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Ana ", "ANA@example.com ")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "ana@example.com" || u.Name != "Ana" || u.Trial {
		t.Errorf("NewUser() = %+v", u)
	}

	if _, err := NewUser("", "a@b.c"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("NewUser() empty name error = %v", err)
	}

	trial := NewTrialUser()
	if !trial.Trial || trial.Name != TrialUserName || trial.ID == "" {
		t.Errorf("NewTrialUser() = %+v", trial)
	}
}
