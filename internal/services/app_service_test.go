package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

func TestAppService_Login(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		email    string
		password string
		wantErr  string
	}{
		{name: "valid", user: "Ana", email: "Ana@Example.com", password: "secret"},
		{name: "missing name", user: " ", email: "ana@example.com", password: "secret", wantErr: "name is required"},
		{name: "bad email", user: "Ana", email: "ana-at-example", password: "secret", wantErr: "email must be a valid email address"},
		{name: "missing password", user: "Ana", email: "ana@example.com", wantErr: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, AppOptions{StartingCoins: 50})
			ctx := context.Background()

			err := h.app.Login(ctx, tt.user, tt.email, tt.password)
			snap := h.app.Snapshot(ctx)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, domain.ErrInvalidCredentials)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.False(t, snap.App.SignedIn())
				assert.Equal(t, domain.ViewWelcome, snap.App.View)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.ViewDashboard, snap.App.View)
			assert.Equal(t, "ana@example.com", snap.App.User.ID)
			require.NotNil(t, snap.App.Wallet)
			assert.Equal(t, 50, snap.App.Wallet.Coins)
		})
	}
}

func TestAppService_Resume(t *testing.T) {
	h := newHarness(t, AppOptions{StartingCoins: 50})
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))
	_, err := h.app.Purchase(ctx, "scarecrow")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.NoError(t, h.app.Logout(ctx))

	require.NoError(t, h.app.Resume(ctx, "ana@example.com"))
	snap := h.app.Snapshot(ctx)
	assert.Equal(t, "ana", snap.App.User.Name)
	assert.Equal(t, 50, snap.App.Wallet.Coins)

	err = h.app.Resume(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAppService_TrialExpires(t *testing.T) {
	h := newHarness(t, AppOptions{StartingCoins: 50, TrialDuration: 5 * time.Minute})
	ctx := context.Background()

	require.NoError(t, h.app.StartTrial(ctx))
	snap := h.app.Snapshot(ctx)
	require.True(t, snap.App.SignedIn())
	assert.True(t, snap.App.User.Trial)
	assert.Equal(t, domain.TrialUserName, snap.App.User.Name)

	h.clock.Advance(5*time.Minute - time.Second)
	assert.True(t, h.app.Snapshot(ctx).App.SignedIn())

	h.clock.Advance(time.Second)
	snap = h.app.Snapshot(ctx)
	assert.False(t, snap.App.SignedIn())
	assert.Equal(t, domain.ViewWelcome, snap.App.View)
}

func TestAppService_TrialEndsLiveSession(t *testing.T) {
	h := newHarness(t, AppOptions{TrialDuration: time.Minute})
	ctx := context.Background()

	require.NoError(t, h.app.StartTrial(ctx))
	_, err := h.app.StartSession(ctx, "", "Quick win", 15)
	require.NoError(t, err)

	h.clock.Advance(time.Minute)
	assert.Eventually(t, func() bool {
		return !h.app.Snapshot(ctx).App.SignedIn() && h.app.Snapshot(ctx).Session == nil
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return h.clock.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestAppService_LogoutStopsTrialTimer(t *testing.T) {
	h := newHarness(t, AppOptions{})
	ctx := context.Background()

	require.NoError(t, h.app.StartTrial(ctx))
	assert.Equal(t, 1, h.clock.Pending())
	require.NoError(t, h.app.Logout(ctx))
	assert.Equal(t, 0, h.clock.Pending())

	// A later login is not cut short by the old trial.
	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))
	h.clock.Advance(10 * time.Minute)
	assert.True(t, h.app.Snapshot(ctx).App.SignedIn())
}

func TestAppService_RequiresSignIn(t *testing.T) {
	h := newHarness(t, AppOptions{})
	ctx := context.Background()

	_, err := h.app.Purchase(ctx, "scarecrow")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = h.app.Report(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = h.app.StartSession(ctx, "farm", "x", 25)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = h.app.FinishSession(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.ErrorIs(t, h.app.Navigate(domain.ViewDashboard), domain.ErrNotAuthenticated)

	// Tasks are shared and need no account.
	_, err = h.app.AddTask(ctx, "Read", "11:30", "")
	assert.NoError(t, err)
}

func TestAppService_Purchase(t *testing.T) {
	h := newHarness(t, AppOptions{StartingCoins: 150})
	ctx := context.Background()
	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))

	_, err := h.app.Purchase(ctx, "golden-seeds")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 150, h.app.Snapshot(ctx).App.Wallet.Coins)

	w, err := h.app.Purchase(ctx, "scarecrow")
	require.NoError(t, err)
	assert.Equal(t, 0, w.Coins)
	assert.Equal(t, 0, h.app.Snapshot(ctx).App.Wallet.Coins)
}

func TestAppService_SessionRoundTrip(t *testing.T) {
	h := newHarness(t, AppOptions{StartingCoins: 50, DefaultGame: domain.GameFishing})
	ctx := context.Background()
	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))

	_, err := h.app.StartSession(ctx, "", "", 25)
	assert.ErrorIs(t, err, domain.ErrEmptySessionLabel)

	s, err := h.app.StartSession(ctx, "", "Write report", 25)
	require.NoError(t, err)
	assert.Equal(t, domain.GameFishing, s.Game)
	assert.Equal(t, domain.StateActive, s.State)

	_, err = h.app.StartSession(ctx, "farm", "Again", 25)
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyActive)

	h.clock.Advance(25 * time.Minute)
	require.Eventually(t, func() bool {
		snap := h.app.Snapshot(ctx)
		return snap.Session != nil && snap.Session.State == domain.StateCompleted
	}, 2*time.Second, 5*time.Millisecond)

	out, err := h.app.FinishSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, out.Result.Coins)
	assert.Equal(t, 100, out.Wallet.Coins)
	assert.Equal(t, 100, h.app.Snapshot(ctx).App.Wallet.Coins)

	r, err := h.app.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Stats.SessionsFinished)
}

func TestAppService_RejectedStartOpensNoSession(t *testing.T) {
	h := newHarness(t, AppOptions{StartingCoins: 50})
	ctx := context.Background()
	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))

	_, err := h.app.StartSession(ctx, "farm", "  ", 25)
	assert.ErrorIs(t, err, domain.ErrEmptySessionLabel)
	_, err = h.app.StartSession(ctx, "fishing", "Deep work", 7)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	assert.Nil(t, h.app.Snapshot(ctx).Session)
	_, ok := h.sessions.Current()
	assert.False(t, ok)

	// A completed, unclaimed session survives a rejected start.
	_, err = h.app.StartSession(ctx, "farm", "Plan", 15)
	require.NoError(t, err)
	h.clock.Advance(15 * time.Minute)
	require.Eventually(t, func() bool {
		cur, ok := h.sessions.Current()
		return ok && cur.State == domain.StateCompleted
	}, 2*time.Second, 5*time.Millisecond)

	_, err = h.app.StartSession(ctx, "farm", "Next", 20)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	out, err := h.app.FinishSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, out.Result.Coins)
}

func TestAppService_LogoutAbandonsActiveSession(t *testing.T) {
	h := newHarness(t, AppOptions{})
	ctx := context.Background()
	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))

	_, err := h.app.StartSession(ctx, "farm", "Focus", 25)
	require.NoError(t, err)
	h.clock.Advance(time.Minute)
	require.Eventually(t, func() bool {
		snap := h.app.Snapshot(ctx)
		return snap.Session.Remaining == 24*60
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, h.app.Logout(ctx))
	assert.Nil(t, h.app.Snapshot(ctx).Session)

	records, err := h.store.Sessions().FindRecent(ctx, "ana@example.com", testStart)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OutcomeAbandoned, records[0].Outcome)
}

func TestAppService_Tabs(t *testing.T) {
	h := newHarness(t, AppOptions{})
	ctx := context.Background()

	assert.ErrorIs(t, h.app.OpenTab(domain.TabStore), domain.ErrNotAuthenticated)
	require.NoError(t, h.app.Login(ctx, "Ana", "ana@example.com", "pw"))
	require.NoError(t, h.app.OpenTab(domain.TabStore))
	assert.Equal(t, domain.TabStore, h.app.Snapshot(ctx).App.Tab)
	assert.Error(t, h.app.OpenTab("settings"))
}
