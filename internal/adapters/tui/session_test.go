package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/game"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(key(string(r)))
	}
	return m
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

// fakeController runs the session state machine in memory.
type fakeController struct {
	session *domain.GameSession
	calls   []string
	wallet  domain.Wallet
}

func newFakeController(g domain.GameType) *fakeController {
	s := domain.NewGameSession(g)
	return &fakeController{session: &s, wallet: domain.NewWallet(50)}
}

func (f *fakeController) apply(ev domain.Event) (domain.GameSession, error) {
	if f.session == nil {
		return domain.GameSession{}, domain.ErrNoActiveSession
	}
	next, _, err := domain.Reduce(*f.session, ev)
	if err != nil {
		return *f.session, err
	}
	*f.session = next
	return next, nil
}

func (f *fakeController) Setup(ctx context.Context, g domain.GameType) (domain.GameSession, error) {
	f.calls = append(f.calls, "setup")
	s := domain.NewGameSession(g)
	f.session = &s
	return s, nil
}

func (f *fakeController) Current() (domain.GameSession, bool) {
	if f.session == nil {
		return domain.GameSession{}, false
	}
	return *f.session, true
}

func (f *fakeController) Start(label string, minutes int) (domain.GameSession, error) {
	f.calls = append(f.calls, "start")
	return f.apply(domain.StartEvent(label, minutes, nil))
}

func (f *fakeController) Begin(ctx context.Context) (domain.GameSession, error) {
	f.calls = append(f.calls, "begin")
	return f.apply(domain.BeginEvent(time.Now()))
}

func (f *fakeController) Notes(text string) (domain.GameSession, error) {
	return f.apply(domain.NotesEvent(text))
}

func (f *fakeController) Finish(ctx context.Context) (*ports.SessionOutcome, error) {
	f.calls = append(f.calls, "finish")
	if f.session == nil {
		return nil, domain.ErrNoActiveSession
	}
	r, err := f.session.Result()
	if err != nil {
		return nil, err
	}
	gained := f.wallet.Earn(r.Coins)
	f.session = nil
	return &ports.SessionOutcome{Result: r, LevelsGained: gained, Wallet: f.wallet}, nil
}

func (f *fakeController) Restart(ctx context.Context) error {
	f.calls = append(f.calls, "restart")
	_, err := f.apply(domain.Event{Kind: domain.EventRestart})
	return err
}

func (f *fakeController) Cancel(ctx context.Context) error {
	f.calls = append(f.calls, "cancel")
	_, err := f.apply(domain.Event{Kind: domain.EventCancel})
	return err
}

// complete fast-forwards an active session to completion.
func (f *fakeController) complete() {
	for f.session.State == domain.StateActive {
		f.apply(domain.TickEvent(time.Now()))
	}
}

func newTestModel(ctrl *fakeController) SessionModel {
	m := NewSessionModel(context.Background(), ctrl, game.ForGame(ctrl.session.Game, nil), nil)
	m.width = 80
	m.height = 30
	return m
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{25 * time.Minute, "25:00"},
		{5 * time.Minute, "05:00"},
		{1*time.Minute + 30*time.Second, "01:30"},
		{0, "00:00"},
		{90 * time.Second, "01:30"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration(%v) = %v, want %v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatMinutesCompact(t *testing.T) {
	tests := map[int]string{15: "15m", 60: "1h", 90: "1h30m"}
	for in, want := range tests {
		if got := formatMinutesCompact(in); got != want {
			t.Errorf("formatMinutesCompact(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestBigClock(t *testing.T) {
	wide := bigClock(25*time.Minute, "#22C55E", 80)
	if lines := strings.Count(wide, "\n") + 1; lines != 5 {
		t.Errorf("bigClock() wide has %d lines, want 5", lines)
	}
	narrow := bigClock(25*time.Minute, "#22C55E", 30)
	if !strings.Contains(narrow, "25:00") || strings.Contains(narrow, "\n") {
		t.Errorf("bigClock() narrow = %q", narrow)
	}
}

func TestSessionModel_DefaultPresetSelected(t *testing.T) {
	m := newTestModel(newFakeController(domain.GameFarm))
	if got := m.mode.Presets()[m.presetCursor]; got != 25 {
		t.Errorf("selected preset = %d, want 25", got)
	}
}

func TestSessionModel_EmptyLabelStaysInSetup(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)

	model = press(model, "enter")
	m := model.(SessionModel)

	if m.session.State != domain.StateSetup {
		t.Errorf("state = %v, want setup", m.session.State)
	}
	if !strings.Contains(m.View(), domain.ErrEmptySessionLabel.Error()) {
		t.Error("View() should show the validation error in place")
	}
}

func TestSessionModel_FullFlow(t *testing.T) {
	ctrl := newFakeController(domain.GameFishing)
	var model tea.Model = newTestModel(ctrl)

	// Move from the 25 minute default to 60 and name the task.
	model = press(model, "down", "down", "down")
	model = typeText(model, "Write report")
	model = press(model, "enter")

	m := model.(SessionModel)
	if m.session.State != domain.StatePreparation {
		t.Fatalf("state after start = %v, want preparation", m.session.State)
	}
	if m.session.Duration != 60 || m.session.TaskLabel != "Write report" {
		t.Errorf("session = %+v", m.session)
	}
	if !strings.Contains(m.View(), "Get ready") {
		t.Error("preparation view should ask the player to get ready")
	}

	model = press(model, "enter")
	m = model.(SessionModel)
	if m.session.State != domain.StateActive {
		t.Fatalf("state after begin = %v, want active", m.session.State)
	}
	if !strings.Contains(m.View(), "0%") {
		t.Error("active view should show progress")
	}

	ctrl.complete()
	model, _ = model.Update(tickMsg(time.Now()))
	m = model.(SessionModel)
	if m.session.State != domain.StateCompleted {
		t.Fatalf("state after ticks = %v, want completed", m.session.State)
	}
	if !strings.Contains(m.View(), "What a catch!") {
		t.Error("completed view should use the game completion title")
	}

	model = press(model, "enter")
	m = model.(SessionModel)
	if m.outcome == nil || m.outcome.Result.Coins != 120 {
		t.Fatalf("outcome = %+v, want 120 coins", m.outcome)
	}
	if len(m.Claimed) != 1 {
		t.Errorf("Claimed = %d, want 1", len(m.Claimed))
	}
	if !strings.Contains(m.View(), "Level up!") {
		t.Error("claimed view should announce the level up")
	}

	model = press(model, "s")
	m = model.(SessionModel)
	if m.outcome != nil || m.session.State != domain.StateSetup {
		t.Errorf("after new session: outcome=%v state=%v", m.outcome, m.session.State)
	}
	if m.labelInput.Value() != "" {
		t.Error("new session should start with an empty label")
	}
}

func TestSessionModel_CancelNeedsConfirm(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)
	model = typeText(model, "Plan")
	model = press(model, "enter", "enter")

	model = press(model, "esc")
	m := model.(SessionModel)
	if !m.confirmCancel || m.session.State != domain.StateActive {
		t.Fatalf("first esc: confirm=%v state=%v", m.confirmCancel, m.session.State)
	}
	if !strings.Contains(m.View(), "Press esc again") {
		t.Error("View() should show the confirm hint")
	}

	// Any other key clears the confirmation.
	model = press(model, "z")
	if model.(SessionModel).confirmCancel {
		t.Error("other key should reset confirm")
	}

	model = press(model, "esc", "esc")
	m = model.(SessionModel)
	if m.session.State != domain.StateSetup {
		t.Errorf("state after confirmed cancel = %v, want setup", m.session.State)
	}
	if ctrl.calls[len(ctrl.calls)-1] != "cancel" {
		t.Errorf("calls = %v, want cancel last", ctrl.calls)
	}
}

func TestSessionModel_PreparationEscCancels(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)
	model = typeText(model, "Plan")
	model = press(model, "enter", "esc")

	if s := model.(SessionModel).session; s.State != domain.StateSetup {
		t.Errorf("state = %v, want setup", s.State)
	}
}

func TestSessionModel_Notes(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)
	model = typeText(model, "Plan")
	model = press(model, "enter", "enter", "n")

	if !model.(SessionModel).editingNotes {
		t.Fatal("n should open the notes editor")
	}
	model = typeText(model, "ship it")
	model = press(model, "enter")

	m := model.(SessionModel)
	if m.editingNotes || m.session.Notes != "ship it" {
		t.Errorf("notes = %q editing=%v", m.session.Notes, m.editingNotes)
	}
}

func TestSessionModel_Restart(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)
	model = typeText(model, "Plan")
	model = press(model, "enter", "enter")
	ctrl.complete()
	model, _ = model.Update(tickMsg(time.Now()))

	model = press(model, "r")
	m := model.(SessionModel)
	if m.session.State != domain.StateSetup || m.session.TaskLabel != "" {
		t.Errorf("after restart session = %+v", m.session)
	}
}

func TestSessionModel_CtrlCCancelsLiveSession(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)
	model = typeText(model, "Plan")
	model = press(model, "enter", "enter")

	_, cmd := model.Update(key("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if ctrl.session.State != domain.StateSetup {
		t.Errorf("state = %v, want setup after quitting an active session", ctrl.session.State)
	}
}

func TestSessionModel_QuitsWhenSessionDisappears(t *testing.T) {
	ctrl := newFakeController(domain.GameFarm)
	var model tea.Model = newTestModel(ctrl)

	ctrl.session = nil
	_, cmd := model.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick without a session should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cmd should produce tea.QuitMsg")
	}
}

func TestPicker_LockedItemsCannotBeChosen(t *testing.T) {
	items := []PickerItem{
		{Label: "Scarecrow", Desc: "150"},
		{Label: "Boat", Desc: "600", Locked: true},
	}
	var model tea.Model = newPicker("Store", items, "", false, nil)

	model = press(model, "down", "enter")
	m := model.(pickerModel)
	if m.chosen {
		t.Error("enter on a locked item should not choose it")
	}

	model = press(model, "2")
	if model.(pickerModel).chosen {
		t.Error("digit jump to a locked item should not choose it")
	}

	model = press(model, "1")
	m = model.(pickerModel)
	if !m.chosen || m.cursor != 0 {
		t.Errorf("digit jump: chosen=%v cursor=%d", m.chosen, m.cursor)
	}
}

func TestPicker_Horizontal(t *testing.T) {
	items := []PickerItem{{Label: "farm"}, {Label: "fishing"}}
	var model tea.Model = newPicker("Game", items, "", true, nil)

	model = press(model, "right", "enter")
	m := model.(pickerModel)
	if !m.chosen || m.cursor != 1 {
		t.Errorf("chosen=%v cursor=%d, want fishing", m.chosen, m.cursor)
	}
	if !strings.Contains(m.View(), "fishing") {
		t.Error("View() should list items")
	}
}

func TestResolveTheme(t *testing.T) {
	th := resolveTheme(nil)
	if th.ColorFarm == "" || th.IconCoins == "" {
		t.Errorf("resolveTheme(nil) = %+v", th)
	}

	partial := th
	partial.ColorFarm = ""
	partial.IconApp = "🚜"
	got := resolveTheme(&partial)
	if got.ColorFarm != th.ColorFarm || got.IconApp != "🚜" {
		t.Errorf("resolveTheme(partial) = %+v", got)
	}
}
