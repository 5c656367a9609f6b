package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/game"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

// SessionController is what the session screen needs from the application.
type SessionController interface {
	Setup(ctx context.Context, g domain.GameType) (domain.GameSession, error)
	Current() (domain.GameSession, bool)
	Start(label string, minutes int) (domain.GameSession, error)
	Begin(ctx context.Context) (domain.GameSession, error)
	Notes(text string) (domain.GameSession, error)
	Finish(ctx context.Context) (*ports.SessionOutcome, error)
	Restart(ctx context.Context) error
	Cancel(ctx context.Context) error
}

// SessionModel is the full-screen game session: setup form, preparation,
// countdown and completion, following the session state machine.
type SessionModel struct {
	ctx   context.Context
	ctrl  SessionController
	mode  game.Mode
	theme config.ThemeConfig

	session domain.GameSession
	open    bool

	presetCursor int
	labelInput   textinput.Model
	notesInput   textinput.Model
	editingNotes bool

	confirmCancel bool
	outcome       *ports.SessionOutcome
	lastErr       string

	width  int
	height int

	// Claimed holds the outcomes collected before the screen closed.
	Claimed []ports.SessionOutcome
}

// NewSessionModel creates the session screen for the session ctrl has open.
func NewSessionModel(ctx context.Context, ctrl SessionController, mode game.Mode, theme *config.ThemeConfig) SessionModel {
	label := textinput.New()
	label.Placeholder = "What are you working on?"
	label.CharLimit = 120
	label.Width = 40
	label.Focus()

	notes := textinput.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 500
	notes.Width = 40

	m := SessionModel{
		ctx:        ctx,
		ctrl:       ctrl,
		mode:       mode,
		theme:      resolveTheme(theme),
		labelInput: label,
		notesInput: notes,
		width:      getTerminalWidth(),
	}

	presets := mode.Presets()
	for i, p := range presets {
		if p == mode.DefaultDuration() {
			m.presetCursor = i
		}
	}
	m.session, m.open = ctrl.Current()
	return m
}

// Init starts the refresh ticker.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// Session returns the session as last seen by the screen.
func (m SessionModel) Session() (domain.GameSession, bool) {
	return m.session, m.open
}

// Update handles messages and updates the model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		if !m.open && m.outcome == nil {
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.editingNotes {
			return m.updateNotes(msg)
		}
		if m.outcome != nil {
			return m.updateClaimed(msg)
		}
		switch m.session.State {
		case domain.StateSetup:
			return m.updateSetup(msg)
		case domain.StatePreparation:
			return m.updatePreparation(msg)
		case domain.StateActive:
			return m.updateActive(msg)
		case domain.StateCompleted:
			return m.updateCompleted(msg)
		}
	}

	return m, nil
}

func (m *SessionModel) refresh() {
	m.session, m.open = m.ctrl.Current()
}

func (m *SessionModel) fail(err error) {
	m.lastErr = err.Error()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	if m.open && m.session.IsLive() {
		_ = m.ctrl.Cancel(m.ctx)
		m.refresh()
	}
	return m, tea.Quit
}

func (m SessionModel) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := m.mode.Presets()
	switch msg.String() {
	case "up":
		if m.presetCursor > 0 {
			m.presetCursor--
		}
		return m, nil
	case "down":
		if m.presetCursor < len(presets)-1 {
			m.presetCursor++
		}
		return m, nil
	case "esc":
		return m, tea.Quit
	case "enter":
		s, err := m.ctrl.Start(m.labelInput.Value(), presets[m.presetCursor])
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.session, m.lastErr = s, ""
		m.labelInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

func (m SessionModel) updatePreparation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		s, err := m.ctrl.Begin(m.ctx)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.session, m.lastErr = s, ""
	case "esc":
		return m.cancel()
	case "n":
		return m.openNotes()
	}
	return m, nil
}

func (m SessionModel) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "x":
		if !m.confirmCancel {
			m.confirmCancel = true
			return m, nil
		}
		return m.cancel()
	case "n":
		m.confirmCancel = false
		return m.openNotes()
	default:
		m.confirmCancel = false
	}
	return m, nil
}

func (m SessionModel) updateCompleted(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "f":
		out, err := m.ctrl.Finish(m.ctx)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.outcome, m.lastErr = out, ""
		m.Claimed = append(m.Claimed, *out)
		m.refresh()
	case "r":
		if err := m.ctrl.Restart(m.ctx); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh()
		m.resetForm()
	case "n":
		return m.openNotes()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m SessionModel) updateClaimed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "enter":
		s, err := m.ctrl.Setup(m.ctx, m.mode.Type())
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.session, m.open = s, true
		m.outcome = nil
		m.resetForm()
		return m, textinput.Blink
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m SessionModel) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s, err := m.ctrl.Notes(m.notesInput.Value())
		if err != nil {
			m.fail(err)
		} else {
			m.session = s
		}
		m.editingNotes = false
		m.notesInput.Blur()
		return m, nil
	case "esc":
		m.editingNotes = false
		m.notesInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

func (m SessionModel) openNotes() (tea.Model, tea.Cmd) {
	m.editingNotes = true
	m.notesInput.SetValue(m.session.Notes)
	m.notesInput.Focus()
	return m, m.notesInput.Cursor.BlinkCmd()
}

func (m SessionModel) cancel() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Cancel(m.ctx); err != nil {
		m.fail(err)
		return m, nil
	}
	m.refresh()
	m.resetForm()
	return m, textinput.Blink
}

func (m *SessionModel) resetForm() {
	m.confirmCancel = false
	m.lastErr = ""
	m.labelInput.Reset()
	m.labelInput.Focus()
	m.notesInput.Reset()
}

// RunSession shows the session screen until the player quits or ctx ends.
func RunSession(ctx context.Context, m SessionModel) (SessionModel, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	final, err := p.Run()
	close(done)
	wg.Wait()
	if err != nil {
		return m, fmt.Errorf("failed to run TUI: %w", err)
	}
	return final.(SessionModel), nil
}

func presetLabels(presets []int) []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = formatMinutesCompact(p)
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "  ")
}
