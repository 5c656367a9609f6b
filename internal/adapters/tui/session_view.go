package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

// View renders the TUI.
func (m SessionModel) View() string {
	accent := lipgloss.NewStyle().Foreground(accentColor(m.theme, m.mode.Type())).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)

	sections := []string{titleStyle.Render(fmt.Sprintf("%s %s", m.theme.IconApp, m.mode.Title()))}

	switch {
	case m.outcome != nil:
		sections = m.viewClaimed(sections, accent, dim)
	case !m.open:
		sections = append(sections, dim.Render("No session open"), "", dim.Render("[q]uit"))
	case m.session.State == domain.StateSetup:
		sections = m.viewSetup(sections, accent, dim)
	case m.session.State == domain.StatePreparation:
		sections = m.viewPreparation(sections, accent, dim)
	case m.session.State == domain.StateActive:
		sections = m.viewActive(sections, accent, dim)
	case m.session.State == domain.StateCompleted:
		sections = m.viewCompleted(sections, accent, dim)
	}

	if m.editingNotes {
		sections = append(sections, "", accent.Render("Notes: ")+m.notesInput.View(), dim.Render("enter save · esc back"))
	}
	if m.lastErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		sections = append(sections, "", errStyle.Render("⚠ "+m.lastErr))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content + "\n"
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m SessionModel) viewSetup(sections []string, accent, dim lipgloss.Style) []string {
	var row []string
	for i, label := range presetLabels(m.mode.Presets()) {
		if i == m.presetCursor {
			row = append(row, accent.Render("▸ "+label))
		} else {
			row = append(row, dim.Render("  "+label))
		}
	}

	return append(sections,
		m.mode.Scene(),
		"",
		dim.Render("Duration")+"  "+strings.Join(row, " "),
		dim.Render(fmt.Sprintf("Reward: %d %s", domain.Reward(m.mode.Presets()[m.presetCursor]), m.theme.IconCoins)),
		"",
		accent.Render(m.theme.IconTask+" ")+m.labelInput.View(),
		"",
		dim.Render("↑/↓ duration · enter start · esc close"),
	)
}

func (m SessionModel) viewPreparation(sections []string, accent, dim lipgloss.Style) []string {
	s := m.session
	return append(sections,
		fmt.Sprintf("%s  Get ready!", m.mode.Character()),
		"",
		accent.Render(s.TaskLabel),
		dim.Render(fmt.Sprintf("%s · %d %s on completion", formatMinutesCompact(s.Duration), domain.Reward(s.Duration), m.theme.IconCoins)),
		m.notesLine(dim),
		"",
		dim.Render("enter begin · [n]otes · esc back"),
	)
}

func (m SessionModel) viewActive(sections []string, accent, dim lipgloss.Style) []string {
	s := m.session
	color := accentColor(m.theme, m.mode.Type())

	bar := progressBar(m.theme, m.mode.Type(), m.width-16)
	prog := s.Progress()

	help := "[n]otes · esc cancel"
	if m.confirmCancel {
		help = "Cancel session? Press esc again to confirm"
	}

	branch := ""
	if s.GitBranch != "" {
		branch = dim.Render(m.theme.IconGit + " " + s.GitBranch)
	}

	return append(sections,
		joinNonEmpty(dim.Render(m.theme.IconTask+" "+s.TaskLabel), branch),
		"",
		bigClock(s.RemainingTime(), color, m.width),
		"",
		bar.ViewAs(prog)+dim.Render(fmt.Sprintf("  %d%%", int(prog*100))),
		"",
		fmt.Sprintf("%s  %s", m.mode.Character(), dim.Render(m.mode.Activity())),
		m.notesLine(dim),
		"",
		dim.Render(help),
	)
}

func (m SessionModel) viewCompleted(sections []string, accent, dim lipgloss.Style) []string {
	s := m.session
	coins := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorCoins)).Bold(true)
	return append(sections,
		accent.Render(fmt.Sprintf("%s %s", m.mode.RewardIcon(), m.mode.CompletionTitle())),
		"",
		dim.Render(fmt.Sprintf("%s · %s", s.TaskLabel, formatMinutesCompact(s.Duration))),
		coins.Render(fmt.Sprintf("+%d %s", s.Reward, m.theme.IconCoins)),
		m.notesLine(dim),
		"",
		dim.Render("enter claim coins · [r]estart · [n]otes · [q]uit"),
	)
}

func (m SessionModel) viewClaimed(sections []string, accent, dim lipgloss.Style) []string {
	out := m.outcome
	coins := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorCoins)).Bold(true)
	sections = append(sections,
		accent.Render(fmt.Sprintf("%s Coins claimed!", m.mode.RewardIcon())),
		"",
		coins.Render(fmt.Sprintf("+%d %s  (balance %d)", out.Result.Coins, m.theme.IconCoins, out.Wallet.Coins)),
	)
	if out.LevelsGained > 0 {
		sections = append(sections, accent.Render(fmt.Sprintf("⭐ Level up! You are now level %d", out.Wallet.Level)))
	} else {
		sections = append(sections, dim.Render(fmt.Sprintf("Level %d · %d%% to next", out.Wallet.Level, out.Wallet.LevelProgress())))
	}
	return append(sections, "", dim.Render("[s] new session · [q]uit"))
}

func (m SessionModel) notesLine(dim lipgloss.Style) string {
	if m.session.Notes == "" {
		return ""
	}
	return dim.Italic(true).Render("“" + m.session.Notes + "”")
}
