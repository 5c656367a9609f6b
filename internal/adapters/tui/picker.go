package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/prodvana-cli/internal/config"
)

// PickerItem represents one option in the picker. Locked items are shown but
// cannot be chosen, e.g. store items the player cannot afford.
type PickerItem struct {
	Label  string
	Desc   string
	Locked bool
}

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title      string
	items      []PickerItem
	footer     string
	cursor     int
	horizontal bool
	chosen     bool
	aborted    bool
	theme      config.ThemeConfig
}

func newPicker(title string, items []PickerItem, footer string, horizontal bool, theme *config.ThemeConfig) pickerModel {
	return pickerModel{
		title:      title,
		items:      items,
		footer:     footer,
		horizontal: horizontal,
		theme:      resolveTheme(theme),
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	prev, next := "up", "down"
	if m.horizontal {
		prev, next = "left", "right"
	}

	switch s := key.String(); s {
	case prev, "k", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case next, "j", "l":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if m.items[m.cursor].Locked {
			return m, nil
		}
		m.chosen = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	default:
		// 1-9 jump straight to an item.
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			i := int(s[0] - '1')
			if i < len(m.items) && !m.items[i].Locked {
				m.cursor = i
				m.chosen = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorFarm)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	lockedStyle := dimStyle.Strikethrough(true)

	render := func(i int, item PickerItem, format string) string {
		text := fmt.Sprintf(format, item.Label, item.Desc)
		switch {
		case i == m.cursor && !item.Locked:
			return activeStyle.Render(text)
		case item.Locked:
			return lockedStyle.Render(text)
		default:
			return dimStyle.Render(text)
		}
	}

	if m.horizontal {
		b.WriteString(titleStyle.Render("  "+m.title) + "  ")
		for i, item := range m.items {
			marker := "   "
			if i == m.cursor {
				marker = " ▸ "
			}
			b.WriteString(render(i, item, marker+"%s %s "))
		}
		b.WriteString("\n")
		if m.footer != "" {
			b.WriteString(dimStyle.Render("  "+m.footer) + "\n")
		}
		b.WriteString(dimStyle.Render("  ←/→ navigate · enter select · esc back") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n\n")
	for i, item := range m.items {
		marker := "    "
		if i == m.cursor {
			marker = "  ▸ "
		}
		b.WriteString(render(i, item, marker+"%-14s %s") + "\n")
	}
	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  "+m.footer) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · enter select · esc back") + "\n")

	return b.String()
}

// RunPicker launches an interactive arrow-key picker and returns the selected index.
func RunPicker(title string, items []PickerItem, footer string, theme *config.ThemeConfig) PickerResult {
	return runPicker(newPicker(title, items, footer, false, theme))
}

// RunHorizontalPicker launches a compact horizontal arrow-key picker.
func RunHorizontalPicker(title string, items []PickerItem, footer string, theme *config.ThemeConfig) PickerResult {
	return runPicker(newPicker(title, items, footer, true, theme))
}

func runPicker(m pickerModel) PickerResult {
	if len(m.items) == 0 {
		return PickerResult{Aborted: true}
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted || !final.chosen {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}

// --- Styled text prompt ---

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	theme   config.ThemeConfig
}

func newTextPrompt(title, placeholder string, secret bool, theme *config.ThemeConfig) textPromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 50
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return textPromptModel{title: title, input: ti, theme: resolveTheme(theme)}
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + " ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  enter confirm · esc back") + "\n")

	return b.String()
}

// RunTextPrompt launches a styled text input prompt.
func RunTextPrompt(title string, placeholder string, theme *config.ThemeConfig) TextPromptResult {
	return runPrompt(newTextPrompt(title, placeholder, false, theme))
}

// RunSecretPrompt is RunTextPrompt with the input masked.
func RunSecretPrompt(title string, theme *config.ThemeConfig) TextPromptResult {
	return runPrompt(newTextPrompt(title, "", true, theme))
}

func runPrompt(m textPromptModel) TextPromptResult {
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
