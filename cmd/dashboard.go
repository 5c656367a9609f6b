package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/adapters/tui"
	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/game"
	"github.com/xvierd/prodvana-cli/internal/quiz"
	"github.com/xvierd/prodvana-cli/internal/services"
)

// errQuit ends the dashboard loop without an error.
var errQuit = errors.New("quit")

var tabLabels = map[domain.Tab]string{
	domain.TabMain:     "Home",
	domain.TabTasks:    "Tasks",
	domain.TabGame:     "Game",
	domain.TabReport:   "Report",
	domain.TabStore:    "Store",
	domain.TabAnalysis: "Analysis",
}

// runDashboard is the interactive flow behind a bare "prodvana": welcome,
// sign in, then the tabbed dashboard until the player quits.
func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := setupSignalHandler(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	theme := &app.config.Theme

	for ctx.Err() == nil {
		snap := app.svc.Snapshot(ctx)

		var err error
		switch snap.App.View {
		case domain.ViewWelcome:
			err = runWelcome(ctx, out, theme)
		case domain.ViewLogin:
			err = runLogin(ctx, out, theme)
		default:
			err = runTabs(ctx, cmd, theme)
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	return nil
}

func runWelcome(ctx context.Context, out io.Writer, theme *config.ThemeConfig) error {
	items := []tui.PickerItem{
		{Label: "Sign in", Desc: "Pick up where you left off"},
		{Label: "Try it free", Desc: fmt.Sprintf("%s trial, nothing to fill in", formatMinutes(app.config.TrialDuration()))},
		{Label: "Quit"},
	}
	fmt.Fprintln(out)
	res := tui.RunPicker(theme.IconApp+" Welcome to Prodvana", items, "Turn focus time into coins.", theme)
	if res.Aborted || res.Index == 2 {
		return errQuit
	}
	if res.Index == 1 {
		return app.svc.StartTrial(ctx)
	}
	return app.svc.Navigate(domain.ViewLogin)
}

func runLogin(ctx context.Context, out io.Writer, theme *config.ThemeConfig) error {
	back := func() error { return app.svc.Navigate(domain.ViewWelcome) }

	name := tui.RunTextPrompt("Name:", "Your display name", theme)
	if name.Aborted {
		return back()
	}
	email := tui.RunTextPrompt("Email:", "you@example.com", theme)
	if email.Aborted {
		return back()
	}
	password := tui.RunSecretPrompt("Password:", theme)
	if password.Aborted {
		return back()
	}

	err := app.svc.LoginWith(ctx, services.LoginRequest{
		Name:     name.Value,
		Email:    email.Value,
		Password: password.Value,
	})
	if err != nil {
		// Stay on the login view so the form is shown again.
		return err
	}
	fmt.Fprintf(out, "\nWelcome, %s!\n", strings.TrimSpace(name.Value))
	return nil
}

// runTabs shows the tab bar once and runs the chosen tab.
func runTabs(ctx context.Context, cmd *cobra.Command, theme *config.ThemeConfig) error {
	out := cmd.OutOrStdout()
	snap := app.svc.Snapshot(ctx)
	if snap.App.User == nil {
		// Trial ran out since the last prompt.
		return nil
	}

	items := make([]tui.PickerItem, 0, len(domain.Tabs)+1)
	for _, t := range domain.Tabs {
		items = append(items, tui.PickerItem{Label: tabLabels[t]})
	}
	items = append(items, tui.PickerItem{Label: "Sign out"})

	header := snap.App.User.Name
	if snap.App.User.Trial {
		header += " (trial)"
	}
	fmt.Fprintln(out)
	res := tui.RunHorizontalPicker(header, items, walletLine(snap.App.Wallet), theme)
	if res.Aborted {
		return errQuit
	}
	if res.Index == len(domain.Tabs) {
		return app.svc.Logout(ctx)
	}

	tab := domain.Tabs[res.Index]
	if err := app.svc.OpenTab(tab); err != nil {
		return err
	}

	switch tab {
	case domain.TabMain:
		return showHome(ctx, out)
	case domain.TabTasks:
		return runTasksTab(ctx, out, theme)
	case domain.TabGame:
		return runGameTab(ctx, out, theme)
	case domain.TabReport:
		report, err := app.svc.Report(ctx)
		if err != nil {
			return err
		}
		renderReport(out, report)
		return nil
	case domain.TabStore:
		return runStoreTab(ctx, out, theme)
	case domain.TabAnalysis:
		return runAnalysisTab(out, theme)
	}
	return nil
}

func showHome(ctx context.Context, out io.Writer) error {
	snap := app.svc.Snapshot(ctx)
	summary, err := app.tasks.Summary(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s Hello, %s\n", app.config.Theme.IconApp, snap.App.User.Name)
	fmt.Fprintf(out, "   %s\n", walletLine(snap.App.Wallet))
	fmt.Fprintf(out, "   %s %s\n", app.config.Theme.IconTask, taskSummary(summary))
	if snap.Session != nil {
		fmt.Fprintf(out, "   %s session %s\n", snap.Session.Game.Label(), snap.Session.State)
	}
	return nil
}

func runTasksTab(ctx context.Context, out io.Writer, theme *config.ThemeConfig) error {
	tasks, err := app.tasks.ListTasks(ctx)
	if err != nil {
		return err
	}

	items := make([]tui.PickerItem, 0, len(tasks)+2)
	for _, t := range tasks {
		items = append(items, tui.PickerItem{Label: taskLine(t)})
	}
	items = append(items,
		tui.PickerItem{Label: "Add task...", Desc: "Title and time"},
		tui.PickerItem{Label: "Search...", Desc: "Fuzzy match on titles"},
	)

	res := tui.RunPicker("Tasks:", items, "", theme)
	if res.Aborted {
		return nil
	}

	switch res.Index {
	case len(tasks):
		title := tui.RunTextPrompt("Title:", "", theme)
		if title.Aborted {
			return nil
		}
		at := tui.RunTextPrompt("Time (HH:MM):", "09:00", theme)
		if at.Aborted {
			return nil
		}
		task, err := app.svc.AddTask(ctx, title.Value, at.Value, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Task added: %s at %s\n", task.Title, task.Time)
		return nil
	case len(tasks) + 1:
		query := tui.RunTextPrompt("Search:", "", theme)
		if query.Aborted {
			return nil
		}
		found, err := app.svc.SearchTasks(ctx, query.Value)
		if err != nil {
			return err
		}
		printTasks(out, found)
		return nil
	}

	return runTaskActions(ctx, out, tasks[res.Index], theme)
}

func runTaskActions(ctx context.Context, out io.Writer, t *domain.Task, theme *config.ThemeConfig) error {
	toggle := "Mark done"
	if t.Completed {
		toggle = "Mark pending"
	}
	items := []tui.PickerItem{{Label: toggle}, {Label: "Edit"}, {Label: "Delete"}}
	res := tui.RunPicker(t.Title, items, "", theme)
	if res.Aborted {
		return nil
	}

	switch res.Index {
	case 0:
		_, err := app.svc.ToggleTask(ctx, t.ID)
		return err
	case 1:
		title := tui.RunTextPrompt("Title:", t.Title, theme)
		if title.Aborted {
			return nil
		}
		at := tui.RunTextPrompt("Time (HH:MM):", t.Time.String(), theme)
		if at.Aborted {
			return nil
		}
		_, err := app.svc.EditTask(ctx, t.ID, title.Value, at.Value, "")
		return err
	default:
		if err := app.svc.DeleteTask(ctx, t.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "🗑️  Deleted: %s\n", t.Title)
		return nil
	}
}

func runGameTab(ctx context.Context, out io.Writer, theme *config.ThemeConfig) error {
	items := make([]tui.PickerItem, len(domain.ValidGames))
	for i, g := range domain.ValidGames {
		mode := game.ForGame(g, app.config)
		items[i] = tui.PickerItem{Label: mode.Character() + " " + mode.Title(), Desc: mode.Scene()}
	}
	res := tui.RunPicker("Game:", items, "Finish a session to earn coins.", theme)
	if res.Aborted {
		return nil
	}
	return runGameSession(ctx, out, domain.ValidGames[res.Index])
}

// runGameSession opens a session for g and shows the full-screen session
// screen. Whatever is still open when the screen closes is ended.
func runGameSession(ctx context.Context, out io.Writer, g domain.GameType) error {
	ctrl := app.svc.Control()
	if _, err := ctrl.Setup(ctx, g); err != nil {
		return err
	}
	defer app.sessions.End(context.WithoutCancel(ctx))

	m := tui.NewSessionModel(ctx, ctrl, game.ForGame(g, app.config), &app.config.Theme)
	final, err := tui.RunSession(ctx, m)
	if err != nil {
		return err
	}
	for _, o := range final.Claimed {
		printOutcome(out, o.Result, o.LevelsGained, o.Wallet)
	}
	return nil
}

func runStoreTab(ctx context.Context, out io.Writer, theme *config.ThemeConfig) error {
	wallet, err := app.svc.Wallet(ctx)
	if err != nil {
		return err
	}

	catalog := app.svc.Catalog()
	items := make([]tui.PickerItem, len(catalog))
	for i, item := range catalog {
		items[i] = tui.PickerItem{
			Label:  fmt.Sprintf("%s (%d)", item.Name, item.Cost),
			Desc:   item.Bonus,
			Locked: !wallet.CanAfford(item.Cost),
		}
	}
	res := tui.RunPicker("Store:", items, walletLine(wallet), theme)
	if res.Aborted {
		return nil
	}
	return buyItem(ctx, out, catalog[res.Index].ID)
}

func runAnalysisTab(out io.Writer, theme *config.ThemeConfig) error {
	items := make([]tui.PickerItem, len(quiz.Categories))
	for i, c := range quiz.Categories {
		items[i] = tui.PickerItem{Label: c.Title()}
	}
	res := tui.RunPicker("Analysis:", items, "A few quick questions.", theme)
	if res.Aborted {
		return nil
	}
	return runAnalysisQuiz(out, quiz.Categories[res.Index])
}

// runAnalysisQuiz asks each question with a picker and prints the result.
func runAnalysisQuiz(out io.Writer, c quiz.Category) error {
	theme := &app.config.Theme
	q, err := quiz.New(c)
	if err != nil {
		return err
	}
	for !q.Done() {
		cur, err := q.Current()
		if err != nil {
			return err
		}
		opts := make([]tui.PickerItem, len(cur.Options))
		for i, o := range cur.Options {
			opts[i] = tui.PickerItem{Label: o}
		}
		title := fmt.Sprintf("(%d/%d) %s", q.Position()+1, q.Len(), cur.Text)
		pick := tui.RunPicker(title, opts, "", theme)
		if pick.Aborted {
			return nil
		}
		if err := q.Answer(pick.Index); err != nil {
			return err
		}
	}

	result, err := q.Result()
	if err != nil {
		return err
	}
	renderQuizResult(out, result)
	return nil
}
