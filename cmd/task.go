package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

// taskCmd groups the task list commands.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage the daily task list",
	Long:    `Add, list, edit, complete, search and delete the tasks of your day.`,
}

var (
	editTitle    string
	editAt       string
	editPriority string
)

var taskToggleCmd = &cobra.Command{
	Use:   "toggle [task-id]",
	Short: "Mark a task done, or pending again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := resolveTaskID(cmd, args[0])
		if err != nil {
			return err
		}
		task, err := app.svc.ToggleTask(ctx, id)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), task)
		}
		state := "pending"
		if task.Completed {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is %s\n", taskIcon(task), task.Title, state)
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Change a task's title, time or priority",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if editTitle == "" && editAt == "" && editPriority == "" {
			return fmt.Errorf("nothing to change: pass --title, --at or --priority")
		}
		id, err := resolveTaskID(cmd, args[0])
		if err != nil {
			return err
		}
		task, err := app.svc.EditTask(ctx, id, editTitle, editAt, editPriority)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), task)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✏️  Task updated: %s\n", taskLine(task))
		return nil
	},
}

var taskSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy search task titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := app.svc.SearchTasks(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), tasksPayload(tasks))
		}
		printTasks(cmd.OutOrStdout(), tasks)
		return nil
	},
}

func init() {
	taskEditCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	taskEditCmd.Flags().StringVar(&editAt, "at", "", "New time of day (HH:MM)")
	taskEditCmd.Flags().StringVar(&editPriority, "priority", "", "New priority: high, medium, low")

	taskCmd.AddCommand(addCmd)
	taskCmd.AddCommand(listCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskSearchCmd)
	taskCmd.AddCommand(deleteCmd)
}

// resolveTaskID accepts a full task ID or the short prefix shown by "task list".
func resolveTaskID(cmd *cobra.Command, ref string) (string, error) {
	tasks, err := app.svc.ListTasks(cmd.Context())
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func taskIcon(t *domain.Task) string {
	if t.Completed {
		return "✅"
	}
	return "⏳"
}

func priorityMark(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "‼"
	case domain.PriorityLow:
		return "·"
	default:
		return " "
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// taskLine renders a task on one line: status, time, priority and title.
func taskLine(t *domain.Task) string {
	return fmt.Sprintf("%s %s %s %s", taskIcon(t), t.Time, priorityMark(t.Priority), t.Title)
}

func printTasks(out io.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return
	}

	fmt.Fprintf(out, "📋 Tasks (%d):\n\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(out, "%s  (ID: %s)\n", taskLine(t), shortID(t.ID))
	}
}

func tasksPayload(tasks []*domain.Task) map[string]any {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	}
}
