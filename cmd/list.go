package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

var listStatus string

// listCmd represents the task list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `List all tasks ordered by time of day, or filter by status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := app.svc.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		tasks, err = filterTasks(tasks, listStatus)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), tasksPayload(tasks))
		}

		printTasks(cmd.OutOrStdout(), tasks)
		if len(tasks) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d done\n", domain.CountCompleted(tasks), len(tasks))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (pending, completed)")
}

// filterTasks keeps the tasks matching status. An empty status keeps all.
func filterTasks(tasks []*domain.Task, status string) ([]*domain.Task, error) {
	var want bool
	switch status {
	case "":
		return tasks, nil
	case "pending":
		want = false
	case "completed", "done":
		want = true
	default:
		return nil, fmt.Errorf("unknown status %q: use pending or completed", status)
	}

	var out []*domain.Task
	for _, t := range tasks {
		if t.Completed == want {
			out = append(out, t)
		}
	}
	return out, nil
}
