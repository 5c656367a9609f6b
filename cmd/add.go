package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/services"
)

var (
	addAt       string
	addPriority string
)

// addCmd represents the task add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long:  `Add a task to the daily list, scheduled at a time of day.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := services.AddTaskRequest{
			Title:    strings.Join(args, " "),
			Time:     addAt,
			Priority: addPriority,
		}

		task, err := app.tasks.AddTask(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), task)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task added: %s at %s (ID: %s)\n", task.Title, task.Time, shortID(task.ID))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addAt, "at", "a", "09:00", "Time of day (HH:MM)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "P", "", "Priority: high, medium, low (default medium)")
}
