package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

// deleteCmd represents the task delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID or ID prefix. Use with caution - this cannot be undone.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		id, err := resolveTaskID(cmd, args[0])
		if err != nil {
			return err
		}
		task, err := app.tasks.GetTask(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		if !jsonOutput && !deleteYes {
			fmt.Fprintf(out, "Are you sure you want to delete task '%s' (%s)? [y/N]: ", task.Title, shortID(task.ID))
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.TrimSpace(answer); a != "y" && a != "Y" {
				fmt.Fprintln(out, "Deletion cancelled.")
				return nil
			}
		}

		if err := app.svc.DeleteTask(ctx, id); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(out, map[string]any{"deleted": true, "task_id": id})
		}
		fmt.Fprintf(out, "🗑️  Task '%s' deleted.\n", task.Title)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
