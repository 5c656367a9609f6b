package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/quiz"
)

var quizAnswers string

var quizCmd = &cobra.Command{
	Use:     "quiz [mood|personality|stress]",
	Aliases: []string{"analysis"},
	Short:   "Take a short self-assessment",
	Long: `Answer a few multiple choice questions and get strengths, weaknesses
and recommendations. Pass --answers to answer non-interactively, as a
comma separated list of option numbers starting at 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := quiz.ParseCategory(strings.ToLower(args[0]))
		if err != nil {
			return err
		}

		if quizAnswers == "" {
			return runAnalysisQuiz(cmd.OutOrStdout(), category)
		}

		q, err := quiz.New(category)
		if err != nil {
			return err
		}
		if err := answerAll(q, quizAnswers); err != nil {
			return err
		}
		result, err := q.Result()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), result)
		}
		renderQuizResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	quizCmd.Flags().StringVarP(&quizAnswers, "answers", "a", "", "Comma separated option numbers, e.g. 1,3,2,4,1")
}

// answerAll feeds 1-based option numbers to q.
func answerAll(q *quiz.Quiz, list string) error {
	parts := strings.Split(list, ",")
	if len(parts) != q.Len() {
		return fmt.Errorf("expected %d answers, got %d", q.Len(), len(parts))
	}
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid answer %q: %w", p, err)
		}
		if err := q.Answer(n - 1); err != nil {
			return err
		}
	}
	return nil
}

func renderQuizResult(out io.Writer, r quiz.Result) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))

	fmt.Fprintf(out, "\n  %s\n", titleStyle.Render(r.Title))
	fmt.Fprintf(out, "  %s\n", dimStyle.Render(strings.Repeat("─", 40)))
	if r.MaxScore > 0 {
		fmt.Fprintf(out, "  Score: %s\n", valueStyle.Render(fmt.Sprintf("%d/%d", r.Score, r.MaxScore)))
	}

	sections := []struct {
		title string
		lines []string
	}{
		{"Strengths", r.Strengths},
		{"Weaknesses", r.Weaknesses},
		{"Recommendations", r.Recommendations},
	}
	for _, s := range sections {
		if len(s.lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n  %s\n", dimStyle.Render(s.title))
		for _, l := range s.lines {
			fmt.Fprintf(out, "  • %s\n", l)
		}
	}
	fmt.Fprintln(out)
}
