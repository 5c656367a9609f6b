package cmd

import (
	"strings"
	"testing"

	"github.com/xvierd/prodvana-cli/internal/quiz"
)

type quizResultJSON struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
}

func TestQuizCmd(t *testing.T) {
	c := newCLI(t)

	var mood quizResultJSON
	decodeJSON(t, c.mustRun("--json", "quiz", "mood", "--answers", "1,1,1,1,1"), &mood)
	if mood.Score != 15 || mood.MaxScore != 15 {
		t.Errorf("mood score = %d/%d, want 15/15", mood.Score, mood.MaxScore)
	}
	if !strings.Contains(mood.Title, "Excellent positive mood") {
		t.Errorf("mood title = %q", mood.Title)
	}

	out := c.mustRun("quiz", "stress", "--answers", "4, 4, 4, 4, 4")
	if !strings.Contains(out, "High stress level") {
		t.Errorf("stress output = %q", out)
	}
	if !strings.Contains(out, "Score: 15/20") {
		t.Errorf("stress output should show the score: %q", out)
	}

	out = c.mustRun("analysis", "personality", "-a", "1,2,3,4,1")
	if !strings.Contains(out, "Your personality profile") {
		t.Errorf("personality output = %q", out)
	}
	if strings.Contains(out, "Score:") {
		t.Errorf("personality has no score: %q", out)
	}
}

func TestQuizCmd_Errors(t *testing.T) {
	c := newCLI(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"too few answers", []string{"quiz", "mood", "--answers", "1,2"}, "expected 5 answers, got 2"},
		{"not a number", []string{"quiz", "mood", "--answers", "1,2,x,4,1"}, "invalid answer"},
		{"out of range", []string{"quiz", "mood", "--answers", "1,2,9,4,1"}, "answer out of range"},
		{"unknown category", []string{"quiz", "zodiac", "--answers", "1"}, "unknown quiz category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.run(tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want an error containing %q", err, tt.want)
			}
		})
	}
}

func TestAnswerAll(t *testing.T) {
	q, err := quiz.New(quiz.CategoryMood)
	if err != nil {
		t.Fatalf("failed to start quiz: %v", err)
	}
	if err := answerAll(q, "4,4,4,4,4"); err != nil {
		t.Fatalf("answerAll failed: %v", err)
	}
	if !q.Done() {
		t.Fatal("quiz should be done")
	}

	r, err := q.Result()
	if err != nil {
		t.Fatalf("failed to score quiz: %v", err)
	}
	if r.Score != 0 {
		t.Errorf("score = %d, want 0", r.Score)
	}
	if !strings.Contains(r.Title, "needs some care") {
		t.Errorf("title = %q", r.Title)
	}
}
