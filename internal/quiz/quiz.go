// Package quiz implements the short self-assessment questionnaires shown in
// the analysis tab. Scores are computed from the option index (0-3) chosen
// for each question.
package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown quiz category")
	ErrInvalidAnswer   = errors.New("answer out of range")
	ErrQuizFinished    = errors.New("quiz already finished")
	ErrQuizNotFinished = errors.New("quiz not finished")
)

// Category selects a question set.
type Category string

const (
	CategoryMood        Category = "mood"
	CategoryPersonality Category = "personality"
	CategoryStress      Category = "stress"
)

// Categories lists the available quizzes in display order.
var Categories = []Category{CategoryMood, CategoryPersonality, CategoryStress}

// Title returns the display name of the category.
func (c Category) Title() string {
	switch c {
	case CategoryMood:
		return "Daily mood check"
	case CategoryPersonality:
		return "Personality overview"
	case CategoryStress:
		return "Stress assessment"
	default:
		return "Unknown"
	}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Question is one multiple choice prompt.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// Result is the canned analysis for a finished quiz.
type Result struct {
	Category        Category `json:"category"`
	Title           string   `json:"title"`
	Score           int      `json:"score"`
	MaxScore        int      `json:"max_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// Quiz walks through one category's questions.
type Quiz struct {
	category  Category
	questions []Question
	answers   []int
}

// New starts a quiz for the category.
func New(c Category) (*Quiz, error) {
	qs, ok := questionSets[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return &Quiz{category: c, questions: qs}, nil
}

// Category returns the quiz category.
func (q *Quiz) Category() Category { return q.category }

// Len returns the number of questions.
func (q *Quiz) Len() int { return len(q.questions) }

// Position returns the zero-based index of the current question.
func (q *Quiz) Position() int { return len(q.answers) }

// Done reports whether every question has been answered.
func (q *Quiz) Done() bool { return len(q.answers) >= len(q.questions) }

// Current returns the question waiting for an answer.
func (q *Quiz) Current() (Question, error) {
	if q.Done() {
		return Question{}, ErrQuizFinished
	}
	return q.questions[len(q.answers)], nil
}

// Answer records the option index for the current question.
func (q *Quiz) Answer(index int) error {
	cur, err := q.Current()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(cur.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidAnswer, index)
	}
	q.answers = append(q.answers, index)
	return nil
}

// Result scores the answers. It fails until the quiz is done.
func (q *Quiz) Result() (Result, error) {
	if !q.Done() {
		return Result{}, ErrQuizNotFinished
	}
	switch q.category {
	case CategoryMood:
		return moodResult(q.answers), nil
	case CategoryStress:
		return stressResult(q.answers), nil
	default:
		return personalityResult(), nil
	}
}

func moodResult(answers []int) Result {
	score := 0
	for _, a := range answers {
		score += 3 - a
	}
	r := Result{Category: CategoryMood, Score: score, MaxScore: 15}
	switch {
	case score >= 12:
		r.Title = "Excellent positive mood! 😊"
		r.Strengths = []string{"High energy", "Strong self-motivation", "Positive outlook"}
		r.Weaknesses = []string{"Watch out for over-optimism"}
		r.Recommendations = []string{
			"Invest your energy in new projects",
			"Share your enthusiasm to motivate others",
			"Keep the mood going with exercise and hobbies",
		}
	case score >= 8:
		r.Title = "Balanced mood 😌"
		r.Strengths = []string{"Emotional stability", "Adaptability", "Good balance"}
		r.Weaknesses = []string{"May need an extra push sometimes"}
		r.Recommendations = []string{
			"Set clear goals to raise your drive",
			"Try something new to break the routine",
			"Take care of yourself regularly",
		}
	default:
		r.Title = "Your mood needs some care 😔"
		r.Strengths = []string{"Aware of your feelings", "Honest with yourself"}
		r.Weaknesses = []string{"Low energy", "May need extra support"}
		r.Recommendations = []string{
			"Start with small steps to improve your day",
			"Practice breathing and relaxation exercises",
			"Talk to a friend or a professional if it persists",
			"Look after your sleep and nutrition",
		}
	}
	return r
}

func stressResult(answers []int) Result {
	level := 0
	for _, a := range answers {
		level += a
	}
	r := Result{Category: CategoryStress, Score: level, MaxScore: 20, Weaknesses: []string{}}
	switch {
	case level <= 5:
		r.Title = "Low stress level 😌"
		r.Strengths = []string{"Good stress management"}
	case level <= 10:
		r.Title = "Medium stress level 😐"
		r.Strengths = []string{"Aware of your stress sources"}
	default:
		r.Title = "High stress level 😰"
		r.Strengths = []string{"Aware of your stress sources"}
	}
	if level > 10 {
		r.Weaknesses = []string{"Stress hurts your productivity", "Needs better coping strategies"}
		r.Recommendations = []string{
			"Practice relaxation techniques daily",
			"Organize your time and set priorities",
			"Don't hesitate to seek professional help",
		}
	} else {
		r.Recommendations = []string{
			"Keep your current strategies",
			"Share what works for you with others",
		}
	}
	return r
}

func personalityResult() Result {
	return Result{
		Category:   CategoryPersonality,
		Title:      "Your personality profile",
		Strengths:  []string{"Analytical ability", "Self-awareness", "Flexible thinking"},
		Weaknesses: []string{"May need to build self-confidence"},
		Recommendations: []string{
			"Focus on your strengths and use them",
			"Accept your weaknesses and work on them gradually",
			"Make a personal growth plan",
		},
	}
}

var questionSets = map[Category][]Question{
	CategoryMood: {
		{"How do you feel when you wake up in the morning?", []string{"Excited and full of energy", "Calm and steady", "A little tired", "I don't want to get out of bed"}},
		{"What motivates you most to get things done?", []string{"Rewards and recognition", "Reaching personal goals", "Helping others", "Avoiding trouble"}},
		{"How do you handle daily pressure?", []string{"I face it with confidence", "I plan and organize", "I ask for help", "I feel overwhelmed"}},
		{"When are you most productive?", []string{"Early morning", "Midday", "Evening", "No particular time"}},
		{"How do you feel about new challenges?", []string{"Excited and eager", "Careful but ready", "A little anxious", "I avoid them when I can"}},
	},
	CategoryPersonality: {
		{"In social situations you usually:", []string{"Start the conversation", "Listen more than you talk", "Adapt to the situation", "Stay in the background"}},
		{"When making important decisions:", []string{"I trust my gut", "I analyze facts and data", "I ask others", "I put it off as long as possible"}},
		{"Your working style:", []string{"I like variety and change", "I prefer routine and order", "I work in bursts of energy", "I need outside motivation"}},
		{"When you face a hard problem:", []string{"I look for creative solutions", "I follow logical steps", "I ask for help right away", "I get frustrated and stop"}},
		{"Your view of the future:", []string{"Optimistic and full of dreams", "Realistic and planned", "Depends on circumstances", "Worried and hesitant"}},
	},
	CategoryStress: {
		{"How often do you feel stressed each week?", []string{"Rarely", "Sometimes", "Often", "Almost every day"}},
		{"Which stress symptoms show up for you?", []string{"Headaches and muscle tension", "Trouble sleeping", "Appetite changes", "Sharp mood swings"}},
		{"Your biggest source of stress:", []string{"Work or study pressure", "Money problems", "Personal relationships", "Uncertainty about the future"}},
		{"How do you deal with stress right now?", []string{"Sports and physical activity", "Meditation and relaxation", "Talking with friends", "Ignoring the problem"}},
		{"How much does stress affect your productivity?", []string{"Not much", "Slightly lowers my performance", "Noticeably", "It paralyzes my work"}},
	},
}
