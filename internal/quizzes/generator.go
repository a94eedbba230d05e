package quizzes

import (
	"context"
	"fmt"
	"time"

	"resume-coach/internal/llm"
	"resume-coach/internal/shared/telemetry"
)

// Generator turns resume weaknesses into quizzes via the model.
type Generator struct {
	LLM     llm.Client
	Timeout time.Duration
}

func NewGenerator(client llm.Client, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Generator{LLM: client, Timeout: timeout}
}

// BatchError reports which weakness in a batch failed and why.
type BatchError struct {
	Index  int
	Target string
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("quiz generation failed for weakness %d (%q): %v", e.Index, e.Target, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Generate builds one quiz for a single weakness. Extra questions past
// the requested count are truncated; fewer is a schema violation.
func (g *Generator) Generate(ctx context.Context, weakness string) (Quiz, error) {
	return g.generate(ctx, llm.QuizPrompt(weakness), llm.QuestionsPerWeakness)
}

// GenerateBatch walks weaknesses in order and stops at the first
// failure. On failure no quizzes are returned.
func (g *Generator) GenerateBatch(ctx context.Context, weaknesses []string) ([]WeaknessQuiz, error) {
	out := make([]WeaknessQuiz, 0, len(weaknesses))
	for i, w := range weaknesses {
		quiz, err := g.Generate(ctx, w)
		if err != nil {
			return nil, &BatchError{Index: i, Target: w, Err: err}
		}
		out = append(out, WeaknessQuiz{Weakness: w, Quiz: quiz})
	}
	return out, nil
}

// GenerateCombined builds a single quiz spanning all weaknesses and
// skill gaps at once.
func (g *Generator) GenerateCombined(ctx context.Context, weaknesses, skillsToImprove []string) (Quiz, error) {
	return g.generate(ctx, llm.CombinedQuizPrompt(weaknesses, skillsToImprove), llm.QuestionsCombinedQuiz)
}

func (g *Generator) generate(ctx context.Context, prompt string, want int) (Quiz, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	raw, err := g.LLM.Complete(callCtx, prompt)
	if err != nil {
		return Quiz{}, llm.ClassifyTimeout(err)
	}

	var quiz Quiz
	if err := llm.ExtractJSONObject(raw, &quiz); err != nil {
		return Quiz{}, err
	}

	if len(quiz.Questions) > want {
		telemetry.Warn("quiz.truncated", map[string]any{
			"requested": want,
			"returned":  len(quiz.Questions),
		})
		quiz.Questions = quiz.Questions[:want]
	}
	if len(quiz.Questions) < want {
		return Quiz{}, fmt.Errorf("%w: got %d questions, want %d", llm.ErrSchemaViolation, len(quiz.Questions), want)
	}

	for i, q := range quiz.Questions {
		if q.Question == "" {
			return Quiz{}, fmt.Errorf("%w: question %d is empty", llm.ErrSchemaViolation, i)
		}
		if len(q.Options) != 4 {
			return Quiz{}, fmt.Errorf("%w: question %d has %d options, want 4", llm.ErrSchemaViolation, i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= 4 {
			return Quiz{}, fmt.Errorf("%w: question %d correctIndex %d out of range", llm.ErrSchemaViolation, i, q.CorrectIndex)
		}
	}

	return quiz, nil
}
