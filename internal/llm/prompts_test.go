package llm

import (
	"strings"
	"testing"
)

func TestAnalysisPromptOmitsJobClauseWhenBlank(t *testing.T) {
	p := AnalysisPrompt("some resume", "   ")
	if strings.Contains(p, "Job description:") {
		t.Fatal("blank job description must not add a comparison clause")
	}
	for _, field := range []string{"strengths", "weaknesses", "skillsToImprove", "courseRecommendations", "overallEvaluation"} {
		if !strings.Contains(p, field) {
			t.Fatalf("prompt missing field %q", field)
		}
	}
}

func TestAnalysisPromptIncludesJobClause(t *testing.T) {
	p := AnalysisPrompt("some resume", "Go backend role")
	if !strings.Contains(p, "Job description:") {
		t.Fatal("expected job description section")
	}
	if !strings.Contains(p, "Go backend role") {
		t.Fatal("expected job description text to be embedded")
	}
}

func TestQuizPromptPinsCount(t *testing.T) {
	p := QuizPrompt("weak SQL knowledge")
	if !strings.Contains(p, "exactly 5 questions") {
		t.Fatal("expected question count pinned to 5")
	}
	if !strings.Contains(p, "correctIndex") {
		t.Fatal("expected per-question shape in prompt")
	}
}

func TestCombinedQuizPromptPinsCount(t *testing.T) {
	p := CombinedQuizPrompt([]string{"w1"}, []string{"s1"})
	if !strings.Contains(p, "exactly 10 questions") {
		t.Fatal("expected question count pinned to 10")
	}
	if !strings.Contains(p, "w1") || !strings.Contains(p, "s1") {
		t.Fatal("expected weaknesses and skills embedded")
	}
}
