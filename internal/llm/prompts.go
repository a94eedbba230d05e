package llm

import (
	"fmt"
	"strings"
)

// Counts pinned in the prompts. The provider is not schema-constrained,
// so the prompt text is the only shape enforcement before validation.
const (
	QuestionsPerWeakness  = 5
	QuestionsCombinedQuiz = 10
	JobRecommendations    = 5
)

const analysisShape = `{
  "strengths": ["..."],
  "weaknesses": ["..."],
  "skillsToImprove": ["..."],
  "courseRecommendations": ["..."],
  "overallEvaluation": "..."
}`

const quizQuestionShape = `{
  "question": "...",
  "options": ["...", "...", "...", "..."],
  "correctIndex": 0,
  "explanation": "...",
  "category": "..."
}`

// AnalysisPrompt builds the resume-analysis prompt. A non-blank job
// description adds a comparison clause; otherwise the resume is judged
// on its own.
func AnalysisPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString("You are an expert resume reviewer. Analyze the resume below")
	if strings.TrimSpace(jobDescription) != "" {
		b.WriteString(" and compare it against the job description that follows it. ")
		b.WriteString("Call out gaps between the resume and the role's requirements.")
	} else {
		b.WriteString(" on its own merits.")
	}
	b.WriteString("\n\nRespond with ONLY a JSON object of exactly this shape, no markdown, no commentary:\n")
	b.WriteString(analysisShape)
	b.WriteString("\n\nEvery field must be present. Arrays may be empty when nothing applies.")
	b.WriteString("\n\nResume:\n")
	b.WriteString(resumeText)
	if strings.TrimSpace(jobDescription) != "" {
		b.WriteString("\n\nJob description:\n")
		b.WriteString(jobDescription)
	}
	return b.String()
}

// QuizPrompt builds the single-weakness quiz prompt pinning an exact
// question count and per-question shape.
func QuizPrompt(weakness string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a multiple-choice quiz of exactly %d questions that helps a candidate improve on this resume weakness:\n\n%s\n\n", QuestionsPerWeakness, weakness)
	b.WriteString("Respond with ONLY a JSON object of this shape, no markdown, no commentary:\n")
	b.WriteString("{\n  \"questions\": [")
	b.WriteString(quizQuestionShape)
	b.WriteString("]\n}\n\n")
	fmt.Fprintf(&b, "Rules: exactly %d questions, each with exactly 4 options, correctIndex is the zero-based index of the right option, category is a short skill-category label.", QuestionsPerWeakness)
	return b.String()
}

// CombinedQuizPrompt builds one quiz spanning all weaknesses and skill
// gaps at once.
func CombinedQuizPrompt(weaknesses, skillsToImprove []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a single multiple-choice quiz of exactly %d questions covering the following resume weaknesses and skill gaps:\n\n", QuestionsCombinedQuiz)
	for _, w := range weaknesses {
		fmt.Fprintf(&b, "- weakness: %s\n", w)
	}
	for _, s := range skillsToImprove {
		fmt.Fprintf(&b, "- skill to improve: %s\n", s)
	}
	b.WriteString("\nRespond with ONLY a JSON object of this shape, no markdown, no commentary:\n")
	b.WriteString("{\n  \"questions\": [")
	b.WriteString(quizQuestionShape)
	b.WriteString("]\n}\n\n")
	fmt.Fprintf(&b, "Rules: exactly %d questions, each with exactly 4 options, correctIndex is the zero-based index of the right option, category is a short skill-category label.", QuestionsCombinedQuiz)
	return b.String()
}

// JobRecommendationPrompt asks for role suggestions grounded in an
// analyzed resume.
func JobRecommendationPrompt(resumeText string, strengths, skillsToImprove []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the resume and feedback below, recommend exactly %d job roles the candidate should pursue.\n\n", JobRecommendations)
	b.WriteString("Respond with ONLY a JSON object of this shape, no markdown, no commentary:\n")
	b.WriteString(`{
  "jobs": [{
    "title": "...",
    "company": "...",
    "location": "...",
    "description": "...",
    "skills": ["..."]
  }]
}`)
	b.WriteString("\n\nStrengths:\n")
	for _, s := range strengths {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\nSkills to improve:\n")
	for _, s := range skillsToImprove {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\nResume:\n")
	b.WriteString(resumeText)
	return b.String()
}
