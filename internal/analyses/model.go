package analyses

import "time"

// Result is the structured feedback extracted from the model response.
// All fields tolerate absence; empty arrays are meaningful, not errors.
type Result struct {
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	SkillsToImprove       []string `json:"skillsToImprove"`
	CourseRecommendations []string `json:"courseRecommendations"`
	OverallEvaluation     string   `json:"overallEvaluation"`
}

// Analysis is the stored record of one resume's feedback. Records are
// immutable after creation and listed newest-first.
type Analysis struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId,omitempty"`
	ResumeText     string    `json:"resumeText"`
	JobDescription string    `json:"jobDescription,omitempty"`
	RawModelOutput string    `json:"rawModelOutput"`
	Result         Result    `json:"structuredResult"`
	CreatedAt      time.Time `json:"createdAt"`
}
