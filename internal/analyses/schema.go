package analyses

import (
	"fmt"

	"resume-coach/internal/llm"
)

// rawResult mirrors Result but with pointers so absent fields can be
// told apart from present-but-empty ones.
type rawResult struct {
	Strengths             *[]string `json:"strengths"`
	Weaknesses            *[]string `json:"weaknesses"`
	SkillsToImprove       *[]string `json:"skillsToImprove"`
	CourseRecommendations *[]string `json:"courseRecommendations"`
	OverallEvaluation     *string   `json:"overallEvaluation"`
}

// ParseResult carves the JSON object out of a model response and
// validates it against the expected shape. Absent array fields become
// empty arrays; an absent overall evaluation is tolerated as "".
func ParseResult(raw string) (Result, error) {
	var parsed rawResult
	if err := llm.ExtractJSONObject(raw, &parsed); err != nil {
		return Result{}, err
	}

	res := Result{
		Strengths:             emptyIfNil(parsed.Strengths),
		Weaknesses:            emptyIfNil(parsed.Weaknesses),
		SkillsToImprove:       emptyIfNil(parsed.SkillsToImprove),
		CourseRecommendations: emptyIfNil(parsed.CourseRecommendations),
	}
	if parsed.OverallEvaluation != nil {
		res.OverallEvaluation = *parsed.OverallEvaluation
	}

	if parsed.Strengths == nil && parsed.Weaknesses == nil &&
		parsed.SkillsToImprove == nil && parsed.CourseRecommendations == nil &&
		parsed.OverallEvaluation == nil {
		return Result{}, fmt.Errorf("%w: none of the expected fields present", llm.ErrSchemaViolation)
	}

	return res, nil
}

func emptyIfNil(s *[]string) []string {
	if s == nil {
		return []string{}
	}
	return *s
}
