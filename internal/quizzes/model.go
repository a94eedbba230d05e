package quizzes

// Question is one multiple-choice question. Options always has exactly
// four entries and CorrectIndex points into it.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
	Category     string   `json:"category,omitempty"`
}

// Quiz is an ordered set of questions.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// WeaknessQuiz pairs a quiz with the resume weakness it targets.
type WeaknessQuiz struct {
	Weakness string `json:"weakness"`
	Quiz     Quiz   `json:"quiz"`
}
