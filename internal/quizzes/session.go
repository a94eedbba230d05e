package quizzes

import "math"

// unanswered marks a question with no selected option.
const unanswered = -1

// Session tracks progress through a quiz set. It is driven by discrete
// user events and not safe for concurrent use.
type Session struct {
	quizzes []WeaknessQuiz
	answers [][]int
	quiz    int
	qn      int
}

// NewSession starts a session over the given quiz set positioned at the
// first question of the first quiz.
func NewSession(quizzes []WeaknessQuiz) *Session {
	s := &Session{quizzes: quizzes}
	s.Reset()
	return s
}

// Reset clears all answers and returns to the first question.
func (s *Session) Reset() {
	s.answers = make([][]int, len(s.quizzes))
	for i, wq := range s.quizzes {
		s.answers[i] = make([]int, len(wq.Quiz.Questions))
		for j := range s.answers[i] {
			s.answers[i][j] = unanswered
		}
	}
	s.quiz = 0
	s.qn = 0
}

// Current returns the active quiz and question indexes.
func (s *Session) Current() (quiz, question int) {
	return s.quiz, s.qn
}

// Answer records the selected option for the current question.
// Re-answering overwrites the earlier choice.
func (s *Session) Answer(choice int) bool {
	if s.quiz >= len(s.quizzes) {
		return false
	}
	questions := s.quizzes[s.quiz].Quiz.Questions
	if s.qn >= len(questions) {
		return false
	}
	if choice < 0 || choice >= len(questions[s.qn].Options) {
		return false
	}
	s.answers[s.quiz][s.qn] = choice
	return true
}

// Next advances to the following question, crossing into the next quiz
// when the current one is exhausted. Refused while the current question
// has no recorded answer, and at the end of the set.
func (s *Session) Next() bool {
	if s.quiz >= len(s.quizzes) {
		return false
	}
	if s.qn < len(s.answers[s.quiz]) && s.answers[s.quiz][s.qn] == unanswered {
		return false
	}
	if s.qn+1 < len(s.quizzes[s.quiz].Quiz.Questions) {
		s.qn++
		return true
	}
	if s.quiz+1 < len(s.quizzes) {
		s.quiz++
		s.qn = 0
		return true
	}
	return false
}

// Previous steps back one question, crossing quiz boundaries. Returns
// false at the very first question.
func (s *Session) Previous() bool {
	if s.qn > 0 {
		s.qn--
		return true
	}
	if s.quiz > 0 {
		s.quiz--
		s.qn = len(s.quizzes[s.quiz].Quiz.Questions) - 1
		return true
	}
	return false
}

// Done reports whether every question has an answer.
func (s *Session) Done() bool {
	for _, quiz := range s.answers {
		for _, a := range quiz {
			if a == unanswered {
				return false
			}
		}
	}
	return true
}

// QuizScore is the per-quiz portion of a session result.
type QuizScore struct {
	Weakness string  `json:"weakness"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// SessionScore aggregates a finished (or partial) session.
type SessionScore struct {
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Percent    float64        `json:"percent"`
	PerQuiz    []QuizScore    `json:"perQuiz"`
	Categories map[string]int `json:"categories"`
}

// Score computes the session result. Unanswered questions count as
// incorrect. Category percentages are computed per raw model category
// and then averaged into canonical display categories.
func (s *Session) Score() SessionScore {
	return ScoreAnswers(s.quizzes, s.answers)
}

// ScoreAnswers computes a result for an arbitrary quiz set and answer
// grid, shaped like Session answers (one row per quiz).
func ScoreAnswers(quizzes []WeaknessQuiz, answers [][]int) SessionScore {
	score := SessionScore{
		PerQuiz:    make([]QuizScore, 0, len(quizzes)),
		Categories: map[string]int{},
	}

	rawCorrect := map[string]int{}
	rawTotal := map[string]int{}

	for qi, wq := range quizzes {
		qs := QuizScore{Weakness: wq.Weakness, Total: len(wq.Quiz.Questions)}
		for qni, question := range wq.Quiz.Questions {
			cat := question.Category
			if cat == "" {
				cat = "General"
			}
			rawTotal[cat]++

			answer := unanswered
			if qi < len(answers) && qni < len(answers[qi]) {
				answer = answers[qi][qni]
			}
			if answer == question.CorrectIndex {
				qs.Correct++
				rawCorrect[cat]++
			}
		}
		if qs.Total > 0 {
			qs.Percent = math.Round(float64(qs.Correct)/float64(qs.Total)*100*10) / 10
		}
		score.Correct += qs.Correct
		score.Total += qs.Total
		score.PerQuiz = append(score.PerQuiz, qs)
	}

	if score.Total > 0 {
		score.Percent = math.Round(float64(score.Correct)/float64(score.Total)*100*10) / 10
	}

	// Group raw category percentages under canonical labels, averaging
	// when several raw labels collapse into one.
	grouped := map[string][]float64{}
	for cat, total := range rawTotal {
		pct := float64(rawCorrect[cat]) / float64(total) * 100
		display := NormalizeCategory(cat)
		grouped[display] = append(grouped[display], pct)
	}
	for display, pcts := range grouped {
		var sum float64
		for _, p := range pcts {
			sum += p
		}
		score.Categories[display] = int(math.Round(sum / float64(len(pcts))))
	}

	return score
}
