package domain

import "time"

// MaxOptions is the number of answer options every question carries.
const MaxOptions = 4

// Difficulty levels accepted by category files and the selector.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Question models an MCQ question with exactly one correct option.
// Text, OriginalCorrect and Difficulty are fixed at load time; Options,
// CorrectIndex and Visible are presentation state that the option shuffler
// and lifelines rewrite.
type Question struct {
	Text            string
	Options         [MaxOptions]string
	CorrectIndex    int // index into Options under the current order
	OriginalCorrect int // 0-based correct index as parsed from the file
	Difficulty      int
	Visible         [MaxOptions]bool
}

// ResetVisibility makes every option visible again.
func (q *Question) ResetVisibility() {
	for i := range q.Visible {
		q.Visible[i] = true
	}
}

// CorrectText returns the text of the currently correct option.
func (q *Question) CorrectText() string {
	return q.Options[q.CorrectIndex]
}

// LifelineState tracks which lifelines are still available. Each lifeline
// can be consumed at most once per session.
type LifelineState struct {
	FiftyFifty bool
	Skip       bool
	Replace    bool
	ExtraTime  bool
}

// NewLifelineState returns a state with every lifeline available.
func NewLifelineState() LifelineState {
	return LifelineState{FiftyFifty: true, Skip: true, Replace: true, ExtraTime: true}
}

// Session accumulates the state of one quiz run. Score stays signed while
// the session is live; it is clamped to zero only when reported or written
// to the high-score file.
type Session struct {
	PlayerName string
	Category   string // category file path
	Difficulty int

	Score   int
	Correct int
	Wrong   int
	Streak  int

	StartedAt time.Time

	// QuestionIndices holds the bank index of every question in
	// presentation order; Answers holds the recorded answer for each
	// (0 = unanswered or skipped, 1..4 = chosen option).
	QuestionIndices []int
	Answers         []int

	// RemainingForCurrent is the timer snapshot, in seconds, for the
	// question in flight. Zero means "use the default time".
	RemainingForCurrent int
}

// FinalScore is the displayed score: the raw score floored at zero.
func (s *Session) FinalScore() int {
	if s.Score < 0 {
		return 0
	}
	return s.Score
}

// OutcomeKind classifies how a question completed.
type OutcomeKind int

const (
	OutcomeAnswered OutcomeKind = iota + 1
	OutcomeSkipped
	OutcomeTimedOut
)

// Outcome is the terminal result of one question. Answer is the chosen
// option (1..4) and is meaningful only for OutcomeAnswered.
type Outcome struct {
	Kind   OutcomeKind
	Answer int
}

// ScoreEntry is one line of the high-score file.
type ScoreEntry struct {
	Name     string
	Score    int
	DateTime string
}
