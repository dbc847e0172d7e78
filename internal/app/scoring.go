package app

import "quizmaster/internal/domain"

// Streak bonuses fire when the streak reaches exactly these lengths.
const (
	streakShort      = 3
	streakShortBonus = 5
	streakLong       = 5
	streakLongBonus  = 15
)

// ScoreResult reports how one outcome changed the session, for rendering.
type ScoreResult struct {
	Correct bool
	Points  int // points for the answer itself, before any bonus
	Bonus   int // streak bonus, if one fired
}

func reward(difficulty int) int {
	switch difficulty {
	case domain.DifficultyEasy:
		return 10
	case domain.DifficultyMedium:
		return 15
	default:
		return 20
	}
}

func penalty(difficulty int) int {
	switch difficulty {
	case domain.DifficultyEasy:
		return 2
	case domain.DifficultyMedium:
		return 3
	default:
		return 5
	}
}

// ApplyScore folds one question outcome into the session. Correct answers
// earn by difficulty and extend the streak; wrong answers and timeouts
// deduct by difficulty and reset it; skips change nothing.
func ApplyScore(s *domain.Session, q domain.Question, out domain.Outcome) ScoreResult {
	switch out.Kind {
	case domain.OutcomeAnswered:
		if out.Answer-1 == q.CorrectIndex {
			points := reward(q.Difficulty)
			s.Score += points
			s.Correct++
			s.Streak++
			bonus := 0
			if s.Streak == streakShort {
				bonus = streakShortBonus
			} else if s.Streak == streakLong {
				bonus = streakLongBonus
			}
			s.Score += bonus
			return ScoreResult{Correct: true, Points: points, Bonus: bonus}
		}
		s.Score -= penalty(q.Difficulty)
		s.Wrong++
		s.Streak = 0
		return ScoreResult{Points: -penalty(q.Difficulty)}
	case domain.OutcomeTimedOut:
		s.Score -= penalty(q.Difficulty)
		s.Wrong++
		s.Streak = 0
		return ScoreResult{Points: -penalty(q.Difficulty)}
	default: // skipped: free
		return ScoreResult{}
	}
}
