package app

import (
	"context"
	"fmt"

	"quizmaster/internal/domain"
)

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, path string) ([]domain.Question, error)
}

// Game runs whole sessions: select questions, drive each through the
// runtime, score the outcomes and record progress after every question.
type Game struct {
	banks    BankRepository
	recorder Recorder
	runtime  *Runtime
	selector *Selector
	screen   Screen
	clock    Clock
}

func NewGame(banks BankRepository, recorder Recorder, runtime *Runtime, selector *Selector, screen Screen, clock Clock) *Game {
	return &Game{
		banks:    banks,
		recorder: recorder,
		runtime:  runtime,
		selector: selector,
		screen:   screen,
		clock:    clock,
	}
}

// Play runs a full session. The session arrives with player name, category
// and difficulty set; a resumed session additionally carries its prior
// aggregates and the saved remaining seconds for the first question.
func (g *Game) Play(ctx context.Context, sess *domain.Session) error {
	bank, err := g.banks.GetBank(ctx, sess.Category)
	if err != nil {
		return err
	}
	questions, indices, err := g.selector.Select(bank, sess.Difficulty)
	if err != nil {
		return err
	}

	// Indices reference the bank backing this selection, so entries carried
	// from an interrupted session's earlier selection (possibly a different
	// category) are dropped. Score and tallies carry over.
	sess.QuestionIndices = nil
	sess.Answers = nil

	lifelines := domain.NewLifelineState()
	if sess.StartedAt.IsZero() {
		sess.StartedAt = g.clock.Now()
	}

	for i := range questions {
		sess.QuestionIndices = append(sess.QuestionIndices, indices[i])
		sess.Answers = append(sess.Answers, 0)

		out := g.runtime.Run(i+1, sess, &questions[i], bank, &lifelines)
		if out.Kind == domain.OutcomeAnswered {
			sess.Answers[len(sess.Answers)-1] = out.Answer
		}

		result := ApplyScore(sess, questions[i], out)
		g.report(questions[i], out, result)

		sess.RemainingForCurrent = 0
		g.recorder.SaveProgress(*sess)
	}

	g.screen.Notice("================================")
	g.screen.Notice("Quiz Completed!")
	g.screen.Notice(fmt.Sprintf("Your Final Score: %d", sess.FinalScore()))
	g.screen.Notice(fmt.Sprintf("Correct: %d Wrong: %d", sess.Correct, sess.Wrong))
	g.recorder.Complete(*sess)
	return nil
}

func (g *Game) report(q domain.Question, out domain.Outcome, result ScoreResult) {
	// Timeouts and skips already printed their message inside the runtime.
	if out.Kind != domain.OutcomeAnswered {
		return
	}
	if !result.Correct {
		g.screen.Notice("Wrong! Correct answer: " + q.CorrectText())
		return
	}
	g.screen.Notice("Correct!")
	switch result.Bonus {
	case streakShortBonus:
		g.screen.Notice("Streak! +5 bonus")
	case streakLongBonus:
		g.screen.Notice("Big Streak! +15 bonus")
	}
	g.screen.Notice(fmt.Sprintf("Earned %d points.", result.Points))
}
