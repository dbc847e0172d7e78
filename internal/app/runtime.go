package app

import (
	"fmt"
	"math/rand"
	"time"

	"quizmaster/internal/domain"
)

// KeyPoller reports the latest pressed key without blocking.
type KeyPoller interface {
	// Poll returns a single printable key and true, or false when no key
	// is pending. It never blocks.
	Poll() (byte, bool)
}

// PollSession is implemented by pollers that hold exclusive terminal state
// (raw mode) while a question runs.
type PollSession interface {
	StartPolling() error
	StopPolling()
}

// Clock abstracts wall-clock time and pacing for deterministic tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Screen renders the question surface. PromptLifeline may block; the
// countdown is paused while it is open.
type Screen interface {
	ShowQuestion(number int, q domain.Question, lifelines domain.LifelineState)
	ShowRemaining(seconds int)
	Notice(msg string)
	PromptLifeline() int // 0 cancels, 1..4 picks a lifeline
}

// Recorder persists session progress.
type Recorder interface {
	SaveProgress(s domain.Session)
	Complete(s domain.Session)
}

// Options tunes the runtime. Zero values fall back to the defaults of
// 10s per question, 10s of extra time and an 80ms poll cadence.
type Options struct {
	QuestionTime time.Duration
	ExtraTime    time.Duration
	PollInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.QuestionTime <= 0 {
		o.QuestionTime = 10 * time.Second
	}
	if o.ExtraTime <= 0 {
		o.ExtraTime = 10 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 80 * time.Millisecond
	}
	return o
}

// Runtime drives one question at a time through its state machine,
// interleaving the countdown with non-blocking input and applying
// lifelines in between.
type Runtime struct {
	poller   KeyPoller
	clock    Clock
	screen   Screen
	recorder Recorder
	rnd      *rand.Rand
	opts     Options
}

func NewRuntime(poller KeyPoller, clock Clock, screen Screen, recorder Recorder, rnd *rand.Rand, opts Options) *Runtime {
	return &Runtime{
		poller:   poller,
		clock:    clock,
		screen:   screen,
		recorder: recorder,
		rnd:      rnd,
		opts:     opts.withDefaults(),
	}
}

// Run drives the question to completion and returns its outcome. It never
// fails: every path ends in Answered, Skipped or TimedOut. The bank is
// consulted only by the Replace lifeline.
func (r *Runtime) Run(number int, sess *domain.Session, q *domain.Question, bank []domain.Question, lifelines *domain.LifelineState) domain.Outcome {
	if ps, ok := r.poller.(PollSession); ok {
		if err := ps.StartPolling(); err != nil {
			// Without raw mode the poller cannot honor its never-blocks
			// contract, so the countdown loop must not run at all.
			r.screen.Notice("Keyboard input unavailable: " + err.Error())
			r.screen.Notice("Skipping question without penalty.")
			return domain.Outcome{Kind: domain.OutcomeSkipped}
		}
		defer ps.StopPolling()
	}

	remaining := sess.RemainingForCurrent
	if remaining <= 0 {
		remaining = int(r.opts.QuestionTime / time.Second)
	}
	sess.RemainingForCurrent = 0
	endTime := r.clock.Now().Add(time.Duration(remaining) * time.Second)

	for {
		r.screen.ShowQuestion(number, *q, *lifelines)
		r.screen.ShowRemaining(secondsLeft(endTime, r.clock.Now()))

		redraw := false
		for !redraw {
			if key, ok := r.poller.Poll(); ok {
				// A key seen in the same tick as expiry wins over the timeout.
				switch {
				case key >= '1' && key <= '4':
					sess.RemainingForCurrent = secondsLeft(endTime, r.clock.Now())
					return domain.Outcome{Kind: domain.OutcomeAnswered, Answer: int(key - '0')}
				case key == 'L' || key == 'l':
					remaining = secondsLeft(endTime, r.clock.Now())
					sess.RemainingForCurrent = remaining
					if out, finished := r.lifelineMenu(sess, q, bank, lifelines, &remaining); finished {
						return out
					}
					sess.RemainingForCurrent = remaining
					r.recorder.SaveProgress(*sess)
					endTime = r.clock.Now().Add(time.Duration(remaining) * time.Second)
					redraw = true
				case key == 'S' || key == 's':
					if lifelines.Skip {
						lifelines.Skip = false
						r.screen.Notice("Quick skip used. Moving to next question.")
						sess.RemainingForCurrent = 0
						return domain.Outcome{Kind: domain.OutcomeSkipped}
					}
					r.screen.Notice("Skip already used.")
				}
				continue
			}

			now := r.clock.Now()
			r.screen.ShowRemaining(secondsLeft(endTime, now))
			if !now.Before(endTime) {
				r.screen.Notice("Time's up! Correct answer: " + q.CorrectText())
				sess.RemainingForCurrent = 0
				return domain.Outcome{Kind: domain.OutcomeTimedOut}
			}
			r.clock.Sleep(r.opts.PollInterval)
		}
	}
}

// lifelineMenu applies one lifeline choice. It returns (outcome, true) when
// the question completed (Skip); otherwise the caller resumes the countdown
// with the possibly updated remaining time.
func (r *Runtime) lifelineMenu(sess *domain.Session, q *domain.Question, bank []domain.Question, lifelines *domain.LifelineState, remaining *int) (domain.Outcome, bool) {
	switch r.screen.PromptLifeline() {
	case 1:
		if !lifelines.FiftyFifty {
			r.screen.Notice("50/50 already used.")
			break
		}
		lifelines.FiftyFifty = false
		q.Visible = FiftyFifty(r.rnd, *q)
		r.screen.Notice("50/50 used. Two wrong options removed. Resuming timer.")
	case 2:
		if !lifelines.Skip {
			r.screen.Notice("Skip already used.")
			break
		}
		lifelines.Skip = false
		r.screen.Notice("Question skipped. Moving to next question.")
		sess.RemainingForCurrent = 0
		return domain.Outcome{Kind: domain.OutcomeSkipped}, true
	case 3:
		if !lifelines.Replace {
			r.screen.Notice("Replace already used.")
			break
		}
		candidate, err := r.replacement(bank, q.Text)
		if err != nil {
			// No distinct question exists; the lifeline stays available.
			r.screen.Notice("No replacement found.")
			break
		}
		lifelines.Replace = false
		*q = candidate
		r.screen.Notice("Question replaced. Remaining time preserved.")
	case 4:
		if !lifelines.ExtraTime {
			r.screen.Notice("Extra Time already used.")
			break
		}
		if *remaining <= 0 {
			r.screen.Notice("Cannot use Extra Time: question already expired.")
			break
		}
		lifelines.ExtraTime = false
		extra := int(r.opts.ExtraTime / time.Second)
		*remaining += extra
		r.screen.Notice(fmt.Sprintf("Extra Time applied. +%ds added. New remaining: %ds. Resuming timer.", extra, *remaining))
	default:
		r.screen.Notice("Lifeline cancelled. Resuming timer.")
	}
	return domain.Outcome{}, false
}

// replacement picks a fresh copy of a uniformly chosen bank question whose
// text differs from the current one.
func (r *Runtime) replacement(bank []domain.Question, currentText string) (domain.Question, error) {
	distinct := 0
	for i := range bank {
		if bank[i].Text != currentText {
			distinct++
		}
	}
	if distinct == 0 {
		return domain.Question{}, domain.ErrNoReplacement
	}
	for {
		q := bank[r.rnd.Intn(len(bank))]
		if q.Text == currentText {
			continue
		}
		ShuffleOptions(r.rnd, &q)
		q.ResetVisibility()
		return q, nil
	}
}

func secondsLeft(endTime, now time.Time) int {
	d := endTime.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}
