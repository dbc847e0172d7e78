package app_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"quizmaster/internal/app"
	"quizmaster/internal/domain"
)

// scriptPoller replays a fixed key sequence; -1 means "no key pending".
type scriptPoller struct {
	keys []int
}

func (p *scriptPoller) Poll() (byte, bool) {
	if len(p.keys) == 0 {
		return 0, false
	}
	k := p.keys[0]
	p.keys = p.keys[1:]
	if k < 0 {
		return 0, false
	}
	return byte(k), true
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

type fakeScreen struct {
	notices      []string
	choices      []int // scripted lifeline menu picks
	lastQuestion domain.Question
}

func (s *fakeScreen) ShowQuestion(_ int, q domain.Question, _ domain.LifelineState) {
	s.lastQuestion = q
}
func (s *fakeScreen) ShowRemaining(int) {}
func (s *fakeScreen) Notice(msg string) { s.notices = append(s.notices, msg) }
func (s *fakeScreen) PromptLifeline() int {
	if len(s.choices) == 0 {
		return 0
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c
}

func (s *fakeScreen) sawNotice(substr string) bool {
	for _, n := range s.notices {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

type captureRecorder struct {
	saves     []domain.Session
	completed []domain.Session
}

func (r *captureRecorder) SaveProgress(s domain.Session) { r.saves = append(r.saves, s) }
func (r *captureRecorder) Complete(s domain.Session)     { r.completed = append(r.completed, s) }

func newTestRuntime(keys []int, choices []int) (*app.Runtime, *fakeScreen, *captureRecorder) {
	screen := &fakeScreen{choices: choices}
	recorder := &captureRecorder{}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rnd := rand.New(rand.NewSource(1))
	runtime := app.NewRuntime(&scriptPoller{keys: keys}, clock, screen, recorder, rnd, app.Options{
		PollInterval: time.Second,
	})
	return runtime, screen, recorder
}

func runOne(t *testing.T, runtime *app.Runtime, sess *domain.Session, q *domain.Question, bank []domain.Question, lifelines *domain.LifelineState) domain.Outcome {
	t.Helper()
	if bank == nil {
		bank = []domain.Question{*q}
	}
	return runtime.Run(1, sess, q, bank, lifelines)
}

// blockedPollSession fails to enter raw mode, like a run without a tty.
type blockedPollSession struct {
	scriptPoller
}

func (p *blockedPollSession) StartPolling() error { return errors.New("inappropriate ioctl for device") }
func (p *blockedPollSession) StopPolling()        {}

func TestRunDegradesWhenPollingUnavailable(t *testing.T) {
	screen := &fakeScreen{}
	recorder := &captureRecorder{}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rnd := rand.New(rand.NewSource(1))
	poller := &blockedPollSession{scriptPoller{keys: []int{'1'}}}
	runtime := app.NewRuntime(poller, clock, screen, recorder, rnd, app.Options{
		PollInterval: time.Second,
	})
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runtime.Run(1, sess, &q, []domain.Question{q}, &lifelines)

	// The countdown loop never runs, so the pending key is never consumed.
	if out.Kind != domain.OutcomeSkipped {
		t.Fatalf("outcome = %+v, want Skipped", out)
	}
	if !screen.sawNotice("Keyboard input unavailable") {
		t.Fatalf("expected degrade notice, got %v", screen.notices)
	}
	if lifelines != domain.NewLifelineState() {
		t.Fatalf("degraded question consumed a lifeline: %+v", lifelines)
	}
}

func TestRunAnswerKey(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{'2'}, nil)
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered || out.Answer != 2 {
		t.Fatalf("outcome = %+v, want Answered(2)", out)
	}
	if sess.RemainingForCurrent != 10 {
		t.Fatalf("remaining snapshot = %d, want 10", sess.RemainingForCurrent)
	}
}

func TestRunTimesOutAndRevealsAnswer(t *testing.T) {
	runtime, screen, _ := newTestRuntime(nil, nil)
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeTimedOut {
		t.Fatalf("outcome = %+v, want TimedOut", out)
	}
	if !screen.sawNotice("Time's up! Correct answer: " + q.CorrectText()) {
		t.Fatalf("expected timeout reveal, notices: %v", screen.notices)
	}
	if sess.RemainingForCurrent != 0 {
		t.Fatalf("remaining snapshot = %d, want 0", sess.RemainingForCurrent)
	}
}

func TestRunKeyWinsOverExpiry(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{-1, '1'}, nil)
	sess := &domain.Session{RemainingForCurrent: 1}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	// The clock reaches the deadline during the first sleep; the key seen
	// on the next tick must still resolve as an answer.
	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered || out.Answer != 1 {
		t.Fatalf("outcome = %+v, want Answered(1)", out)
	}
}

func TestRunUnknownKeysIgnored(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{'x', '9', '3'}, nil)
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered || out.Answer != 3 {
		t.Fatalf("outcome = %+v, want Answered(3)", out)
	}
}

func TestRunQuickSkip(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{'s'}, nil)
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeSkipped {
		t.Fatalf("outcome = %+v, want Skipped", out)
	}
	if lifelines.Skip {
		t.Fatal("skip lifeline not consumed")
	}
	if sess.RemainingForCurrent != 0 {
		t.Fatalf("remaining snapshot = %d, want 0", sess.RemainingForCurrent)
	}
}

func TestRunQuickSkipAlreadyUsed(t *testing.T) {
	runtime, screen, _ := newTestRuntime([]int{'S', '2'}, nil)
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()
	lifelines.Skip = false

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered || out.Answer != 2 {
		t.Fatalf("outcome = %+v, want Answered(2)", out)
	}
	if !screen.sawNotice("Skip already used.") {
		t.Fatalf("expected notice, got %v", screen.notices)
	}
}

func TestLifelineSkip(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{'L'}, []int{2})
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeSkipped {
		t.Fatalf("outcome = %+v, want Skipped", out)
	}
	if lifelines.Skip {
		t.Fatal("skip lifeline not consumed")
	}
}

func TestLifelineFiftyFifty(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{'l', '3'}, []int{1})
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy) // correct index 2
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered {
		t.Fatalf("outcome = %+v, want Answered", out)
	}
	if lifelines.FiftyFifty {
		t.Fatal("50/50 lifeline not consumed")
	}
	if !q.Visible[q.CorrectIndex] {
		t.Fatal("correct option masked after 50/50")
	}
	count := 0
	for _, v := range q.Visible {
		if v {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("visible options = %d, want 2", count)
	}
}

func TestLifelineExtraTime(t *testing.T) {
	runtime, screen, _ := newTestRuntime([]int{'L', '1'}, []int{4})
	sess := &domain.Session{RemainingForCurrent: 7}
	q := newQuestion("q", domain.DifficultyMedium)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered {
		t.Fatalf("outcome = %+v, want Answered", out)
	}
	if lifelines.ExtraTime {
		t.Fatal("extra time lifeline not consumed")
	}
	if !screen.sawNotice("New remaining: 17s") {
		t.Fatalf("expected 7+10=17s, notices: %v", screen.notices)
	}
	if sess.RemainingForCurrent != 17 {
		t.Fatalf("remaining snapshot = %d, want 17", sess.RemainingForCurrent)
	}
}

func TestLifelineExtraTimeAlreadyUsed(t *testing.T) {
	runtime, screen, _ := newTestRuntime([]int{'L', '1'}, []int{4})
	sess := &domain.Session{}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()
	lifelines.ExtraTime = false

	runOne(t, runtime, sess, &q, nil, &lifelines)

	if !screen.sawNotice("Extra Time already used.") {
		t.Fatalf("expected notice, got %v", screen.notices)
	}
}

func TestLifelineExtraTimeRefusedWhenExpired(t *testing.T) {
	runtime, screen, _ := newTestRuntime([]int{-1, 'L'}, []int{4})
	sess := &domain.Session{RemainingForCurrent: 1}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	// The single second elapses during the first sleep, so the menu opens
	// with zero remaining and extra time must be refused, unconsumed.
	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if !screen.sawNotice("Cannot use Extra Time") {
		t.Fatalf("expected refusal notice, got %v", screen.notices)
	}
	if !lifelines.ExtraTime {
		t.Fatal("extra time consumed despite refusal")
	}
	if out.Kind != domain.OutcomeTimedOut {
		t.Fatalf("outcome = %+v, want TimedOut", out)
	}
}

func TestLifelineReplace(t *testing.T) {
	runtime, _, _ := newTestRuntime([]int{'L', '1'}, []int{3})
	sess := &domain.Session{RemainingForCurrent: 6}
	bank := []domain.Question{newQuestion("alpha", 1), newQuestion("beta", 1)}
	q := bank[0]
	lifelines := domain.NewLifelineState()

	out := runtime.Run(1, sess, &q, bank, &lifelines)

	if out.Kind != domain.OutcomeAnswered {
		t.Fatalf("outcome = %+v, want Answered", out)
	}
	if q.Text != "beta" {
		t.Fatalf("question text = %q, want the replacement", q.Text)
	}
	if lifelines.Replace {
		t.Fatal("replace lifeline not consumed")
	}
	for i, v := range q.Visible {
		if !v {
			t.Fatalf("option %d masked on replacement question", i)
		}
	}
	// Remaining time is preserved across the replacement.
	if sess.RemainingForCurrent != 6 {
		t.Fatalf("remaining snapshot = %d, want 6", sess.RemainingForCurrent)
	}
}

func TestLifelineReplaceRefundedWhenNoAlternative(t *testing.T) {
	runtime, screen, _ := newTestRuntime([]int{'L', '1'}, []int{3})
	sess := &domain.Session{}
	bank := []domain.Question{newQuestion("alpha", 1), newQuestion("alpha", 1)}
	q := bank[0]
	lifelines := domain.NewLifelineState()

	runtime.Run(1, sess, &q, bank, &lifelines)

	if !screen.sawNotice("No replacement found.") {
		t.Fatalf("expected notice, got %v", screen.notices)
	}
	if !lifelines.Replace {
		t.Fatal("replace consumed even though no alternative existed")
	}
}

func TestLifelineCancelPreservesState(t *testing.T) {
	runtime, screen, recorder := newTestRuntime([]int{'L', '4'}, []int{0})
	sess := &domain.Session{RemainingForCurrent: 7}
	q := newQuestion("q", domain.DifficultyEasy)
	lifelines := domain.NewLifelineState()

	out := runOne(t, runtime, sess, &q, nil, &lifelines)

	if out.Kind != domain.OutcomeAnswered || out.Answer != 4 {
		t.Fatalf("outcome = %+v, want Answered(4)", out)
	}
	if lifelines != domain.NewLifelineState() {
		t.Fatalf("cancel consumed a lifeline: %+v", lifelines)
	}
	if !screen.sawNotice("Lifeline cancelled.") {
		t.Fatalf("expected cancel notice, got %v", screen.notices)
	}
	// The lifeline pause snapshots progress with the remaining seconds, so
	// a crash mid-question can resume with the right timer.
	if len(recorder.saves) != 1 || recorder.saves[0].RemainingForCurrent != 7 {
		t.Fatalf("expected one mid-question save with 7s, got %+v", recorder.saves)
	}
}
