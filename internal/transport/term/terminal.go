package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
	"quizmaster/internal/domain"
)

// Terminal adapts stdin/stdout to the quiz engine: raw-mode non-blocking
// single-key polling while a question is running, cooked-mode line prompts
// everywhere else (menus, the lifeline menu, name entry).
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
	fd     int
	read   func(p []byte) (int, error) // non-blocking byte source while raw
	state  *xterm.State                // non-nil while raw
}

func New() *Terminal {
	t := &Terminal{
		in:     os.Stdin,
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
		fd:     int(os.Stdin.Fd()),
	}
	t.read = func(p []byte) (int, error) { return unix.Read(t.fd, p) }
	return t
}

// StartPolling switches stdin to raw non-blocking mode for the duration of
// a question's countdown loop.
func (t *Terminal) StartPolling() error {
	if t.state != nil {
		return nil
	}
	t.flushTypeahead()
	state, err := xterm.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	if err := unix.SetNonblock(t.fd, true); err != nil {
		_ = xterm.Restore(t.fd, state)
		return fmt.Errorf("set nonblock: %w", err)
	}
	t.state = state
	return nil
}

// StopPolling restores cooked blocking mode.
func (t *Terminal) StopPolling() {
	if t.state == nil {
		return
	}
	_ = unix.SetNonblock(t.fd, false)
	_ = xterm.Restore(t.fd, t.state)
	t.state = nil
}

// Poll returns a pending printable key without blocking. Escape sequences
// from arrows and function keys are drained and reported as no key. Outside
// a polling session stdin is a blocking cooked tty, so Poll reports no key
// rather than risk blocking the countdown.
func (t *Terminal) Poll() (byte, bool) {
	if t.state == nil {
		return 0, false
	}
	var buf [1]byte
	n, err := t.read(buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	key := buf[0]
	if key == 0x1b {
		t.drainPending()
		return 0, false
	}
	if key < 0x20 || key > 0x7e {
		return 0, false
	}
	return key, true
}

// drainPending discards whatever else is buffered, e.g. the tail of an
// escape sequence.
func (t *Terminal) drainPending() {
	var buf [16]byte
	for {
		n, err := t.read(buf[:])
		if err != nil || n <= 0 {
			return
		}
		if n < len(buf) {
			return
		}
	}
}

// flushTypeahead drops bytes the line reader buffered past the last consumed
// prompt line, so keys typed before a question starts cannot sit invisibly
// in the bufio buffer while Poll reads the fd directly.
func (t *Terminal) flushTypeahead() {
	if n := t.reader.Buffered(); n > 0 {
		_, _ = t.reader.Discard(n)
	}
}

// Println writes one line, emitting \r\n while the terminal is raw.
func (t *Terminal) Println(msg string) {
	if t.state != nil {
		fmt.Fprint(t.out, strings.ReplaceAll(msg, "\n", "\r\n")+"\r\n")
		return
	}
	fmt.Fprintln(t.out, msg)
}

// ShowQuestion renders the question header, the option list masked by the
// visibility bitmap and the still-available lifelines.
func (t *Terminal) ShowQuestion(number int, q domain.Question, lifelines domain.LifelineState) {
	t.Println("")
	t.Println("================================")
	t.Println(fmt.Sprintf("Question %d (Difficulty %d)", number, q.Difficulty))
	t.Println("")
	t.Println(q.Text)
	for i := 0; i < domain.MaxOptions; i++ {
		if q.Visible[i] {
			t.Println(fmt.Sprintf("%d. %s", i+1, q.Options[i]))
		} else {
			t.Println(fmt.Sprintf("%d. ----", i+1))
		}
	}

	var available []string
	if lifelines.FiftyFifty {
		available = append(available, "[1]50/50")
	}
	if lifelines.Skip {
		available = append(available, "[2]Skip")
	}
	if lifelines.Replace {
		available = append(available, "[3]Replace")
	}
	if lifelines.ExtraTime {
		available = append(available, "[4]ExtraTime")
	}
	t.Println("")
	t.Println("Lifelines: " + strings.Join(available, " "))
	t.Println("Press 1-4 to answer immediately, or press L to use a lifeline.")
}

// ShowRemaining overwrites the status line with the current countdown.
func (t *Terminal) ShowRemaining(seconds int) {
	fmt.Fprintf(t.out, "\rTime Remaining: %02ds  ", seconds)
}

// Notice prints a message, closing the countdown status line first when in
// raw mode.
func (t *Terminal) Notice(msg string) {
	if t.state != nil {
		fmt.Fprint(t.out, "\r\n")
	}
	t.Println(msg)
}

// PromptLifeline pauses polling, shows the lifeline menu and blocks on a
// numeric choice. The countdown is paused for the duration.
func (t *Terminal) PromptLifeline() int {
	wasRaw := t.state != nil
	if wasRaw {
		t.StopPolling()
	}
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "--- Lifelines menu (timer paused) ---")
	fmt.Fprintln(t.out, "1 = 50/50   (remove two wrong options)")
	fmt.Fprintln(t.out, "2 = Skip    (skip question, no time penalty, moves on)")
	fmt.Fprintln(t.out, "3 = Replace (replace with another question; remaining time preserved)")
	fmt.Fprintln(t.out, "4 = ExtraTime (+10s to remaining time) [usable once per quiz]")
	choice := t.PromptIntInRange("Enter your choice (1-4) or 0 to cancel: ", 0, 4)
	if wasRaw {
		_ = t.StartPolling()
	}
	return choice
}

// PromptLine prints a prompt and reads one line.
func (t *Terminal) PromptLine(prompt string) string {
	fmt.Fprint(t.out, prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// PromptIntInRange re-prompts until the user enters an integer in [min, max].
func (t *Terminal) PromptIntInRange(prompt string, min, max int) int {
	fmt.Fprint(t.out, prompt)
	for {
		line, err := t.reader.ReadString('\n')
		if v, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil && v >= min && v <= max {
			return v
		}
		if err != nil {
			// Input is gone (EOF); fall back to the lowest choice rather than spin.
			return min
		}
		fmt.Fprintf(t.out, "Please enter a number between %d and %d: ", min, max)
	}
}

// WaitEnter blocks until the user presses Enter.
func (t *Terminal) WaitEnter(prompt string) {
	fmt.Fprint(t.out, prompt)
	_, _ = t.reader.ReadString('\n')
}
