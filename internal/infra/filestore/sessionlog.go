package filestore

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"quizmaster/internal/domain"
)

// SessionLog is the append-only per-session summary file. It records the
// raw (possibly negative) score.
type SessionLog struct {
	path string
}

func NewSessionLog(path string) *SessionLog {
	return &SessionLog{path: path}
}

// Append writes one session block terminated by a dashed separator.
func (l *SessionLog) Append(s domain.Session, when string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "Player: %s | Score: %d | Correct: %d | Wrong: %d | Time: %s\n",
		s.PlayerName, s.Score, s.Correct, s.Wrong, when)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(f, "Questions indices: %s\n", joinInts(s.QuestionIndices)); err != nil {
		return err
	}
	if _, err = fmt.Fprintf(f, "Answers: %s\n", joinInts(s.Answers)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, "-------------------------------")
	return err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ,")
}
