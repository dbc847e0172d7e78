package filestore

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"quizmaster/internal/domain"
)

// Progress is the snapshot file rewritten after every question so an
// interrupted session can be partially resumed.
//
// Format, one field per line:
//
//	player name
//	score correct wrong startTimestamp
//	answers (space separated, one per question)
//	question indices (space separated)
//	remaining seconds for the current question (0 or absent = default)
type Progress struct {
	path string
}

func NewProgress(path string) *Progress {
	return &Progress{path: path}
}

// Save rewrites the snapshot, truncating any prior contents.
func (p *Progress) Save(s domain.Session) error {
	f, err := os.Create(p.path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, s.PlayerName)
	fmt.Fprintf(w, "%d %d %d %d\n", s.Score, s.Correct, s.Wrong, s.StartedAt.Unix())
	fmt.Fprintln(w, fieldsLine(s.Answers))
	fmt.Fprintln(w, fieldsLine(s.QuestionIndices))
	fmt.Fprintln(w, s.RemainingForCurrent)
	return w.Flush()
}

// Load reads the snapshot back. Any parse failure is treated as an absent
// snapshot and reported as ErrSnapshotNotFound.
func (p *Progress) Load() (domain.Session, error) {
	var s domain.Session
	data, err := os.ReadFile(p.path)
	if err != nil {
		return s, domain.ErrSnapshotNotFound
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < 4 {
		return s, domain.ErrSnapshotNotFound
	}

	s.PlayerName = strings.TrimSpace(lines[0])
	if s.PlayerName == "" {
		return domain.Session{}, domain.ErrSnapshotNotFound
	}

	aggregates := strings.Fields(lines[1])
	if len(aggregates) < 4 {
		return domain.Session{}, domain.ErrSnapshotNotFound
	}
	nums := make([]int64, 4)
	for i, raw := range aggregates[:4] {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Session{}, domain.ErrSnapshotNotFound
		}
		nums[i] = v
	}
	s.Score, s.Correct, s.Wrong = int(nums[0]), int(nums[1]), int(nums[2])
	s.StartedAt = time.Unix(nums[3], 0)

	s.Answers, err = parseInts(lines[2])
	if err != nil {
		return domain.Session{}, domain.ErrSnapshotNotFound
	}
	s.QuestionIndices, err = parseInts(lines[3])
	if err != nil {
		return domain.Session{}, domain.ErrSnapshotNotFound
	}
	if len(s.QuestionIndices) < len(s.Answers) {
		s.Answers = s.Answers[:len(s.QuestionIndices)]
	}

	// Remaining-seconds line is optional; older snapshots lack it.
	if len(lines) > 4 {
		if v, err := strconv.Atoi(strings.TrimSpace(lines[4])); err == nil && v > 0 {
			s.RemainingForCurrent = v
		}
	}
	return s, nil
}

// Clear removes the snapshot. A missing file is not an error.
func (p *Progress) Clear() error {
	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func fieldsLine(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func parseInts(line string) ([]int, error) {
	fields := strings.Fields(line)
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
