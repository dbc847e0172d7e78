package filestore

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"quizmaster/internal/domain"
)

// HighScores is the append-only `name|score|datetime` file.
type HighScores struct {
	path string
}

func NewHighScores(path string) *HighScores {
	return &HighScores{path: path}
}

// Append writes one entry to the end of the file.
func (h *HighScores) Append(entry domain.ScoreEntry) error {
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open high scores: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s|%d|%s\n", entry.Name, entry.Score, entry.DateTime)
	return err
}

// Read returns all entries in insertion order. Lines that do not carry two
// separators are skipped; a missing file reads as no entries.
func (h *HighScores) Read() ([]domain.ScoreEntry, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open high scores: %w", err)
	}
	defer f.Close()

	var entries []domain.ScoreEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		score, err := strconv.Atoi(parts[1])
		if err != nil {
			score = 0
		}
		entries = append(entries, domain.ScoreEntry{Name: parts[0], Score: score, DateTime: parts[2]})
	}
	return entries, scanner.Err()
}

// Top returns up to n entries sorted by score descending. Ties keep
// insertion order.
func (h *HighScores) Top(n int) ([]domain.ScoreEntry, error) {
	entries, err := h.Read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
