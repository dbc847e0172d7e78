package bank

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"quizmaster/internal/domain"
)

// Loader fetches a question bank from a backing store.
type Loader interface {
	LoadBank(ctx context.Context, path string) ([]domain.Question, error)
}

// FileLoader parses the plain-text category format: one line of question
// text, four option lines, the 1-based correct index, the difficulty, and
// an optional blank separator line.
type FileLoader struct{}

func (FileLoader) LoadBank(_ context.Context, path string) ([]domain.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrBankEmpty, path, err)
	}
	defer f.Close()

	var questions []domain.Question
	scanner := bufio.NewScanner(f)
	for {
		text, ok := nextNonBlank(scanner)
		if !ok {
			break
		}
		q := domain.Question{Text: text}
		for i := 0; i < domain.MaxOptions; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("%w: question %q truncated", domain.ErrMalformedQuestionFile, text)
			}
			q.Options[i] = scanner.Text()
		}
		correct, ok := scanInt(scanner)
		if !ok || correct < 1 || correct > domain.MaxOptions {
			return nil, fmt.Errorf("%w: question %q has bad correct index", domain.ErrMalformedQuestionFile, text)
		}
		difficulty, ok := scanInt(scanner)
		if !ok || difficulty < domain.DifficultyEasy || difficulty > domain.DifficultyHard {
			return nil, fmt.Errorf("%w: question %q has bad difficulty", domain.ErrMalformedQuestionFile, text)
		}
		q.OriginalCorrect = correct - 1
		q.CorrectIndex = q.OriginalCorrect
		q.Difficulty = difficulty
		q.ResetVisibility()
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBankEmpty, path)
	}
	return questions, nil
}

func nextNonBlank(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func scanInt(scanner *bufio.Scanner) (int, bool) {
	if !scanner.Scan() {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, false
	}
	return v, true
}
