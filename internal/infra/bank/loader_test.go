package bank

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quizmaster/internal/domain"
)

func writeBankFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write bank file: %v", err)
	}
	return path
}

const validBank = `What is 2 + 2?
3
4
5
6
2
1

Which planet is closest to the sun?
Venus
Earth
Mercury
Mars
3
2
`

func TestLoadBankParsesRecords(t *testing.T) {
	path := writeBankFile(t, validBank)

	questions, err := FileLoader{}.LoadBank(context.Background(), path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	q := questions[0]
	if q.Text != "What is 2 + 2?" {
		t.Fatalf("text = %q", q.Text)
	}
	if q.Options != [4]string{"3", "4", "5", "6"} {
		t.Fatalf("options = %v", q.Options)
	}
	if q.CorrectIndex != 1 || q.OriginalCorrect != 1 {
		t.Fatalf("correct index = %d/%d, want 1/1", q.CorrectIndex, q.OriginalCorrect)
	}
	if q.Difficulty != domain.DifficultyEasy {
		t.Fatalf("difficulty = %d", q.Difficulty)
	}
	for i, v := range q.Visible {
		if !v {
			t.Fatalf("option %d not visible after load", i)
		}
	}

	if questions[1].Difficulty != domain.DifficultyMedium || questions[1].CorrectIndex != 2 {
		t.Fatalf("second question parsed wrong: %+v", questions[1])
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	_, err := FileLoader{}.LoadBank(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, domain.ErrBankEmpty) {
		t.Fatalf("expected ErrBankEmpty, got %v", err)
	}
}

func TestLoadBankEmptyFile(t *testing.T) {
	path := writeBankFile(t, "\n\n")
	_, err := FileLoader{}.LoadBank(context.Background(), path)
	if !errors.Is(err, domain.ErrBankEmpty) {
		t.Fatalf("expected ErrBankEmpty, got %v", err)
	}
}

func TestLoadBankTruncatedRecord(t *testing.T) {
	path := writeBankFile(t, "Lonely question?\nonly\ntwo\n")
	_, err := FileLoader{}.LoadBank(context.Background(), path)
	if !errors.Is(err, domain.ErrMalformedQuestionFile) {
		t.Fatalf("expected ErrMalformedQuestionFile, got %v", err)
	}
}

func TestLoadBankBadNumbers(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		diff    string
	}{
		{"non-integer correct", "x", "1"},
		{"correct out of range", "5", "1"},
		{"non-integer difficulty", "1", "x"},
		{"difficulty out of range", "1", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBankFile(t, "Q?\na\nb\nc\nd\n"+tt.correct+"\n"+tt.diff+"\n")
			_, err := FileLoader{}.LoadBank(context.Background(), path)
			if !errors.Is(err, domain.ErrMalformedQuestionFile) {
				t.Fatalf("expected ErrMalformedQuestionFile, got %v", err)
			}
		})
	}
}
