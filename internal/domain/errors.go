package domain

import "errors"

var (
	// ErrBankEmpty is returned when a category file is missing or holds no questions.
	ErrBankEmpty = errors.New("question bank is empty")
	// ErrMalformedQuestionFile indicates a truncated or non-numeric question record.
	ErrMalformedQuestionFile = errors.New("malformed question file")
	// ErrNoReplacement indicates the Replace lifeline found no distinct question.
	ErrNoReplacement = errors.New("no replacement question available")
	// ErrSnapshotNotFound is returned when no usable progress snapshot exists.
	ErrSnapshotNotFound = errors.New("progress snapshot not found")
)
