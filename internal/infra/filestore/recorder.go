package filestore

import (
	"log"
	"time"

	"quizmaster/internal/domain"
)

// Recorder wires the three session files together: the rewritten progress
// snapshot, the append-only high-score file and the append-only session
// log. All writes are best-effort; persistence failures never interrupt a
// running quiz.
type Recorder struct {
	progress   *Progress
	highScores *HighScores
	sessionLog *SessionLog
	now        func() time.Time
}

func NewRecorder(progress *Progress, highScores *HighScores, sessionLog *SessionLog) *Recorder {
	return &Recorder{
		progress:   progress,
		highScores: highScores,
		sessionLog: sessionLog,
		now:        time.Now,
	}
}

// SaveProgress rewrites the snapshot after a question (or a lifeline pause).
func (r *Recorder) SaveProgress(s domain.Session) {
	if err := r.progress.Save(s); err != nil {
		log.Printf("save progress: %v", err)
	}
}

// Complete appends the clamped score to the high-score file, appends the
// raw-score session block to the log, then removes the snapshot.
func (r *Recorder) Complete(s domain.Session) {
	when := r.now().Format(time.ANSIC)
	entry := domain.ScoreEntry{Name: s.PlayerName, Score: s.FinalScore(), DateTime: when}
	if err := r.highScores.Append(entry); err != nil {
		log.Printf("append high score: %v", err)
	}
	if err := r.sessionLog.Append(s, when); err != nil {
		log.Printf("append session log: %v", err)
	}
	if err := r.progress.Clear(); err != nil {
		log.Printf("clear snapshot: %v", err)
	}
}
