package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"quizmaster/internal/config"
	"quizmaster/internal/infra/filestore"
	"quizmaster/internal/transport/term"
)

func newResumeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a saved quiz session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			resumeQuiz(cmd.Context(), cfg, term.New())
			return nil
		},
	}
}

// resumeQuiz restores name, aggregates and the saved remaining seconds for
// the next question from the snapshot. The exact question order of the
// interrupted session is not restored; a fresh selection is played and is
// what the session log records.
func resumeQuiz(ctx context.Context, cfg config.Config, terminal *term.Terminal) {
	progress := filestore.NewProgress(cfg.Path(cfg.Files.Progress))
	sess, err := progress.Load()
	if err != nil {
		terminal.Println("No saved progress found.")
		return
	}

	terminal.Println(fmt.Sprintf("Found saved progress for player: %s | Score so far: %d", sess.PlayerName, sess.Score))
	terminal.Println("Resume restores your name, score and the remaining seconds for the next question.")
	terminal.Println("Pick the category you used earlier if possible.")
	if sess.RemainingForCurrent > 0 {
		terminal.Println(fmt.Sprintf("Remaining seconds saved: %ds (used for the first question).", sess.RemainingForCurrent))
	}

	if err := playQuiz(ctx, cfg, terminal, &sess); err != nil {
		terminal.Println("Could not resume quiz: " + err.Error())
	}
}
