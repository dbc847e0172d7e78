package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"quizmaster/internal/config"
	"quizmaster/internal/infra/filestore"
	"quizmaster/internal/transport/term"
)

func newScoresCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the top high scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			showHighScores(cfg, term.New())
			return nil
		},
	}
}

func showHighScores(cfg config.Config, terminal *term.Terminal) {
	store := filestore.NewHighScores(cfg.Path(cfg.Files.HighScores))
	entries, err := store.Top(5)
	if err != nil {
		terminal.Println("Could not read high scores: " + err.Error())
		return
	}
	if len(entries) == 0 {
		terminal.Println("")
		terminal.Println("No high scores yet.")
		return
	}
	terminal.Println("")
	terminal.Println("================================")
	terminal.Println("        High Scores")
	terminal.Println("================================")
	terminal.Println("")
	for i, e := range entries {
		terminal.Println(fmt.Sprintf("%d. %s - %d points (%s)", i+1, e.Name, e.Score, e.DateTime))
	}
}
