package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"quizmaster/internal/app"
	"quizmaster/internal/config"
	"quizmaster/internal/domain"
	"quizmaster/internal/infra/bank"
	"quizmaster/internal/infra/filestore"
	"quizmaster/internal/transport/term"
)

// newPlayCmd starts a quiz session directly, skipping the main menu.
func newPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start a quiz session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			terminal := term.New()
			if err := playQuiz(cmd.Context(), cfg, terminal, nil); err != nil {
				terminal.Println("Could not start quiz: " + err.Error())
			}
			return nil
		},
	}
}

// playQuiz prompts for category, name and difficulty, then runs a full
// session. A non-nil seed pre-populates the session from a saved snapshot.
func playQuiz(ctx context.Context, cfg config.Config, terminal *term.Terminal, seed *domain.Session) error {
	var sess domain.Session
	if seed != nil {
		sess = *seed
	}

	sess.Category = chooseCategory(cfg, terminal)
	if sess.PlayerName == "" {
		name := terminal.PromptLine("Enter your name: ")
		if name == "" {
			name = "Player"
		}
		sess.PlayerName = name
	}
	terminal.Println("")
	terminal.Println("Choose difficulty: 1. Easy 2. Medium 3. Hard")
	sess.Difficulty = terminal.PromptIntInRange("Enter (1-3): ", 1, 3)

	game := buildGame(cfg, terminal)
	terminal.WaitEnter("\nQuiz starting! Press Enter to start...")
	return game.Play(ctx, &sess)
}

func chooseCategory(cfg config.Config, terminal *term.Terminal) string {
	terminal.Println("")
	terminal.Println("Select Category:")
	for i, c := range cfg.Categories {
		terminal.Println(fmt.Sprintf("%d. %s", i+1, c.Name))
	}
	choice := terminal.PromptIntInRange(fmt.Sprintf("Enter (1-%d): ", len(cfg.Categories)), 1, len(cfg.Categories))
	return cfg.Path(cfg.Categories[choice-1].File)
}

func buildGame(cfg config.Config, terminal *term.Terminal) *app.Game {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	banks := bank.NewRepository(bank.FileLoader{}, config.Duration(cfg.Quiz.BankTTL, 10*time.Minute))
	recorder := filestore.NewRecorder(
		filestore.NewProgress(cfg.Path(cfg.Files.Progress)),
		filestore.NewHighScores(cfg.Path(cfg.Files.HighScores)),
		filestore.NewSessionLog(cfg.Path(cfg.Files.SessionLog)),
	)
	clock := app.SystemClock{}
	runtime := app.NewRuntime(terminal, clock, terminal, recorder, rnd, app.Options{
		QuestionTime: time.Duration(cfg.Timing.QuestionSeconds) * time.Second,
		ExtraTime:    time.Duration(cfg.Timing.ExtraSeconds) * time.Second,
		PollInterval: config.Duration(cfg.Timing.PollInterval, 80*time.Millisecond),
	})
	selector := app.NewSelector(rnd, cfg.Quiz.QuestionsPerSession)
	return app.NewGame(banks, recorder, runtime, selector, terminal, clock)
}
