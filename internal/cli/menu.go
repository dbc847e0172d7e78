package cli

import (
	"context"
	"strings"

	"quizmaster/internal/config"
	"quizmaster/internal/transport/term"
)

// runMenu is the interactive top-level loop: Start / View High Scores /
// Resume / Exit.
func runMenu(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	terminal := term.New()

	for {
		terminal.Println("================================")
		terminal.Println("      Welcome to QuizMaster!")
		terminal.Println("================================")
		terminal.Println("")
		terminal.Println("1. Start Quiz")
		terminal.Println("2. View High Scores")
		terminal.Println("3. Resume Saved Quiz")
		terminal.Println("4. Exit Game")
		terminal.Println("")

		switch terminal.PromptIntInRange("Please select an option (1-4): ", 1, 4) {
		case 1:
			if err := playQuiz(ctx, cfg, terminal, nil); err != nil {
				terminal.Println("Could not start quiz: " + err.Error())
			}
			terminal.WaitEnter("Press Enter to return to menu...")
		case 2:
			showHighScores(cfg, terminal)
			terminal.WaitEnter("Press Enter to return to main menu...")
		case 3:
			resumeQuiz(ctx, cfg, terminal)
			terminal.WaitEnter("Press Enter to return to menu...")
		case 4:
			answer := terminal.PromptLine("Are you sure you want to exit? (Y/N): ")
			if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(answer)), "Y") {
				terminal.Println("Goodbye!")
				return nil
			}
		}
	}
}
