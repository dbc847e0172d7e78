package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "quizmaster",
		Short: "Timed terminal multiple-choice quiz with lifelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newPlayCmd(&configPath))
	cmd.AddCommand(newScoresCmd(&configPath))
	cmd.AddCommand(newResumeCmd(&configPath))
	return cmd
}
