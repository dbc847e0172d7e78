package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Category pairs a menu label with the question file behind it.
type Category struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type Config struct {
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Categories []Category `yaml:"categories"`
	Files      struct {
		HighScores string `yaml:"high_scores"`
		SessionLog string `yaml:"session_log"`
		Progress   string `yaml:"progress"`
	} `yaml:"files"`
	Timing struct {
		QuestionSeconds int    `yaml:"question_seconds"`
		ExtraSeconds    int    `yaml:"extra_seconds"`
		PollInterval    string `yaml:"poll_interval"`
	} `yaml:"timing"`
	Quiz struct {
		QuestionsPerSession int    `yaml:"questions_per_session"`
		BankTTL             string `yaml:"bank_ttl"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path. A missing file yields the defaults so
// the game runs without any configuration on disk.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Categories) == 0 {
		c.Categories = []Category{
			{Name: "Science", File: "science.txt"},
			{Name: "Sports", File: "sports.txt"},
			{Name: "History", File: "history.txt"},
			{Name: "Computer", File: "computer.txt"},
			{Name: "IQ/Logic", File: "iq.txt"},
		}
	}
	if c.Files.HighScores == "" {
		c.Files.HighScores = "high_scores.txt"
	}
	if c.Files.SessionLog == "" {
		c.Files.SessionLog = "quiz_logs.txt"
	}
	if c.Files.Progress == "" {
		c.Files.Progress = "save_progress.txt"
	}
	if c.Timing.QuestionSeconds <= 0 {
		c.Timing.QuestionSeconds = 10
	}
	if c.Timing.ExtraSeconds <= 0 {
		c.Timing.ExtraSeconds = 10
	}
	if c.Quiz.QuestionsPerSession <= 0 {
		c.Quiz.QuestionsPerSession = 10
	}
}

// Path resolves name against the configured data dir when name is relative.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) || c.Data.Dir == "" {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
