package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/karuta/internal/app"
	"github.com/abhisek/karuta/internal/logging"
	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	def := session.DefaultSettings()
	cmd.Flags().Int("questions", def.TotalQuestions, "Number of questions per quiz (1-100)")
	cmd.Flags().String("difficulty", string(def.Difficulty), "Difficulty: beginner, intermediate, advanced")
	cmd.Flags().String("mode", string(def.Mode), "Question type: upper_to_lower, lower_to_upper, author_to_poem, poem_to_author, mixed")
	cmd.Flags().Bool("hints", def.EnableHints, "Allow one hint per question")
	cmd.Flags().Bool("explanations", def.ShowExplanations, "Show the poem's explanation after each answer")
	cmd.Flags().Int("time-limit", def.TimeLimitSeconds, "Seconds per question, 0 for no limit")
}

// settingsFromFlags builds quiz defaults from the play flags.
func settingsFromFlags(cmd *cobra.Command) (session.Settings, error) {
	s := session.DefaultSettings()
	f := cmd.Flags()

	s.TotalQuestions, _ = f.GetInt("questions")
	s.EnableHints, _ = f.GetBool("hints")
	s.ShowExplanations, _ = f.GetBool("explanations")
	s.TimeLimitSeconds, _ = f.GetInt("time-limit")

	raw, _ := f.GetString("difficulty")
	d, err := poem.ParseDifficulty(raw)
	if err != nil {
		return s, err
	}
	s.Difficulty = d

	raw, _ = f.GetString("mode")
	mode, err := quiz.ParseType(raw)
	if err != nil {
		return s, err
	}
	s.Mode = mode

	return s, s.Validate()
}

func runPlay(cmd *cobra.Command) error {
	settings, err := settingsFromFlags(cmd)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, closeLog, err := newLogger(cmd, io.Discard, logging.FormatText)
	if err != nil {
		return err
	}
	defer closeLog()

	repo, err := openRepository(cmd, logger)
	if err != nil {
		return err
	}
	if issues := repo.Validate(); len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "warning: corpus has %d issue(s); run `karuta poems validate` for details\n", len(issues))
	}

	ctrl := session.NewController(repo,
		session.WithDefaults(settings),
		session.WithLogger(logger),
	)
	return app.Run(ctrl)
}
