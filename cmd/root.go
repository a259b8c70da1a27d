package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/karuta/data"
	"github.com/abhisek/karuta/internal/logging"
	"github.com/abhisek/karuta/internal/poem"
)

var rootCmd = &cobra.Command{
	Use:   "karuta",
	Short: "Hyakunin Isshu quiz",
	Long:  "Karuta — practice the hundred poems of the Ogura Hyakunin Isshu in the terminal or over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the poem corpus JSON (overrides KARUTA_DATA env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides KARUTA_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of discarding them")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(poemsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnv reads .env from the working directory when present.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// stringSetting returns the flag value when set, then the env var, then def.
func stringSetting(cmd *cobra.Command, flag, env, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// openRepository loads the corpus named by --data or KARUTA_DATA, falling
// back to the bundled corpus.
func openRepository(cmd *cobra.Command, logger *slog.Logger) (*poem.Repository, error) {
	path := stringSetting(cmd, "data", "KARUTA_DATA", "")

	var (
		poems []poem.Poem
		err   error
	)
	if path == "" {
		path = "(bundled) " + data.CorpusName
		poems, err = poem.Load(data.Corpus())
	} else {
		poems, err = poem.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	repo := poem.NewRepository(poems)
	issues := repo.Validate()
	logger.Info("corpus loaded", "path", path, "poems", repo.Len(), "issues", len(issues))
	for _, issue := range issues {
		logger.Warn("corpus issue", "kind", issue.Kind, "number", issue.Number, "message", issue.Message)
	}
	return repo, nil
}

// newLogger builds the process logger. Without --log-file, logs go to
// fallback; the TUI passes io.Discard so output never reaches the screen.
func newLogger(cmd *cobra.Command, fallback io.Writer, format logging.Format) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(stringSetting(cmd, "log-level", "KARUTA_LOG_LEVEL", "info"))
	if err != nil {
		return nil, nil, err
	}

	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		if fallback == io.Discard {
			return logging.Discard(), func() {}, nil
		}
		return logging.New(fallback, level, format), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, level, format), func() { f.Close() }, nil
}
