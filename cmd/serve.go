package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/karuta/internal/logging"
	"github.com/abhisek/karuta/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := logging.ParseFormat(mustString(cmd, "log-format"))
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cmd, os.Stderr, format)
		if err != nil {
			return err
		}
		defer closeLog()

		repo, err := openRepository(cmd, logger)
		if err != nil {
			return err
		}

		cfg := server.DefaultConfig()
		cfg.Addr = stringSetting(cmd, "addr", "KARUTA_ADDR", cfg.Addr)
		cfg.SessionKey = os.Getenv("KARUTA_SESSION_KEY")
		cfg.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")
		if origins := stringSetting(cmd, "allowed-origins", "KARUTA_ALLOWED_ORIGINS", ""); origins != "" {
			cfg.AllowedOrigins = strings.Split(origins, ",")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(repo, cfg, server.WithLogger(logger))
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	def := server.DefaultConfig()
	serveCmd.Flags().String("addr", "", "Listen address (overrides KARUTA_ADDR, default "+def.Addr+")")
	serveCmd.Flags().Duration("session-ttl", def.SessionTTL, "Drop sessions idle for longer than this")
	serveCmd.Flags().String("allowed-origins", "", "Comma separated CORS origins allowed to send the session cookie (overrides KARUTA_ALLOWED_ORIGINS, default any origin without cookies)")
	serveCmd.Flags().String("log-format", string(logging.FormatJSON), "Log format: text or json")
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
