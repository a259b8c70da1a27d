package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/karuta/internal/report"
	"github.com/abhisek/karuta/internal/scoring"
)

var exportCmd = &cobra.Command{
	Use:   "export <results.json>",
	Short: "Convert a saved results export into a spreadsheet",
	Long: "Reads the JSON written by GET /api/v1/results/export and renders it " +
		"as an xlsx workbook (or re-indented JSON with --format json).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(mustString(cmd, "format"))
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read export: %w", err)
		}
		var exp scoring.Export
		if err := json.Unmarshal(raw, &exp); err != nil {
			return fmt.Errorf("parse export: %w", err)
		}

		out := mustString(cmd, "output")
		if out == "" || out == "-" {
			return report.Write(cmd.OutOrStdout(), format, exp)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := report.Write(f, format, exp); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", out, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d answers to %s\n", len(exp.Results), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "results.xlsx", "Output file, - for stdout")
	exportCmd.Flags().String("format", string(report.FormatXLSX), "Output format: xlsx or json")
}
