package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/karuta/internal/logging"
	"github.com/abhisek/karuta/internal/poem"
)

var poemsCmd = &cobra.Command{
	Use:   "poems",
	Short: "Inspect the poem corpus",
}

var poemsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd, logging.Discard())
		if err != nil {
			return err
		}
		s := repo.Stats()
		if asJSON(cmd) {
			return writeIndented(cmd.OutOrStdout(), s)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Poems\t%d\n", s.TotalPoems)
		fmt.Fprintf(w, "Authors\t%d\n", s.UniqueAuthors)
		fmt.Fprintf(w, "Avg upper length\t%.1f\n", s.AverageUpperLength)
		fmt.Fprintf(w, "Avg lower length\t%.1f\n", s.AverageLowerLength)
		for _, d := range poem.AllDifficulties {
			fmt.Fprintf(w, "%s\t%d\n", d.Label(), len(repo.ByDifficulty(d)))
		}
		return w.Flush()
	},
}

var poemsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the corpus for duplicate numbers and empty fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd, logging.Discard())
		if err != nil {
			return err
		}
		issues := repo.Validate()
		if asJSON(cmd) {
			if issues == nil {
				issues = []poem.ValidationIssue{}
			}
			if err := writeIndented(cmd.OutOrStdout(), issues); err != nil {
				return err
			}
		} else {
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue)
			}
		}
		if len(issues) > 0 {
			return fmt.Errorf("corpus has %d issue(s)", len(issues))
		}
		if !asJSON(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d poems\n", repo.Len())
		}
		return nil
	},
}

var poemsSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find poems whose verses, author or translation contain a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd, logging.Discard())
		if err != nil {
			return err
		}
		found := repo.Search(args[0])
		if asJSON(cmd) {
			if found == nil {
				found = []poem.Poem{}
			}
			return writeIndented(cmd.OutOrStdout(), found)
		}
		if len(found) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No poems match %q\n", args[0])
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, p := range found {
			fmt.Fprintf(w, "%d\t%s\t%s\n", p.Number, p.Author, p.FullText())
		}
		return w.Flush()
	},
}

var poemsShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Print one poem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("poem number must be an integer: %q", args[0])
		}
		repo, err := openRepository(cmd, logging.Discard())
		if err != nil {
			return err
		}
		p, err := repo.ByNumber(n)
		if err != nil {
			return fmt.Errorf("poem %d: %w", n, err)
		}
		if asJSON(cmd) {
			return writeIndented(cmd.OutOrStdout(), p)
		}
		printPoem(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	poemsCmd.PersistentFlags().Bool("json", false, "Print JSON instead of text")

	poemsCmd.AddCommand(poemsStatsCmd)
	poemsCmd.AddCommand(poemsValidateCmd)
	poemsCmd.AddCommand(poemsSearchCmd)
	poemsCmd.AddCommand(poemsShowCmd)
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPoem(w io.Writer, p poem.Poem) {
	fmt.Fprintf(w, "%d. %s\n\n", p.Number, p.Author)
	fmt.Fprintf(w, "  %s\n  %s\n", p.Upper, p.Lower)
	if p.Reading != "" {
		fmt.Fprintf(w, "\n  %s\n", p.Reading)
	}
	if p.Translation != "" {
		fmt.Fprintf(w, "\n  %s\n", p.Translation)
	}
	for _, kv := range [][2]string{
		{"Season", p.Season},
		{"Theme", p.Theme},
		{"Technique", p.Technique},
		{"Source", p.Source},
	} {
		if kv[1] != "" {
			fmt.Fprintf(w, "  %s: %s\n", kv[0], kv[1])
		}
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}
