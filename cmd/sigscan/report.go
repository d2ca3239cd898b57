package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/threatline/sigscan/pkg/store"
	"github.com/threatline/sigscan/pkg/types"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
	reportShowClean bool
)

// styles holds the color formatters for human output.
type styles struct {
	infected *color.Color
	errLine  *color.Color
	path     *color.Color
	heading  *color.Color
}

// newStyles creates color formatters.
// enabled=false respects --color never and the NO_COLOR env var.
func newStyles(enabled bool) *styles {
	s := &styles{
		infected: color.New(color.Bold, color.FgRed),
		errLine:  color.New(color.FgYellow),
		path:     color.New(color.FgHiWhite),
		heading:  color.New(color.Bold),
	}

	if !enabled {
		s.infected.DisableColor()
		s.errLine.DisableColor()
		s.path.DisableColor()
		s.heading.DisableColor()
	}

	return s
}

// colorEnabled resolves an auto/always/never color mode.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report on a persisted scan run",
	Long:  "Read per-file records from a scan database and print a summary report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatastore, "datastore", "sigscan.db", "Path to the scan database")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
	reportCmd.Flags().BoolVar(&reportShowClean, "show-clean", false, "Also list clean and ineligible files")
}

func runReport(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(reportDatastore); err != nil {
		return fmt.Errorf("datastore does not exist: %s", reportDatastore)
	}

	s, err := store.New(store.Config{Path: reportDatastore})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	stored, err := s.GetRecords()
	if err != nil {
		return fmt.Errorf("retrieving records: %w", err)
	}

	records := make([]types.Record, len(stored))
	for i, rec := range stored {
		records[i] = *rec
	}

	if reportFormat == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	out := cmd.OutOrStdout()
	st := newStyles(colorEnabled(reportColor))
	summary := types.Summarize(records)

	st.heading.Fprintf(out, "Scan report: %s\n\n", reportDatastore)
	printRecords(out, st, records, reportShowClean)
	fmt.Fprintf(out, "\n%d files, %d infected, %d errors (%d clean, %d ineligible)\n",
		summary.Total, summary.Infected, summary.Errors, summary.Clean, summary.Ineligible)
	return nil
}

// printRecords writes one line per noteworthy record. Clean and
// ineligible files only appear when showClean is set.
func printRecords(out io.Writer, s *styles, records []types.Record, showClean bool) {
	for _, rec := range records {
		switch rec.Outcome {
		case types.OutcomeInfected:
			s.infected.Fprintf(out, "!!! File %s is infected\n", rec.Path)
		case types.OutcomeError:
			s.errLine.Fprintf(out, "Error scanning %s: %s\n", rec.Path, rec.Detail)
		case types.OutcomeClean:
			if showClean {
				fmt.Fprintf(out, "Clean: %s\n", rec.Path)
			}
		case types.OutcomeIneligible:
			if showClean {
				fmt.Fprintf(out, "Skipped (not ELF): %s\n", rec.Path)
			}
		}
	}
}
