package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool

	// log is configured by the root PersistentPreRun and shared by
	// all subcommands.
	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "sigscan",
	Short: "sigscan - byte-signature scanner for ELF binaries",
	Long: `sigscan walks a directory tree, identifies ELF binaries by their
magic header, and searches each one for a literal byte signature using
a bounded sliding-window matcher and a fixed pool of parallel workers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		if quiet {
			level = zerolog.ErrorLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
