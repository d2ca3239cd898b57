package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/threatline/sigscan/pkg/config"
	"github.com/threatline/sigscan/pkg/enum"
	"github.com/threatline/sigscan/pkg/matcher"
	"github.com/threatline/sigscan/pkg/scanner"
	"github.com/threatline/sigscan/pkg/signature"
	"github.com/threatline/sigscan/pkg/store"
	"github.com/threatline/sigscan/pkg/types"
)

var (
	scanSignaturePath  string
	scanConfigPath     string
	scanWorkers        int
	scanOutputPath     string
	scanOutputFormat   string
	scanIncludeHidden  bool
	scanFollowSymlinks bool
	scanMaxFileSize    int64
	scanIgnoreFile     string
	scanChunkSize      int
	scanSlack          int
	scanShowClean      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Scan a directory tree for the signature",
	Long:  "Walk a directory tree, identify ELF binaries, and search each one for the loaded byte signature",
	Args:  cobra.ExactArgs(1),
}

func init() {
	scanCmd.RunE = runScan
	scanCmd.Flags().StringVarP(&scanSignaturePath, "signature", "s", "", "Path to the signature file (required)")
	scanCmd.Flags().StringVar(&scanConfigPath, "config", "", "Path to a YAML scan profile")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Worker pool size (0 = available CPUs)")
	scanCmd.Flags().StringVar(&scanOutputPath, "output", "sigscan.db", "Output database path (\":memory:\" to skip persistence)")
	scanCmd.Flags().StringVar(&scanOutputFormat, "format", "human", "Output format: human, json")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().BoolVar(&scanFollowSymlinks, "follow-symlinks", false, "Follow symbolic links")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 0, "Maximum file size to scan in bytes (0 = no limit)")
	scanCmd.Flags().StringVar(&scanIgnoreFile, "ignore-file", "", "Path to a gitignore-style exclude file")
	scanCmd.Flags().IntVar(&scanChunkSize, "chunk-size", 0, "Matcher chunk floor in bytes (0 = default)")
	scanCmd.Flags().IntVar(&scanSlack, "slack", 0, "Matcher chunk headroom in bytes (0 = default)")
	scanCmd.Flags().BoolVar(&scanShowClean, "show-clean", false, "Also list clean and ineligible files in human output")

	scanCmd.MarkFlagRequired("signature")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]

	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("scan root does not exist: %s", root)
	}

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	sig, err := signature.Load(scanSignaturePath)
	if err != nil {
		return fmt.Errorf("loading signature: %w", err)
	}

	core, err := scanner.New(scanner.Config{
		Root:      root,
		Signature: sig,
		Workers:   profile.Workers,
		Matcher: matcher.Config{
			ChunkSize: profile.ChunkSize,
			Slack:     profile.Slack,
		},
		Enum: enum.Config{
			IncludeHidden:  profile.IncludeHidden,
			FollowSymlinks: profile.FollowSymlinks,
			MaxFileSize:    profile.MaxFileSize,
			IgnoreFile:     profile.IgnoreFile,
		},
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("creating scanner: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, records, err := core.Run(ctx)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	if err := persistRecords(records); err != nil {
		return err
	}

	if scanOutputFormat == "json" {
		return outputScanJSON(cmd, summary, records)
	}
	return outputScanHuman(cmd, summary, records, profile.ShowClean)
}

// loadProfile merges the optional YAML profile with explicit flags.
// A flag the user set always wins over the profile value.
func loadProfile() (config.Config, error) {
	profile := config.Default()
	if scanConfigPath != "" {
		var err error
		profile, err = config.Load(scanConfigPath)
		if err != nil {
			return profile, err
		}
	}

	flags := scanCmd.Flags()
	if flags.Changed("workers") {
		profile.Workers = scanWorkers
	}
	if flags.Changed("chunk-size") {
		profile.ChunkSize = scanChunkSize
	}
	if flags.Changed("slack") {
		profile.Slack = scanSlack
	}
	if flags.Changed("include-hidden") {
		profile.IncludeHidden = scanIncludeHidden
	}
	if flags.Changed("follow-symlinks") {
		profile.FollowSymlinks = scanFollowSymlinks
	}
	if flags.Changed("max-file-size") {
		profile.MaxFileSize = scanMaxFileSize
	}
	if flags.Changed("ignore-file") {
		profile.IgnoreFile = scanIgnoreFile
	}
	if flags.Changed("show-clean") {
		profile.ShowClean = scanShowClean
	}

	return profile, profile.Validate()
}

func persistRecords(records []types.Record) error {
	if scanOutputPath == "" || scanOutputPath == ":memory:" {
		return nil
	}

	s, err := store.New(store.Config{Path: scanOutputPath})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	for i := range records {
		if err := s.AddRecord(&records[i]); err != nil {
			return fmt.Errorf("storing record: %w", err)
		}
	}
	return nil
}

func outputScanJSON(cmd *cobra.Command, summary *types.Summary, records []types.Record) error {
	// Keep stdout pure JSON; the summary line goes to stderr.
	fmt.Fprintf(cmd.ErrOrStderr(), "Scan complete: %d files, %d infected, %d errors\n",
		summary.Total, summary.Infected, summary.Errors)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func outputScanHuman(cmd *cobra.Command, summary *types.Summary, records []types.Record, showClean bool) error {
	out := cmd.OutOrStdout()
	s := newStyles(colorEnabled("auto"))

	fmt.Fprintf(out, "Scanning started...\n\n")
	printRecords(out, s, records, showClean)

	fmt.Fprintf(out, "\nScan complete: %d files, %d infected, %d errors (%d clean, %d ineligible)\n",
		summary.Total, summary.Infected, summary.Errors, summary.Clean, summary.Ineligible)
	if scanOutputPath != "" && scanOutputPath != ":memory:" {
		fmt.Fprintf(out, "Results stored in: %s\n", scanOutputPath)
	}
	return nil
}
