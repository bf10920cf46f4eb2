// Package main provides the CLI entry point for cidsearch-go.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/config"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/logging"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	field             string
	dir               string
	workbook          string
	mode              string
	ignoreCase        bool
	trim              bool
	skipThroughHeader bool
	workers           int
	asJSON            bool
	pretty            bool
	outputPath        string
	logLevel          string
	logFormat         string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cidsearch [query]",
		Short: "Search spreadsheet rows by name or phone number",
		Long: `cidsearch scans the workbooks in a directory (or a single workbook)
for the first row whose name or phone column contains the query, and prints
each matching row as soon as it is found.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&field, "field", "f", "name", "Field to search: name, phone")
	rootCmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of workbooks (default: $CIDSEARCH_DIR or ~/Documents/cid)")
	rootCmd.Flags().StringVarP(&workbook, "workbook", "w", "", "Workbook searched in single mode")
	rootCmd.Flags().StringVar(&mode, "mode", "", "Search mode: fanout, single (default: fanout, or single when --workbook is set)")
	rootCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	rootCmd.Flags().BoolVar(&trim, "trim", false, "Trim whitespace before matching")
	rootCmd.Flags().BoolVar(&skipThroughHeader, "skip-through-header", false, "Skip every row up to the detected header row")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent sheet scans (default: number of CPUs)")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON lines")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write all results as a JSON array to this file instead of stdout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: text, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	searchField, err := models.ParseSearchField(field)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	searcher, err := cidsearch.New(cfg.SearchOptions(), log, nil)
	if err != nil {
		return err
	}
	defer searcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	query := models.SearchQuery{Text: args[0], Field: searchField}
	if outputPath != "" {
		return writeResultsFile(ctx, outputPath, searcher, query)
	}
	return printResults(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), searcher, query, log)
}

// applyFlags overrides environment configuration with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Search.Directory = dir
	}
	if flags.Changed("workbook") {
		cfg.Search.Workbook = workbook
		if !flags.Changed("mode") {
			cfg.Search.Mode = string(cidsearch.ModeSingle)
		}
	}
	if flags.Changed("mode") {
		cfg.Search.Mode = mode
	}
	if flags.Changed("ignore-case") {
		cfg.Search.IgnoreCase = ignoreCase
	}
	if flags.Changed("trim") {
		cfg.Search.Trim = trim
	}
	if flags.Changed("skip-through-header") {
		cfg.Search.SkipThroughHeader = skipThroughHeader
	}
	if flags.Changed("workers") {
		cfg.Search.MaxWorkers = workers
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
}

// printResults prints each result to w as it is published and the
// empty-state message when the search finishes without any. In JSON mode the
// message goes to errW so w stays valid JSON lines.
func printResults(ctx context.Context, w, errW io.Writer, searcher *cidsearch.Searcher, query models.SearchQuery, log logrus.FieldLogger) error {
	stream, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}

	count := 0
	for result := range stream.Subscribe(ctx) {
		if err := writeResult(w, result); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		count++
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, failure := range stream.Failures() {
		log.WithField("error", failure.Error()).Debug("Skipped")
	}

	if count > 0 {
		return nil
	}
	if asJSON {
		w = errW
	}
	_, err = fmt.Fprintln(w, output.NoResults)
	return err
}

// writeResultsFile waits for the search to finish and writes every result
// to path.
func writeResultsFile(ctx context.Context, path string, searcher *cidsearch.Searcher, query models.SearchQuery) error {
	stream, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}
	if err := stream.Wait(ctx); err != nil {
		return err
	}

	jsonData, err := output.ResultsToJSON(stream.Snapshot(), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeResult(w io.Writer, result models.SearchResult) error {
	if !asJSON {
		return output.WriteCard(w, result)
	}
	jsonData, err := output.ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
