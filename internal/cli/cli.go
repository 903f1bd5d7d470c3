package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/fbref-comps/internal/competition"
	"github.com/pfrederiksen/fbref-comps/internal/config"
	"github.com/pfrederiksen/fbref-comps/internal/logger"
	"github.com/pfrederiksen/fbref-comps/internal/report"
	"github.com/pfrederiksen/fbref-comps/internal/scraper"
	"github.com/pfrederiksen/fbref-comps/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitBlocked = 2
)

var (
	flagURL              string
	flagSeason           string
	flagTable            string
	flagMinDelay         time.Duration
	flagMaxDelay         time.Duration
	flagTimeout          time.Duration
	flagFormat           string
	flagDetectCountry    bool
	flagCloudflareBypass bool
	flagDataDir          string
	flagNewOnly          bool
	flagConfig           string
	flagVerbose          bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbref-comps",
		Short: "List football competitions from FBref",
		Long: `A CLI tool that fetches the FBref competitions page and prints the
name and country of every competition in the club competitions table.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScrape,
	}

	defaults := config.Default()

	// Define flags
	cmd.Flags().StringVar(&flagURL, "url", defaults.URL, "Competitions page to fetch")
	cmd.Flags().StringVar(&flagSeason, "season", "", "Season to list, e.g. 1986 or 2003-2004")
	cmd.Flags().StringVar(&flagTable, "table", defaults.TableID, "id of the table to extract")
	cmd.Flags().DurationVar(&flagMinDelay, "min-delay", scraper.DefaultDelay.Min, "Minimum pause before the request")
	cmd.Flags().DurationVar(&flagMaxDelay, "max-delay", scraper.DefaultDelay.Max, "Maximum pause before the request")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.Timeout, "Request timeout")
	cmd.Flags().StringVar(&flagFormat, "format", defaults.Format, "Output format: text, json, csv or table")
	cmd.Flags().BoolVar(&flagDetectCountry, "detect-country", false, "Infer missing countries from competition names")
	cmd.Flags().BoolVar(&flagCloudflareBypass, "cloudflare-bypass", false, "Use a Cloudflare-friendly TLS transport")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Directory for competition snapshots (e.g. ~/.local/share/fbref-comps)")
	cmd.Flags().BoolVar(&flagNewOnly, "new-only", false, "Only print competitions missing from the previous snapshot")
	cmd.Flags().StringVar(&flagConfig, "config", "", "JSON5 config file (a <name>.local.<ext> sibling overrides it)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// loadConfig reads the config file and applies the flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = flagURL
	}
	if flags.Changed("season") {
		cfg.Season = &flagSeason
	}
	if flags.Changed("table") {
		cfg.TableID = flagTable
	}
	if flags.Changed("min-delay") {
		d := config.Duration(flagMinDelay)
		cfg.MinDelay = &d
	}
	if flags.Changed("max-delay") {
		d := config.Duration(flagMaxDelay)
		cfg.MaxDelay = &d
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration(flagTimeout)
	}
	if flags.Changed("format") {
		cfg.Format = flagFormat
	}
	if flags.Changed("detect-country") {
		cfg.DetectCountry = &flagDetectCountry
	}
	if flags.Changed("cloudflare-bypass") {
		cfg.CloudflareBypass = &flagCloudflareBypass
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = &flagDataDir
	}
	if flags.Changed("new-only") {
		cfg.NewOnly = &flagNewOnly
	}
	if flags.Changed("verbose") {
		cfg.Verbose = &flagVerbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if config.ToBool(cfg.Verbose) {
		logger.SetDefault(logger.New(logger.LevelDebug, cmd.ErrOrStderr()))
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	reporter, err := report.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	sc, err := scraper.New(cfg.ScraperOptions())
	if err != nil {
		return fmt.Errorf("initializing scraper: %w", err)
	}

	opts := runOptions{
		detectCountry: config.ToBool(cfg.DetectCountry),
		newOnly:       config.ToBool(cfg.NewOnly),
		tableID:       sc.TableID(),
	}
	if dataDir := config.ToString(cfg.DataDir); dataDir != "" {
		opts.store, err = storage.New(dataDir)
		if err != nil {
			return err
		}
	}

	logger.Debug("starting run", logger.Fields{
		"url":   sc.URL(),
		"table": sc.TableID(),
	})

	// machine-readable formats keep stdout parseable
	status := cmd.OutOrStdout()
	if format == report.FormatJSON || format == report.FormatCSV {
		status = cmd.ErrOrStderr()
	}

	_, err = run(cmd.Context(), sc, reporter, status, opts)
	return err
}

// runOptions holds the optional steps of a run
type runOptions struct {
	detectCountry bool

	// store enables snapshots; newOnly restricts the report to competitions
	// missing from the previous one.
	store   *storage.Storage
	newOnly bool
	tableID string
}

// run performs one scrape: fetch, gate, extract and report. The status line
// and the blocked message go to status. It returns the records reported.
func run(ctx context.Context, sc *scraper.Scraper, reporter report.Reporter, status io.Writer, opts runOptions) ([]*competition.Record, error) {
	page, err := sc.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching competitions: %w", err)
	}

	fmt.Fprintf(status, "Status Code: %d\n", page.StatusCode)

	if err := scraper.CheckStatus(page.StatusCode); err != nil {
		if errors.Is(err, scraper.ErrBlocked) {
			fmt.Fprintln(status, scraper.BlockedMessage)
		} else {
			logger.Debug("rejected response", logger.Fields{"exchange": page.Dump()})
		}
		return nil, err
	}

	records, err := sc.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("extracting competitions: %w", err)
	}

	if opts.detectCountry {
		filled := competition.FillCountries(records)
		logger.Debug("detected countries", logger.Fields{"filled": filled})
	}

	if opts.store != nil {
		records, err = compareSnapshot(opts, records)
		if err != nil {
			return nil, err
		}
	}

	if err := reporter.Report(records); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	logger.Debug("run complete", logger.Fields{
		"records": len(records),
		"metrics": logger.GetMetricsSnapshot(),
	})

	return records, nil
}

// compareSnapshot diffs the records against the stored snapshot and saves
// them as the new one. With newOnly set it returns only the new records.
func compareSnapshot(opts runOptions, records []*competition.Record) ([]*competition.Record, error) {
	previous, err := opts.store.LoadSnapshot(opts.tableID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	diff := competition.Diff(previous, records)
	logger.Info("compared with previous snapshot", logger.Fields{
		"table":        opts.tableID,
		"previous_run": previous.UpdatedAt,
		"new":          len(diff.New),
		"removed":      len(diff.Removed),
	})
	for _, r := range diff.Removed {
		logger.Info("competition no longer listed", logger.Fields{"name": r.Name, "country": r.Country})
	}
	logger.AddCounter("records.new", int64(len(diff.New)))
	logger.AddCounter("records.removed", int64(len(diff.Removed)))

	if err := opts.store.SaveRecords(records, opts.tableID); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	if opts.newOnly {
		return diff.New, nil
	}
	return records, nil
}

// ExitCode maps a run error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, scraper.ErrBlocked):
		return ExitBlocked
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	code := ExitCode(err)
	if code == ExitError {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
