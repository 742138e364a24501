package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/ccao-calendar/internal/logger"
	"github.com/pfrederiksen/ccao-calendar/internal/record"
	"github.com/pfrederiksen/ccao-calendar/internal/scraper"
	"github.com/pfrederiksen/ccao-calendar/internal/spreadsheet"
	"github.com/pfrederiksen/ccao-calendar/internal/triennial"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Options holds the root command's flag values
type Options struct {
	URL     string
	TriCSV  string
	OutDir  string
	Format  string
	Timeout time.Duration
	Verbose bool
}

// now is the collection clock; tests replace it
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "ccao-calendar",
		Short: "Collect the Cook County Assessor's assessment calendar",
		Long: `Collects key dates from the Cook County Assessor's assessment calendar,
normalizes them per township and saves them as an .xlsx workbook.

Place a "tri schedule.csv" file in the working directory (or pass --tri-csv)
to include triennial reassessment information.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", scraper.CalendarURL, "Assessment calendar page URL")
	cmd.Flags().StringVar(&opts.TriCSV, "tri-csv", triennial.DefaultFileName, "Triennial schedule CSV (skipped if missing)")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", ".", "Directory for the .xlsx output")
	cmd.Flags().StringVar(&opts.Format, "format", string(FormatXLSX), "Output format: xlsx, json or text")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", scraper.Timeout, "HTTP timeout for fetching the calendar")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// Run collects the calendar once and writes it in the requested format.
func Run(ctx context.Context, opts *Options, stdout, stderr io.Writer) error {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(opts.Format)))
	if !format.valid() {
		return fmt.Errorf("invalid format: %s (must be 'xlsx', 'json' or 'text')", opts.Format)
	}

	level := logger.LevelInfo
	if opts.Verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, stderr))
	logger.ResetMetrics()

	if ctx == nil {
		ctx = context.Background()
	}

	collectedAt := now()

	sc := scraper.New(opts.URL, opts.Timeout)
	logger.Info("Collecting calendar entries", logger.Fields{"url": sc.URL()})

	raws, err := sc.FetchEntities(ctx)
	if err != nil {
		return fmt.Errorf("fetching calendar: %w", err)
	}
	logger.Debug("Fetched calendar rows", logger.Fields{"rows": len(raws)})

	ref, err := triennial.Load(opts.TriCSV, collectedAt.Year())
	if err != nil {
		return fmt.Errorf("loading triennial schedule: %w", err)
	}
	if ref == nil {
		logger.Debug("No triennial schedule found", logger.Fields{"path": opts.TriCSV})
	} else {
		logger.Debug("Loaded triennial schedule", logger.Fields{"path": opts.TriCSV, "townships": ref.Len()})
	}

	result := record.Assemble(raws, record.Options{Now: collectedAt, Reference: ref})

	switch format {
	case FormatXLSX:
		path := filepath.Join(opts.OutDir, spreadsheet.FileName(collectedAt))
		if err := spreadsheet.Write(path, result); err != nil {
			return fmt.Errorf("writing spreadsheet: %w", err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		fmt.Fprintf(stdout, "Saved: %s\n", abs)
	default:
		if err := WriteOutput(stdout, NewOutputResult(result, collectedAt), format); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	logger.Info("Collection complete", logger.Fields{
		"records": len(result.Records),
		"skipped": result.Skipped,
		"dropped": result.Dropped,
	})
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logger.Error("Collection failed", nil, err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
