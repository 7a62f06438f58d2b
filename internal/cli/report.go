package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/selbench/internal/harness"
	"github.com/roach88/selbench/internal/report"
	"github.com/roach88/selbench/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	RunID    string
	CSVDir   string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a recorded benchmark run",
		Long: `Aggregate the measurements of a recorded run and print them as a
table, or export them in the CSV layouts.

Without --run the most recently started run is reported.

Example:
  selbench report --db ./selbench.db
  selbench report --db ./selbench.db --run 0192... --csv ./results`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID (defaults to the latest run)")
	cmd.Flags().StringVar(&opts.CSVDir, "csv", "", "append the run's CSV results to files in this directory")

	return cmd
}

// reportView is the JSON output of the report command.
type reportView struct {
	Run  runView       `json:"run"`
	Rows []harness.Row `json:"rows"`
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := openExisting(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	runID := opts.RunID
	if runID == "" {
		runID, err = st.LatestRunID(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, "no runs recorded", err)
		}
	}
	formatter.VerboseLog("Reporting run %s", runID)

	run, err := st.ReadRun(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, fmt.Sprintf("failed to read run %s", runID), err)
	}
	ms, err := st.ReadMeasurements(ctx, runID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to read measurements", err)
	}

	if opts.CSVDir != "" {
		if err := appendCSVFiles(opts.CSVDir, harness.Category(run.Category), ms); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeOutput, "failed to write results", err)
		}
	}

	rows := harness.Aggregate(ms)
	if opts.Format == "json" {
		return formatter.Success(reportView{Run: newRunView(run), Rows: rows})
	}

	w := cmd.OutOrStdout()
	if err := report.WriteText(w, fmt.Sprintf("%s [%s]", run.Name, run.ID), rows); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nStatus: %s, category %s, seed %d, started %s\n",
		run.Status, run.Category, run.Seed, run.StartedAt.Format(time.RFC3339))
	return err
}

// openExisting opens a store that must already exist. store.Open would
// create an empty database instead.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("database not found: %s", path)
		}
		return nil, err
	}
	return store.Open(path)
}
