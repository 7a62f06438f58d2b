package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/selbench/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded benchmark runs",
		Long: `List the runs recorded in a database, newest first.

Example:
  selbench runs --db ./selbench.db
  selbench runs --db ./selbench.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// runView is the JSON form of a recorded run.
type runView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Seed       uint64          `json:"seed"`
	Rank       int             `json:"rank"`
	Status     store.RunStatus `json:"status"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

func newRunView(r store.Run) runView {
	return runView{
		ID:         r.ID,
		Name:       r.Name,
		Category:   r.Category,
		Seed:       r.Seed,
		Rank:       r.Rank,
		Status:     r.Status,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.formatter(cmd)

	st, err := openExisting(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to list runs", err)
	}

	if opts.Format == "json" {
		views := make([]runView, len(runs))
		for i, r := range runs {
			views[i] = newRunView(r)
		}
		return formatter.Success(views)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-20s  %-9s  %-9s  %s\n", "ID", "NAME", "CATEGORY", "STATUS", "STARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-9s  %-9s  %s\n",
			r.ID, r.Name, r.Category, r.Status, r.StartedAt.Format(time.RFC3339))
	}
	return nil
}
