package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/repo"
)

// NewHistoryCmd создаёт команду history.
//
// Показывает прошлый run из БД результатов: статус, длительность
// и итог каждого образца. Работает только при настроенной БД —
// той же, в которую run пишет через --db-url.
func NewHistoryCmd() *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:   "history RUN_ID",
		Short: "Show a past run and its sample outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse run id %q: %w", args[0], err)
			}
			if dbURL == "" {
				return fmt.Errorf("results db is not configured (--db-url or DB_URL)")
			}

			ctx := cmd.Context()
			pool, err := repo.NewPool(ctx, dbURL)
			if err != nil {
				return fmt.Errorf("connect results db: %w", err)
			}
			defer pool.Close()

			run, err := repo.NewRunRepo(pool).Get(ctx, runID.String())
			if err != nil {
				return err
			}
			outcomes, err := repo.NewOutcomeRepo(pool).ListByRun(ctx, runID)
			if err != nil {
				return err
			}

			writeRunHistory(cmd.OutOrStdout(), run, outcomes)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbURL, "db-url", os.Getenv("DB_URL"), "PostgreSQL URL for run history")
	return cmd
}

// writeRunHistory печатает run и итоги его образцов.
func writeRunHistory(w io.Writer, run *domain.Run, outcomes []*domain.SampleOutcome) {
	fmt.Fprintf(w, "run %s\n", run.ID)
	fmt.Fprintf(w, "base dir: %s\n", run.BaseDir)
	fmt.Fprintf(w, "status: %s\n", run.Status)
	fmt.Fprintf(w, "started: %s\n", run.StartedAt.Format(time.RFC3339))
	if run.FinishedAt != nil {
		fmt.Fprintf(w, "finished: %s (%s)\n", run.FinishedAt.Format(time.RFC3339), run.Duration())
	}
	if run.Error != "" {
		fmt.Fprintf(w, "error: %s\n", run.Error)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\nSAMPLE\tSTATUS\tFAILED STAGE\tDETAIL\n")
	for _, o := range outcomes {
		detail := o.FailureCause
		if o.SkipReason != "" {
			detail = o.SkipReason
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.SampleID, o.Status, o.FailedStage, detail)
	}
	tw.Flush()
}
