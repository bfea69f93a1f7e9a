package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/scheduler"
)

// NewScheduleCmd создаёт команду schedule.
//
// Выполняет прогон по cron-расписанию: типовой сценарий — ночная
// обработка данных, досыпанных секвенатором за день. Конфигурация
// перечитывается перед каждым прогоном, поэтому таблицу образцов
// можно пополнять между запусками.
func NewScheduleCmd(logger *slog.Logger) *cobra.Command {
	opts := &runOptions{}
	var cronExpr string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline repeatedly on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scheduler.ValidateCronExpr(cronExpr); err != nil {
				return err
			}

			ctx := cmd.Context()
			if opts.metricsAddr != "" {
				serveMetrics(ctx, opts.metricsAddr, logger)
			}

			err := scheduler.RunOnSchedule(ctx, cronExpr, logger, func(ctx context.Context) error {
				rep, err := executeRun(ctx, logger, cmd, opts)
				if err != nil {
					return err
				}
				if code := rep.ExitCode(); code != 0 {
					return fmt.Errorf("%d of %d samples did not succeed",
						rep.Failed+rep.Skipped, rep.Total)
				}
				return nil
			})

			// Остановка по сигналу — штатное завершение расписания.
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	addRunFlags(cmd, opts)
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression (5 fields, e.g. \"0 2 * * *\")")
	cmd.MarkFlagRequired("cron")

	return cmd
}
