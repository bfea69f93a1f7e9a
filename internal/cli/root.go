package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/telemetry"
)

// NewRootCmd создаёт корневую команду metatrimx.
func NewRootCmd(version string, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "metatrimx",
		Short:         "MetaTrimX — metabarcoding read processing pipeline",
		Long: `MetaTrimX обрабатывает paired-end метабаркодинговые данные:
демультиплексирование по тегам, удаление праймеров, слияние пар,
фильтрация качества, дерепликация, удаление химер, кластеризация OTU
и построение таблицы OTU. Каждый образец проходит цепочку независимо,
итог каждого попадает в run_summary.json.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewRunCmd(logger),
		NewValidateCmd(logger),
		NewScheduleCmd(logger),
		NewHistoryCmd(),
	)

	return rootCmd
}

// serveMetrics поднимает HTTP-сервер /metrics и /healthz на addr
// и гасит его при отмене ctx. Ошибки сервера не влияют на run.
func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) {
	srv := &http.Server{
		Addr:    addr,
		Handler: telemetry.NewMetricsMux(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
}
