// MetaTrimX — пайплайн обработки paired-end метабаркодинговых данных.
//
// Использование:
//
//	metatrimx run --config run.json [--workers N] [--qc] [--metrics-addr :9090]
//	metatrimx validate --config run.json
//	metatrimx schedule --config run.json --cron "0 2 * * *"
//
// Необязательные приёмники: --db-url (история прогонов в PostgreSQL),
// --mq-url (события прогресса в RabbitMQ).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/cli"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	logger := telemetry.SetupLogger()

	// Первый сигнал запускает graceful shutdown: выполняющиеся образцы
	// дорабатывают текущую стадию, недопущенные получают SKIPPED,
	// отчёт записывается. Второй сигнал убивает процесс.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(version, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
