package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/config"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/engine"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/mq"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/repo"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/report"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/scheduler"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/telemetry"
)

// runOptions — флаги команд run и schedule.
type runOptions struct {
	configPath  string
	workers     int
	qc          bool
	metricsAddr string
	dbURL       string
	mqURL       string
}

// addRunFlags регистрирует общие флаги прогона.
func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to run configuration (JSON)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Override concurrent sample ceiling")
	cmd.Flags().BoolVar(&opts.qc, "qc", false, "Build advisory fastp QC reports")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().StringVar(&opts.dbURL, "db-url", os.Getenv("DB_URL"), "PostgreSQL URL for run history (optional)")
	cmd.Flags().StringVar(&opts.mqURL, "mq-url", os.Getenv("RABBITMQ_URL"), "RabbitMQ URL for progress events (optional)")
	cmd.MarkFlagRequired("config")
}

// NewRunCmd создаёт команду run.
func NewRunCmd(logger *slog.Logger) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process all samples through the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if opts.metricsAddr != "" {
				serveMetrics(ctx, opts.metricsAddr, logger)
			}

			rep, err := executeRun(ctx, logger, cmd, opts)
			if err != nil {
				return err
			}
			if code := rep.ExitCode(); code != 0 {
				return fmt.Errorf("%d of %d samples did not succeed",
					rep.Failed+rep.Skipped, rep.Total)
			}
			return nil
		},
	}

	addRunFlags(cmd, opts)
	return cmd
}

// loadConfig загружает и валидирует конфигурацию, применяя переопределения флагов.
func loadConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if cmd.Flags().Changed("qc") {
		cfg.EnableQC = opts.qc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveBaseDir приводит output_dir к абсолютной базовой директории run.
// Единая точка для run и validate: обе команды видят одни и те же пути.
func resolveBaseDir(cfg *config.Config) (string, error) {
	baseDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	return baseDir, nil
}

// sinks — необязательные приёмники результатов: БД истории и брокер событий.
type sinks struct {
	pool      interface{ Close() }
	runs      *repo.RunRepo
	outcomes  *repo.OutcomeRepo
	mqConn    *mq.Connection
	publisher *mq.Publisher
}

// openSinks подключает БД и брокер, если они настроены.
//
// Недоступная БД — ошибка: её подключение явно запрошено ради истории
// прогонов. Недоступный брокер — предупреждение: события совещательные.
func openSinks(ctx context.Context, opts *runOptions, logger *slog.Logger) (*sinks, error) {
	s := &sinks{}

	if opts.dbURL != "" {
		pool, err := repo.NewPool(ctx, opts.dbURL)
		if err != nil {
			return nil, fmt.Errorf("connect results db: %w", err)
		}
		if err := repo.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		s.pool = pool
		s.runs = repo.NewRunRepo(pool)
		s.outcomes = repo.NewOutcomeRepo(pool)
	}

	if opts.mqURL != "" {
		conn, err := mq.NewConnection(opts.mqURL, logger)
		if err != nil {
			logger.Warn("event broker unavailable, progress events disabled", "error", err)
		} else if err := mq.SetupTopology(conn); err != nil {
			logger.Warn("event topology setup failed, progress events disabled", "error", err)
			conn.Close()
		} else {
			s.mqConn = conn
			s.publisher = mq.NewPublisher(conn, logger)
		}
	}

	return s, nil
}

// Close освобождает подключения приёмников.
func (s *sinks) Close() {
	if s.mqConn != nil {
		s.mqConn.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// executeRun — общий путь команд run и schedule: от конфигурации
// до записанного run_summary.json.
func executeRun(ctx context.Context, logger *slog.Logger, cmd *cobra.Command, opts *runOptions) (*report.Report, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	if err := invoker.CheckTools(invoker.RequiredTools()...); err != nil {
		return nil, err
	}
	if cfg.EnableQC && !invoker.HasTool(invoker.ToolFastp) {
		logger.Warn("fastp not found on PATH, QC reports disabled")
		cfg.EnableQC = false
	}
	if cfg.OversubscribedCPU() {
		logger.Warn("workers*threads exceeds available CPU cores",
			"workers", cfg.Workers,
			"threads", cfg.Threads,
		)
	}

	baseDir, err := resolveBaseDir(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	samples, skipped := cfg.BuildSamples(baseDir)
	run := domain.NewRun(baseDir, len(samples))
	runLogger := telemetry.WithRunID(logger, run.ID.String())

	runLogger.Info("run started",
		"base_dir", baseDir,
		"samples", len(samples),
		"skipped", len(skipped),
		"workers", cfg.Workers,
	)

	s, err := openSinks(ctx, opts, runLogger)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if s.runs != nil {
		if err := s.runs.Create(ctx, run); err != nil {
			runLogger.Warn("failed to record run in db", "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishRunStarted(ctx, run); err != nil {
			runLogger.Warn("failed to publish run.started", "error", err)
		}
	}

	pipeline := engine.NewPipeline(engine.PipelineConfig{
		Invoker:  invoker.New(time.Duration(cfg.StageTimeoutSec)*time.Second, runLogger),
		EnableQC: cfg.EnableQC,
		Logger:   runLogger,
	})

	sched, err := scheduler.New(scheduler.Config{
		Runner:  pipeline,
		Workers: cfg.Workers,
		Logger:  runLogger,
		OnOutcome: func(outcome *domain.SampleOutcome) {
			recordOutcome(ctx, s, run, outcome, runLogger)
		},
	})
	if err != nil {
		return nil, err
	}

	outcomes := sched.RunAll(ctx, samples)

	// Исключённые до планирования образцы попадают в отчёт и приёмники
	// наравне с обработанными.
	for _, o := range skipped {
		outcomes[o.SampleID] = o
		recordOutcome(ctx, s, run, o, runLogger)
	}

	rep := report.Finalize(run, outcomes)
	if rep.Failed > 0 || rep.Skipped > 0 {
		run.MarkFailed(fmt.Sprintf("%d of %d samples did not succeed",
			rep.Failed+rep.Skipped, rep.Total))
	} else {
		run.MarkSucceeded()
	}
	summaryPath, err := rep.WriteJSON()
	if err != nil {
		return nil, err
	}
	rep.WriteTable(os.Stdout)

	if s.runs != nil {
		if err := s.runs.Finish(ctx, run); err != nil {
			runLogger.Warn("failed to finish run in db", "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishRunFinished(ctx, run, rep.Succeeded, rep.Failed, rep.Skipped); err != nil {
			runLogger.Warn("failed to publish run.finished", "error", err)
		}
	}

	runLogger.Info("run finished",
		"status", run.Status,
		"succeeded", rep.Succeeded,
		"failed", rep.Failed,
		"skipped", rep.Skipped,
		"summary", summaryPath,
		"duration", run.Duration(),
	)

	return rep, nil
}

// recordOutcome отправляет терминальный outcome в настроенные приёмники.
// Сбои приёмников не влияют на run.
func recordOutcome(ctx context.Context, s *sinks, run *domain.Run, outcome *domain.SampleOutcome, logger *slog.Logger) {
	if s.outcomes != nil {
		if err := s.outcomes.Record(ctx, run.ID, outcome); err != nil {
			logger.Warn("failed to record sample outcome in db",
				"sample", outcome.SampleID,
				"error", err,
			)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSampleCompleted(ctx, run.ID, outcome); err != nil {
			logger.Warn("failed to publish sample.completed",
				"sample", outcome.SampleID,
				"error", err,
			)
		}
	}
}
