package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/telemetry"
)

// ToolInvoker выполняет одну внешнюю команду для стадии образца.
//
// Реализация: invoker.Invoker. В тестах подменяется фейком,
// записывающим вызовы.
type ToolInvoker interface {
	Invoke(ctx context.Context, sample *domain.Sample, stage string, cmd invoker.Command) (*invoker.Result, error)
}

// Pipeline прогоняет цепочку стадий одного образца.
//
// Контракт: Run получает полностью разрешённый Sample (неполная
// конфигурация отсеивается валидацией до планирования) и всегда
// возвращает терминальный outcome — падение стадии фиксируется,
// но никогда не прерывает процесс.
type Pipeline struct {
	inv      ToolInvoker
	chain    []StageSpec
	enableQC bool
	logger   *slog.Logger
}

// PipelineConfig — конфигурация Pipeline.
type PipelineConfig struct {
	// Invoker — исполнитель внешних команд.
	Invoker ToolInvoker

	// Chain — цепочка стадий (опционально; по умолчанию Chain()).
	Chain []StageSpec

	// EnableQC — строить совещательные fastp-отчёты.
	EnableQC bool

	// Logger
	Logger *slog.Logger
}

// NewPipeline создаёт Pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	chain := cfg.Chain
	if chain == nil {
		chain = Chain()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		inv:      cfg.Invoker,
		chain:    chain,
		enableQC: cfg.EnableQC,
		logger:   logger,
	}
}

// Run выполняет цепочку стадий образца до конца или до первого падения.
//
// На падении стадии оставшиеся стадии не запускаются; частичные
// артефакты упавшей стадии остаются на диске для отладки, но в outcome
// не публикуются. Отмена run фиксируется после завершения текущей
// стадии — образец никогда не остаётся без записанного статуса.
func (p *Pipeline) Run(ctx context.Context, sample *domain.Sample) *domain.SampleOutcome {
	logger := telemetry.WithSample(p.logger, sample.ID)
	outcome := domain.NewSampleOutcome(sample.ID)
	outcome.MarkRunning()

	logger.Info("sample started", "tag", sample.Tag, "workdir", sample.WorkDir)

	if err := p.prepareWorkDir(sample); err != nil {
		// Инфраструктурное падение до первой стадии: трактуется как
		// падение стадии, а не crash всего run.
		logger.Error("failed to prepare working directory", "error", err)
		outcome.MarkFailed(p.chain[0].Name, fmt.Sprintf("prepare working directory: %v", err))
		telemetry.StageFailures.WithLabelValues(p.chain[0].Name).Inc()
		return outcome
	}

	for _, stage := range p.chain {
		if err := ctx.Err(); err != nil {
			outcome.MarkFailed(stage.Name, fmt.Sprintf("run cancelled before stage: %v", err))
			logger.Warn("sample cancelled", "stage", stage.Name)
			return outcome
		}

		if err := p.runStage(ctx, sample, stage, logger); err != nil {
			outcome.MarkFailed(stage.Name, err.Error())
			telemetry.StageFailures.WithLabelValues(stage.Name).Inc()
			logger.Warn("sample failed",
				"stage", stage.Name,
				"cause", err.Error(),
			)
			return outcome
		}

		for _, role := range stage.Outputs {
			outcome.RecordArtifact(role, sample.ArtifactPath(role))
		}

		p.maybeQC(ctx, sample, stage.Name, logger)
	}

	outcome.MarkSucceeded()
	logger.Info("sample succeeded", "duration", outcome.Duration())
	return outcome
}

// runStage выполняет одну стадию и применяет её предикат успеха.
func (p *Pipeline) runStage(ctx context.Context, sample *domain.Sample, stage StageSpec, logger *slog.Logger) error {
	stageLogger := telemetry.WithStage(logger, stage.Name)
	stageLogger.Info("stage started")

	res, err := p.inv.Invoke(ctx, sample, stage.Name, stage.Build(sample))
	if err != nil {
		return fmt.Errorf("invoke: %v", err)
	}

	if res.TimedOut {
		return fmt.Errorf("timed out after %s", res.Duration)
	}

	if err := stage.OK(sample, res); err != nil {
		return err
	}

	stageLogger.Info("stage finished", "duration", res.Duration)
	return nil
}

// prepareWorkDir создаёт рабочую директорию образца и её поддиректории.
// Существующие директории не очищаются: удаление артефактов — внешняя забота.
func (p *Pipeline) prepareWorkDir(sample *domain.Sample) error {
	for _, dir := range domain.SampleDirs() {
		if err := os.MkdirAll(filepath.Join(sample.WorkDir, dir), 0o755); err != nil {
			return err
		}
	}
	return nil
}
