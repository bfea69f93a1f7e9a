package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/telemetry"
)

// Command — внешняя команда: инструмент и аргументы.
type Command struct {
	// Tool — имя исполняемого файла (cutadapt, vsearch, fastp).
	Tool string

	// Args — аргументы командной строки.
	Args []string
}

// String возвращает команду в виде одной строки (для логов).
func (c Command) String() string {
	buf := c.Tool
	for _, a := range c.Args {
		buf += " " + a
	}
	return buf
}

// Result — результат одного вызова инструмента.
type Result struct {
	// ExitCode — код завершения процесса.
	ExitCode int

	// Stdout, Stderr — захваченные потоки вывода.
	Stdout string
	Stderr string

	// Duration — длительность вызова.
	Duration time.Duration

	// TimedOut — вызов прерван по таймауту стадии.
	TimedOut bool
}

// Invoker выполняет внешние команды для стадий пайплайна.
//
// Каждый вызов пишет лог-файл <workdir>/logs/<stage>.log с командой,
// кодом завершения и обоими потоками вывода — для последующей диагностики.
type Invoker struct {
	// StageTimeout — таймаут одного вызова. 0 — без таймаута.
	StageTimeout time.Duration

	logger *slog.Logger
}

// New создаёт Invoker.
func New(stageTimeout time.Duration, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		StageTimeout: stageTimeout,
		logger:       logger,
	}
}

// Invoke запускает команду стадии для образца.
//
// Ненулевой exit code возвращается через Result без ошибки.
// Ошибка означает инфраструктурный сбой: процесс не запустился
// даже после повторных попыток.
func (inv *Invoker) Invoke(ctx context.Context, sample *domain.Sample, stage string, cmd Command) (*Result, error) {
	logger := telemetry.WithStage(telemetry.WithSample(inv.logger, sample.ID), stage)

	// Процесс намеренно отвязан от отмены run: остановка run прекращает
	// допуск новых стадий и образцов, а уже идущий вызов дорабатывает до
	// конца, чтобы не оставлять на диске недописанные артефакты.
	// Таймаут стадии действует независимо от отмены.
	runCtx := context.WithoutCancel(ctx)
	var cancel context.CancelFunc
	if inv.StageTimeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, inv.StageTimeout)
		defer cancel()
	}

	logger.Debug("invoking tool", "command", cmd.String())

	start := time.Now()
	result, err := inv.runOnce(runCtx, cmd)
	if err != nil {
		// Запуск процесса мог сорваться по транзиентной причине
		// (fork/exec под давлением памяти). Повторяем с backoff.
		policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
		err = backoff.Retry(func() error {
			var retryErr error
			result, retryErr = inv.runOnce(runCtx, cmd)
			return retryErr
		}, policy)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStartFailed, cmd.Tool, err)
		}
	}
	result.Duration = time.Since(start)
	result.TimedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)

	telemetry.StageDuration.WithLabelValues(stage).Observe(result.Duration.Seconds())

	if logErr := inv.writeLog(sample.LogPath(stage), cmd, result); logErr != nil {
		logger.Warn("failed to write tool log", "error", logErr)
	}

	logger.Debug("tool finished",
		"exit_code", result.ExitCode,
		"duration", result.Duration,
		"timed_out", result.TimedOut,
	)

	return result, nil
}

// runOnce выполняет один запуск процесса.
func (inv *Invoker) runOnce(ctx context.Context, cmd Command) (*Result, error) {
	proc := exec.CommandContext(ctx, cmd.Tool, cmd.Args...)

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	err := proc.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Штатный ненулевой exit code, включая убийство по таймауту.
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return nil, err
}

// writeLog сохраняет вывод инструмента в лог-файл стадии.
func (inv *Invoker) writeLog(path string, cmd Command, result *Result) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# command: %s\n", cmd.String())
	fmt.Fprintf(&buf, "# exit code: %d\n", result.ExitCode)
	if result.TimedOut {
		fmt.Fprintf(&buf, "# timed out after %s\n", result.Duration)
	}
	fmt.Fprintf(&buf, "\n--- stdout ---\n%s\n--- stderr ---\n%s\n", result.Stdout, result.Stderr)

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
