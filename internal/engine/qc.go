package engine

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
)

// Метки QC-отчётов по стадиям, после которых они строятся.
var qcAfterStage = map[string]string{
	StageDemultiplex: "demux",
	StageMerge:       "merged",
}

// maybeQC строит fastp-отчёт после демультиплексирования и слияния.
//
// QC совещательный: отчёт помогает интерпретировать качество данных,
// но его отсутствие или падение fastp никогда не гейтит образец.
func (p *Pipeline) maybeQC(ctx context.Context, sample *domain.Sample, afterStage string, logger *slog.Logger) {
	if !p.enableQC {
		return
	}
	label, ok := qcAfterStage[afterStage]
	if !ok {
		return
	}
	if !invoker.HasTool(invoker.ToolFastp) {
		return
	}

	cmd := buildQC(sample, afterStage, label)
	stage := "qc_" + label

	res, err := p.inv.Invoke(ctx, sample, stage, cmd)
	if err != nil {
		logger.Warn("qc report failed", "label", label, "error", err)
		return
	}
	if res.ExitCode != 0 {
		logger.Warn("qc report failed", "label", label, "exit_code", res.ExitCode)
		return
	}
	logger.Debug("qc report generated", "report", sample.QCPath(label, "html"))
}

// buildQC собирает команду fastp в режиме "только анализ".
func buildQC(s *domain.Sample, afterStage, label string) invoker.Command {
	args := []string{}

	if afterStage == StageDemultiplex {
		args = append(args,
			"-i", s.ArtifactPath(domain.ArtifactDemuxR1),
			"-I", s.ArtifactPath(domain.ArtifactDemuxR2),
		)
	} else {
		args = append(args, "-i", s.ArtifactPath(domain.ArtifactMerged))
	}

	args = append(args,
		"-h", s.QCPath(label, "html"),
		"-j", s.QCPath(label, "json"),
		"--thread", strconv.Itoa(s.Threads),
		"--disable_adapter_trimming",
		"--disable_quality_filtering",
		"--disable_length_filtering",
	)

	return invoker.Command{Tool: invoker.ToolFastp, Args: args}
}
