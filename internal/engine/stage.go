package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
)

// Имена стадий. Фигурируют в логах, отчётах и FailedStage.
const (
	StageDemultiplex = "demultiplex"
	StageTrim        = "trim"
	StageMerge       = "merge"
	StageFilter      = "filter"
	StageDereplicate = "dereplicate"
	StageChimera     = "chimera"
	StageCluster     = "cluster"
	StageOTUTable    = "otutab"
)

// StageSpec — неизменяемое описание одной стадии пайплайна.
//
// Описания стадий определяются один раз на цепочку, не на образец:
// Build материализует команду из шаблона стадии и значений образца,
// OK — предикат успеха по результату вызова и артефактам на диске.
type StageSpec struct {
	// Name — стабильный идентификатор стадии.
	Name string

	// Inputs — роли артефактов, потребляемых стадией.
	// Пусто для первой стадии (она читает исходные файлы run).
	Inputs []domain.ArtifactRole

	// Outputs — роли артефактов, производимых стадией.
	Outputs []domain.ArtifactRole

	// Build собирает команду внешнего инструмента для образца.
	Build func(s *domain.Sample) invoker.Command

	// OK — предикат успеха. Проверяет код завершения и содержимое
	// выходных артефактов; код 0 сам по себе успехом не считается.
	OK func(s *domain.Sample, res *invoker.Result) error
}

// buildDemultiplex собирает команду демультиплексирования (cutadapt).
//
// Режимы поиска тега:
//   - strict:    ^TAG — тег строго в начале рида
//   - universal: ^TAG, ^NTAG ... ^NNNNNTAG — сдвиг 0–5 bp
//   - rescue:    TAG — тег в любой позиции
func buildDemultiplex(s *domain.Sample) invoker.Command {
	args := []string{
		"-j", strconv.Itoa(s.Threads),
		"--error-rate", formatFloat(s.Thresholds.DemuxErrorRate),
		"--action=trim",
		"--discard-untrimmed",
	}

	switch s.TagMode {
	case domain.TagModeUniversal:
		for shift := 0; shift <= 5; shift++ {
			pattern := "^" + strings.Repeat("N", shift) + s.Tag
			args = append(args, "-g", pattern, "-G", pattern)
		}
	case domain.TagModeRescue:
		args = append(args, "-g", s.Tag, "-G", s.Tag)
	default: // strict
		args = append(args, "-g", "^"+s.Tag, "-G", "^"+s.Tag)
	}

	args = append(args,
		"-o", s.ArtifactPath(domain.ArtifactDemuxR1),
		"-p", s.ArtifactPath(domain.ArtifactDemuxR2),
		s.RawR1, s.RawR2,
	)

	return invoker.Command{Tool: invoker.ToolCutadapt, Args: args}
}

// buildTrim собирает команду тримминга праймеров и адаптеров (cutadapt).
//
// Праймеры передаются связанными адаптерами FWD...REV; при
// AnchorPrimers добавляется префикс ^. Вторая пара попадает в команду
// только если она сконфигурирована — пустые флаги не передаются.
func buildTrim(s *domain.Sample) invoker.Command {
	args := []string{
		"-j", strconv.Itoa(s.Threads),
		"-e", formatFloat(s.Thresholds.TrimErrorRate),
		"-q", strconv.Itoa(s.Thresholds.QualityCutoff),
		"--minimum-length", strconv.Itoa(s.Thresholds.MinLength),
		"-a", s.Adapter.Forward,
		"-A", s.Adapter.Reverse,
	}

	anchor := ""
	if s.Thresholds.AnchorPrimers {
		anchor = "^"
	}

	args = append(args, "-a", fmt.Sprintf("%s%s...%s", anchor, s.Primer1.Forward, s.Primer1.Reverse))
	if s.Primer2 != nil {
		args = append(args, "-a", fmt.Sprintf("%s%s...%s", anchor, s.Primer2.Forward, s.Primer2.Reverse))
	}

	if s.Thresholds.DiscardUntrimmed {
		args = append(args, "--discard-untrimmed")
	}

	args = append(args,
		"-o", s.ArtifactPath(domain.ArtifactTrimmedR1),
		"-p", s.ArtifactPath(domain.ArtifactTrimmedR2),
		s.ArtifactPath(domain.ArtifactDemuxR1),
		s.ArtifactPath(domain.ArtifactDemuxR2),
	)

	return invoker.Command{Tool: invoker.ToolCutadapt, Args: args}
}

// buildMerge собирает команду слияния пар (vsearch).
func buildMerge(s *domain.Sample) invoker.Command {
	return invoker.Command{Tool: invoker.ToolVsearch, Args: []string{
		"--fastq_mergepairs", s.ArtifactPath(domain.ArtifactTrimmedR1),
		"--reverse", s.ArtifactPath(domain.ArtifactTrimmedR2),
		"--fastqout", s.ArtifactPath(domain.ArtifactMerged),
		"--fastq_minovlen", strconv.Itoa(s.Thresholds.MinOverlap),
		"--fastq_maxdiffs", strconv.Itoa(s.Thresholds.MaxMergeDiffs),
		"--threads", strconv.Itoa(s.Threads),
	}}
}

// buildFilter собирает команду фильтра качества (vsearch).
// Последовательности перемечаются префиксом образца, чтобы происхождение
// каждой читалось из заголовка FASTA.
func buildFilter(s *domain.Sample) invoker.Command {
	return invoker.Command{Tool: invoker.ToolVsearch, Args: []string{
		"--fastq_filter", s.ArtifactPath(domain.ArtifactMerged),
		"--fastq_maxee", formatFloat(s.Thresholds.MaxExpectedErrors),
		"--fastq_minlen", strconv.Itoa(s.Thresholds.MinFinalLength),
		"--fastaout", s.ArtifactPath(domain.ArtifactFiltered),
		"--relabel", s.ID + "_",
		"--threads", strconv.Itoa(s.Threads),
	}}
}

// buildDereplicate собирает команду дерепликации (vsearch).
func buildDereplicate(s *domain.Sample) invoker.Command {
	return invoker.Command{Tool: invoker.ToolVsearch, Args: []string{
		"--derep_fulllength", s.ArtifactPath(domain.ArtifactFiltered),
		"--output", s.ArtifactPath(domain.ArtifactDerep),
		"--sizeout",
		"--minuniquesize", strconv.Itoa(s.Thresholds.MinClusterSize),
		"--threads", strconv.Itoa(s.Threads),
	}}
}

// buildChimera собирает команду удаления химер (vsearch UCHIME de novo).
func buildChimera(s *domain.Sample) invoker.Command {
	return invoker.Command{Tool: invoker.ToolVsearch, Args: []string{
		"--uchime_denovo", s.ArtifactPath(domain.ArtifactDerep),
		"--nonchimeras", s.ArtifactPath(domain.ArtifactNonchimeras),
		"--threads", strconv.Itoa(s.Threads),
	}}
}

// buildCluster собирает команду кластеризации (vsearch).
func buildCluster(s *domain.Sample) invoker.Command {
	return invoker.Command{Tool: invoker.ToolVsearch, Args: []string{
		"--cluster_fast", s.ArtifactPath(domain.ArtifactNonchimeras),
		"--id", formatFloat(s.Thresholds.ClusterIdentity),
		"--centroids", s.ArtifactPath(domain.ArtifactOTUs),
		"--relabel", "OTU_",
		"--threads", strconv.Itoa(s.Threads),
	}}
}

// buildOTUTable собирает команду построения таблицы принадлежности:
// отфильтрованные риды образца картируются на репрезентативные
// последовательности кластеров.
func buildOTUTable(s *domain.Sample) invoker.Command {
	return invoker.Command{Tool: invoker.ToolVsearch, Args: []string{
		"--usearch_global", s.ArtifactPath(domain.ArtifactFiltered),
		"--db", s.ArtifactPath(domain.ArtifactOTUs),
		"--id", formatFloat(s.Thresholds.ClusterIdentity),
		"--otutabout", s.ArtifactPath(domain.ArtifactOTUTable),
		"--threads", strconv.Itoa(s.Threads),
	}}
}

// formatFloat форматирует порог без хвостовых нулей (0.97, не 0.970000).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
