package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// SummaryFileName — имя файла сводки в базовой директории run.
const SummaryFileName = "run_summary.json"

// SampleReport — итог одного образца в сводке.
type SampleReport struct {
	SampleID     string            `json:"sample_id"`
	Status       string            `json:"status"`
	FailedStage  string            `json:"failed_stage,omitempty"`
	FailureCause string            `json:"failure_cause,omitempty"`
	SkipReason   string            `json:"skip_reason,omitempty"`
	DurationSec  float64           `json:"duration_sec,omitempty"`
	Artifacts    map[string]string `json:"artifacts,omitempty"`
}

// Report — итоговая сводка run.
type Report struct {
	RunID       string         `json:"run_id"`
	BaseDir     string         `json:"base_dir"`
	GeneratedAt time.Time      `json:"generated_at"`
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Skipped     int            `json:"skipped"`
	Samples     []SampleReport `json:"samples"`
}

// Finalize собирает Report из outcome'ов всех образцов.
//
// Карта артефактов публикуется только для успешных образцов:
// артефакты упавших стадий остаются на диске, но достоверными
// не считаются.
func Finalize(run *domain.Run, outcomes map[string]*domain.SampleOutcome) *Report {
	rep := &Report{
		RunID:       run.ID.String(),
		BaseDir:     run.BaseDir,
		GeneratedAt: time.Now(),
		Total:       len(outcomes),
	}

	ids := make([]string, 0, len(outcomes))
	for id := range outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		outcome := outcomes[id]

		sr := SampleReport{
			SampleID:     outcome.SampleID,
			Status:       string(outcome.Status),
			FailedStage:  outcome.FailedStage,
			FailureCause: outcome.FailureCause,
			SkipReason:   outcome.SkipReason,
			DurationSec:  outcome.Duration().Seconds(),
		}

		switch outcome.Status {
		case domain.SampleStatusSucceeded:
			rep.Succeeded++
			sr.Artifacts = make(map[string]string, len(outcome.Artifacts))
			for role, path := range outcome.Artifacts {
				sr.Artifacts[string(role)] = path
			}
		case domain.SampleStatusFailed:
			rep.Failed++
		case domain.SampleStatusSkipped:
			rep.Skipped++
		}

		rep.Samples = append(rep.Samples, sr)
	}

	return rep
}

// ExitCode возвращает код завершения процесса по контракту:
// 0 — каждый образец успешен; 1 — хотя бы один упал или пропущен.
func (r *Report) ExitCode() int {
	if r.Failed > 0 || r.Skipped > 0 {
		return 1
	}
	return 0
}

// WriteJSON записывает сводку в базовую директорию run.
func (r *Report) WriteJSON() (string, error) {
	path := filepath.Join(r.BaseDir, SummaryFileName)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// WriteTable печатает человекочитаемую таблицу итогов.
func (r *Report) WriteTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "SAMPLE\tSTATUS\tFAILED STAGE\tDETAIL\n")
	for _, s := range r.Samples {
		detail := s.FailureCause
		if s.SkipReason != "" {
			detail = s.SkipReason
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.SampleID, s.Status, s.FailedStage, detail)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d samples: %d succeeded, %d failed, %d skipped\n",
		r.Total, r.Succeeded, r.Failed, r.Skipped)
}
