package config

import (
	"path/filepath"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// BuildSamples строит []domain.Sample из валидной конфигурации.
//
// Образцы с пустым тегом не планируются: для них сразу создаётся
// терминальный outcome SKIPPED, чтобы итоговый отчёт перечислял
// судьбу каждой строки таблицы.
//
// baseDir — абсолютная базовая директория run; рабочая директория
// каждого образца — baseDir/<sampleID>.
func (c *Config) BuildSamples(baseDir string) ([]domain.Sample, []*domain.SampleOutcome) {
	samples := make([]domain.Sample, 0, len(c.Samples))
	var skipped []*domain.SampleOutcome

	thresholds := c.Thresholds()

	for _, entry := range c.Samples {
		if entry.Tag == "" {
			skipped = append(skipped, domain.SkippedOutcome(entry.ID, "empty demultiplexing tag"))
			continue
		}

		samples = append(samples, domain.Sample{
			ID:         entry.ID,
			Tag:        entry.Tag,
			TagMode:    domain.TagMode(c.TagMode),
			Primer1:    c.Primer1,
			Primer2:    c.Primer2,
			Adapter:    c.Adapter,
			Thresholds: thresholds,
			Threads:    c.Threads,
			RawR1:      c.RawR1,
			RawR2:      c.RawR2,
			WorkDir:    filepath.Join(baseDir, entry.ID),
		})
	}

	return samples, skipped
}
