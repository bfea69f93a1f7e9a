package config

import (
	"fmt"
	"runtime"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// Validate выполняет полную валидацию конфигурации.
//
// Проверяет:
//   - Наличие исходных файлов и базовой директории
//   - Праймеры (первая пара обязательна, вторая — целиком или никак)
//   - Диапазоны числовых порогов
//   - Таблицу образцов: уникальность ID и тегов
//
// Ошибки конфигурации фатальны и обнаруживаются до планирования;
// ни один образец до этого момента не запускается.
func (c *Config) Validate() error {
	if c.RawR1 == "" {
		return NewValidationError("", "raw_r1", "forward read pool is required", ErrMissingInput)
	}
	if c.RawR2 == "" {
		return NewValidationError("", "raw_r2", "reverse read pool is required", ErrMissingInput)
	}
	if c.OutputDir == "" {
		return NewValidationError("", "output_dir", "output directory is required", ErrMissingInput)
	}

	if c.Primer1.Forward == "" || c.Primer1.Reverse == "" {
		return NewValidationError("", "primer_set_1",
			"both forward and reverse primers are required", ErrMissingPrimer)
	}
	if c.Primer2 != nil && (c.Primer2.Forward == "" || c.Primer2.Reverse == "") {
		return NewValidationError("", "primer_set_2",
			"second primer set must define both forward and reverse", ErrPartialPrimer2)
	}

	if !domain.TagMode(c.TagMode).IsValid() {
		return NewValidationError("", "tag_mode",
			fmt.Sprintf("unknown tag mode: %s", c.TagMode), ErrBadTagMode)
	}

	if err := c.validateThresholds(); err != nil {
		return err
	}

	return c.validateSampleTable()
}

// validateThresholds проверяет диапазоны числовых порогов.
func (c *Config) validateThresholds() error {
	checks := []struct {
		field string
		ok    bool
		msg   string
	}{
		{"workers", c.Workers >= 1, "must be >= 1"},
		{"threads", c.Threads >= 1, "must be >= 1"},
		{"quality_cutoff", c.QualityCutoff >= 0, "must be >= 0"},
		{"min_length", c.MinLength > 0, "must be > 0"},
		{"min_overlap", c.MinOverlap > 0, "must be > 0"},
		{"max_merge_diffs", c.MaxMergeDiffs >= 0, "must be >= 0"},
		{"max_expected_errors", c.MaxExpectedErrors > 0, "must be > 0"},
		{"min_final_length", c.MinFinalLength > 0, "must be > 0"},
		{"cluster_identity", c.ClusterIdentity > 0 && c.ClusterIdentity <= 1, "must be in (0, 1]"},
		{"min_cluster_size", c.MinClusterSize == 1 || c.MinClusterSize == 2, "must be 1 or 2"},
		{"demux_error_rate", c.DemuxErrorRate >= 0 && c.DemuxErrorRate < 1, "must be in [0, 1)"},
		{"trim_error_rate", c.TrimErrorRate >= 0 && c.TrimErrorRate < 1, "must be in [0, 1)"},
		{"stage_timeout_sec", c.StageTimeoutSec >= 0, "must be >= 0"},
	}

	for _, check := range checks {
		if !check.ok {
			return NewValidationError("", check.field, check.msg, ErrBadThreshold)
		}
	}
	return nil
}

// validateSampleTable проверяет таблицу образцов.
//
// Дубликат тега — фатальная ошибка: два образца с одним тегом получили бы
// одинаковые подмножества ридов. Пустой тег ошибкой таблицы не считается:
// такой образец исключается при построении (см. BuildSamples).
func (c *Config) validateSampleTable() error {
	if len(c.Samples) == 0 {
		return NewValidationError("", "samples", "at least one sample is required", ErrNoSamples)
	}

	seenIDs := make(map[string]bool, len(c.Samples))
	seenTags := make(map[string]string, len(c.Samples))

	for _, entry := range c.Samples {
		if entry.ID == "" {
			return NewValidationError("", "samples", "sample with empty ID", ErrDuplicateSampleID)
		}
		if seenIDs[entry.ID] {
			return NewValidationError(entry.ID, "id",
				fmt.Sprintf("duplicate sample ID: %s", entry.ID), ErrDuplicateSampleID)
		}
		seenIDs[entry.ID] = true

		if entry.Tag == "" {
			continue
		}
		if other, ok := seenTags[entry.Tag]; ok {
			return NewValidationError(entry.ID, "tag",
				fmt.Sprintf("tag %s already assigned to sample %s", entry.Tag, other), ErrDuplicateTag)
		}
		seenTags[entry.Tag] = entry.ID
	}

	return nil
}

// OversubscribedCPU возвращает true, если workers × threads превышает
// число доступных ядер. Это предупреждение, а не ошибка: инструменты
// деградируют по скорости, но работают корректно.
func (c *Config) OversubscribedCPU() bool {
	return c.Workers*c.Threads > runtime.NumCPU()
}
