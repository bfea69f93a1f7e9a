package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// Значения по умолчанию. Пороги качества и длины — только дефолты флагов,
// в конкретном запуске оба задаются конфигурацией.
const (
	DefaultQualityCutoff  = 25
	DefaultMinLength      = 100
	DefaultWorkers        = 4
	DefaultThreads        = 2
	DefaultDemuxErrorRate = 0.0
	DefaultTrimErrorRate  = 0.1
)

// SampleEntry — строка таблицы образцов: идентификатор → тег.
type SampleEntry struct {
	// ID — идентификатор образца, уникален в пределах run.
	ID string `json:"id"`

	// Tag — баркод демультиплексирования. Пустой тег исключает
	// образец до планирования (outcome SKIPPED).
	Tag string `json:"tag"`
}

// Config — конфигурация одного запуска пайплайна.
//
// Загружается из JSON-файла один раз, валидируется до планирования
// и дальше не изменяется.
type Config struct {
	// OutputDir — базовая директория run.
	OutputDir string `json:"output_dir"`

	// RawR1, RawR2 — объединённые paired-end файлы (fastq или fastq.gz).
	RawR1 string `json:"raw_r1"`
	RawR2 string `json:"raw_r2"`

	// Workers — потолок одновременных образцов (≥1).
	Workers int `json:"workers"`

	// Threads — потоки на один вызов инструмента (≥1).
	Threads int `json:"threads"`

	// TagMode — режим поиска тега: strict, universal, rescue.
	TagMode string `json:"tag_mode"`

	// StageTimeoutSec — таймаут одного вызова инструмента в секундах.
	// 0 — без таймаута.
	StageTimeoutSec int `json:"stage_timeout_sec,omitempty"`

	// EnableQC — строить fastp-отчёты (не влияет на gate-проверки).
	EnableQC bool `json:"enable_qc,omitempty"`

	// Пороги инструментов (см. domain.Thresholds).
	QualityCutoff     int     `json:"quality_cutoff"`
	MinLength         int     `json:"min_length"`
	MinOverlap        int     `json:"min_overlap"`
	MaxMergeDiffs     int     `json:"max_merge_diffs"`
	MaxExpectedErrors float64 `json:"max_expected_errors"`
	MinFinalLength    int     `json:"min_final_length"`
	ClusterIdentity   float64 `json:"cluster_identity"`
	MinClusterSize    int     `json:"min_cluster_size"`
	DemuxErrorRate    float64 `json:"demux_error_rate"`
	TrimErrorRate     float64 `json:"trim_error_rate"`
	AnchorPrimers     bool    `json:"anchor_primers"`
	DiscardUntrimmed  bool    `json:"discard_untrimmed"`

	// Adapter — технологические адаптеры (cutadapt -a/-A).
	Adapter domain.PrimerSet `json:"adapter"`

	// Primer1 — обязательная пара праймеров.
	Primer1 domain.PrimerSet `json:"primer_set_1"`

	// Primer2 — необязательная вторая пара. Отсутствие в JSON означает,
	// что флаги второй пары не попадут в команды тримминга.
	Primer2 *domain.PrimerSet `json:"primer_set_2,omitempty"`

	// Samples — таблица образцов.
	Samples []SampleEntry `json:"samples"`
}

// Load читает конфигурацию из JSON-файла и подставляет значения по умолчанию.
// Валидация выполняется отдельно (Validate).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	cfg.applyDefaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// applyDefaults заполняет значения по умолчанию. Вызывается до разбора
// JSON: отсутствующее поле получает дефолт, а явно заданный ноль
// (например quality_cutoff: 0 — без обрезки по качеству) сохраняется.
func (c *Config) applyDefaults() {
	c.Workers = DefaultWorkers
	c.Threads = DefaultThreads
	c.QualityCutoff = DefaultQualityCutoff
	c.MinLength = DefaultMinLength
	c.TrimErrorRate = DefaultTrimErrorRate
	c.TagMode = string(domain.TagModeStrict)
	c.MinClusterSize = 1
}

// Thresholds собирает domain.Thresholds из конфигурации.
func (c *Config) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		QualityCutoff:     c.QualityCutoff,
		MinLength:         c.MinLength,
		MinOverlap:        c.MinOverlap,
		MaxMergeDiffs:     c.MaxMergeDiffs,
		MaxExpectedErrors: c.MaxExpectedErrors,
		MinFinalLength:    c.MinFinalLength,
		ClusterIdentity:   c.ClusterIdentity,
		MinClusterSize:    c.MinClusterSize,
		DemuxErrorRate:    c.DemuxErrorRate,
		TrimErrorRate:     c.TrimErrorRate,
		AnchorPrimers:     c.AnchorPrimers,
		DiscardUntrimmed:  c.DiscardUntrimmed,
	}
}
