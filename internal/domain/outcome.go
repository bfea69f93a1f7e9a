package domain

import "time"

// SampleOutcome — итог обработки одного образца.
//
// Артефакты добавляются по мере прохождения стадий и считаются
// достоверными только после того, как предикат успеха стадии вернул true.
// После перехода в терминальный статус outcome не изменяется.
type SampleOutcome struct {
	// SampleID — идентификатор образца.
	SampleID string `json:"sample_id"`

	// Status — текущий статус обработки.
	Status SampleStatus `json:"status"`

	// FailedStage — имя стадии, на которой образец упал.
	// Пусто, если статус не FAILED.
	FailedStage string `json:"failed_stage,omitempty"`

	// FailureCause — причина падения (текст предиката или инфраструктурной ошибки).
	FailureCause string `json:"failure_cause,omitempty"`

	// SkipReason — причина исключения образца до планирования.
	SkipReason string `json:"skip_reason,omitempty"`

	// Artifacts — роль артефакта → абсолютный путь.
	// Заполняется только для стадий, прошедших gate-проверку.
	Artifacts map[ArtifactRole]string `json:"artifacts,omitempty"`

	// StartedAt — время начала обработки. Nil для SKIPPED.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения (успешного или нет).
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewSampleOutcome создаёт outcome в статусе PENDING.
func NewSampleOutcome(sampleID string) *SampleOutcome {
	return &SampleOutcome{
		SampleID:  sampleID,
		Status:    SampleStatusPending,
		Artifacts: make(map[ArtifactRole]string),
	}
}

// SkippedOutcome создаёт терминальный outcome для образца,
// исключённого до планирования.
func SkippedOutcome(sampleID, reason string) *SampleOutcome {
	return &SampleOutcome{
		SampleID:   sampleID,
		Status:     SampleStatusSkipped,
		SkipReason: reason,
	}
}

// MarkRunning переводит outcome в статус RUNNING.
func (o *SampleOutcome) MarkRunning() {
	now := time.Now()
	o.Status = SampleStatusRunning
	o.StartedAt = &now
}

// MarkSucceeded переводит outcome в статус SUCCEEDED.
func (o *SampleOutcome) MarkSucceeded() {
	now := time.Now()
	o.Status = SampleStatusSucceeded
	o.FinishedAt = &now
}

// MarkFailed переводит outcome в статус FAILED с именем стадии и причиной.
func (o *SampleOutcome) MarkFailed(stage, cause string) {
	now := time.Now()
	o.Status = SampleStatusFailed
	o.FailedStage = stage
	o.FailureCause = cause
	o.FinishedAt = &now
}

// RecordArtifact фиксирует путь артефакта. Игнорируется, если outcome
// уже в терминальном статусе: артефакты упавшей стадии остаются на диске
// для отладки, но не публикуются.
func (o *SampleOutcome) RecordArtifact(role ArtifactRole, path string) {
	if o.Status.IsTerminal() {
		return
	}
	if o.Artifacts == nil {
		o.Artifacts = make(map[ArtifactRole]string)
	}
	o.Artifacts[role] = path
}

// Duration возвращает продолжительность обработки.
// Возвращает 0, если образец не запускался или не завершён.
func (o *SampleOutcome) Duration() time.Duration {
	if o.StartedAt == nil || o.FinishedAt == nil {
		return 0
	}
	return o.FinishedAt.Sub(*o.StartedAt)
}
