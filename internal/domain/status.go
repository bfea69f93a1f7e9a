package domain

// SampleStatus — статус обработки образца.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED (с именем упавшей стадии)
//	        → SKIPPED (исключён до планирования, например пустой тег)
type SampleStatus string

const (
	// SampleStatusPending — образец ожидает свободного слота в пуле.
	SampleStatusPending SampleStatus = "PENDING"

	// SampleStatusRunning — пайплайн образца выполняется.
	SampleStatusRunning SampleStatus = "RUNNING"

	// SampleStatusSucceeded — все стадии пройдены, артефакты записаны.
	SampleStatusSucceeded SampleStatus = "SUCCEEDED"

	// SampleStatusFailed — одна из стадий не прошла gate-проверку.
	SampleStatusFailed SampleStatus = "FAILED"

	// SampleStatusSkipped — образец не запускался вовсе.
	SampleStatusSkipped SampleStatus = "SKIPPED"
)

// IsTerminal возвращает true, если статус финальный (образец завершён).
func (s SampleStatus) IsTerminal() bool {
	switch s {
	case SampleStatusSucceeded, SampleStatusFailed, SampleStatusSkipped:
		return true
	default:
		return false
	}
}

// RunStatus — статус выполнения run.
//
// Жизненный цикл:
//
//	RUNNING → SUCCEEDED (все образцы успешны)
//	        ↘ FAILED (хотя бы один образец не прошёл)
type RunStatus string

const (
	// RunStatusRunning — run в процессе выполнения.
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusSucceeded — каждый запланированный образец успешен.
	RunStatusSucceeded RunStatus = "SUCCEEDED"

	// RunStatusFailed — хотя бы один образец завершился с FAILED.
	RunStatusFailed RunStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusSucceeded || s == RunStatusFailed
}
