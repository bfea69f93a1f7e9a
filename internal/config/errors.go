package config

import "errors"

// Ошибки валидации конфигурации.
var (
	// ErrNoSamples — таблица образцов пуста.
	ErrNoSamples = errors.New("sample table is empty")

	// ErrDuplicateSampleID — несколько образцов с одинаковым ID.
	ErrDuplicateSampleID = errors.New("duplicate sample ID")

	// ErrDuplicateTag — один тег назначен нескольким образцам.
	ErrDuplicateTag = errors.New("duplicate demultiplexing tag")

	// ErrMissingPrimer — обязательная пара праймеров не задана целиком.
	ErrMissingPrimer = errors.New("primer set 1 requires both forward and reverse")

	// ErrPartialPrimer2 — вторая пара праймеров задана наполовину.
	ErrPartialPrimer2 = errors.New("primer set 2 requires both forward and reverse or neither")

	// ErrBadThreshold — числовой порог вне допустимого диапазона.
	ErrBadThreshold = errors.New("threshold out of range")

	// ErrBadTagMode — неизвестный режим поиска тега.
	ErrBadTagMode = errors.New("unknown tag mode")

	// ErrMissingInput — не указан исходный файл ридов.
	ErrMissingInput = errors.New("raw input file not configured")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	SampleID string // ID образца, если ошибка относится к строке таблицы
	Field    string // поле конфигурации, вызвавшее ошибку
	Message  string // описание ошибки
	Err      error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.SampleID != "" {
		return "sample " + e.SampleID + ": " + e.Field + ": " + e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(sampleID, field, message string, err error) *ValidationError {
	return &ValidationError{
		SampleID: sampleID,
		Field:    field,
		Message:  message,
		Err:      err,
	}
}
