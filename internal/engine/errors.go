package engine

import "errors"

// Ошибки gate-проверок и цепочки стадий.
var (
	// ErrMissingArtifact — стадия не создала обещанный файл.
	ErrMissingArtifact = errors.New("expected artifact is missing")

	// ErrEmptyArtifact — файл создан, но не содержит ни одной записи.
	// Инструмент мог завершиться с кодом 0 и пустым выводом (например,
	// ни один рид не совпал с баркодом) — это падение стадии, не успех.
	ErrEmptyArtifact = errors.New("artifact has no records")

	// ErrToolFailed — инструмент завершился с ненулевым кодом.
	ErrToolFailed = errors.New("tool exited with non-zero status")

	// ErrBrokenChain — цепочка стадий не линейна: вход стадии не
	// производится ни одной из предыдущих стадий.
	ErrBrokenChain = errors.New("stage input not produced by an earlier stage")
)
