// Package engine содержит движок выполнения пайплайна образца.
//
// Включает:
//   - stage.go    — StageSpec и сборка команд внешних инструментов
//   - chain.go    — фиксированная цепочка стадий и проверка её линейности
//   - gate.go     — gate-проверки артефактов (наличие и непустота по записям)
//   - pipeline.go — Pipeline: прогон цепочки до конца или до первого падения
//   - qc.go       — совещательные fastp-отчёты (не гейтят образец)
//
// Engine отвечает за порядок стадий и контракт их артефактов.
// Сами алгоритмы обработки последовательностей живут во внешних
// инструментах и здесь не воспроизводятся.
package engine
