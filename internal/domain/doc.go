// Package domain содержит основные типы предметной области MetaTrimX.
//
// Включает:
//   - sample.go     — Sample: полностью разрешённое описание одного образца
//   - thresholds.go — Thresholds: числовые пороги биоинформатических инструментов
//   - artifact.go   — ArtifactRole и раскладка файлов внутри рабочей директории образца
//   - status.go     — статусы выполнения run и образца
//   - outcome.go    — SampleOutcome: итог обработки одного образца
//   - run.go        — Run: один запуск пайплайна целиком
//
// Типы domain не зависят от других пакетов проекта и не содержат
// логики запуска внешних инструментов.
package domain
