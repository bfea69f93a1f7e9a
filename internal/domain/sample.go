package domain

// PrimerSet — пара праймеров forward/reverse.
type PrimerSet struct {
	// Forward — последовательность прямого праймера (5'→3').
	Forward string `json:"forward"`

	// Reverse — последовательность обратного праймера (5'→3').
	Reverse string `json:"reverse"`
}

// TagMode — режим поиска демультиплексирующего тега.
type TagMode string

const (
	// TagModeStrict — тег строго в начале рида (^TAG).
	TagModeStrict TagMode = "strict"

	// TagModeUniversal — тег в начале рида со сдвигом 0–5 bp (^NNTAG и т.д.).
	TagModeUniversal TagMode = "universal"

	// TagModeRescue — тег в любой позиции рида.
	TagModeRescue TagMode = "rescue"
)

// IsValid проверяет, что режим известен.
func (m TagMode) IsValid() bool {
	switch m {
	case TagModeStrict, TagModeUniversal, TagModeRescue:
		return true
	default:
		return false
	}
}

// Sample — полностью разрешённое описание одного образца.
//
// Sample строится один раз при старте run из конфигурации и таблицы тегов,
// после чего не изменяется. Все пути артефактов образца лежат внутри WorkDir,
// поэтому параллельные образцы не пересекаются по файлам.
type Sample struct {
	// ID — уникальный в пределах run идентификатор образца.
	// Используется как имя рабочей директории и префикс relabel.
	ID string

	// Tag — баркод демультиплексирования. Непустой: образцы с пустым
	// тегом исключаются до планирования.
	Tag string

	// TagMode — режим поиска тега (strict/universal/rescue).
	TagMode TagMode

	// Primer1 — обязательная пара праймеров.
	Primer1 PrimerSet

	// Primer2 — необязательная вторая пара. nil означает, что флаги
	// второй пары не попадают в команду тримминга вовсе.
	Primer2 *PrimerSet

	// Adapter — пара технологических адаптеров (cutadapt -a/-A).
	Adapter PrimerSet

	// Thresholds — числовые пороги инструментов.
	Thresholds Thresholds

	// Threads — количество потоков, передаваемое каждому инструменту.
	Threads int

	// RawR1, RawR2 — исходные объединённые paired-end файлы (общие для всех образцов).
	RawR1 string
	RawR2 string

	// WorkDir — абсолютный путь рабочей директории образца.
	WorkDir string
}
