package domain

// Thresholds — числовые пороги, передаваемые внешним инструментам.
//
// Пороги задаются один раз на run и копируются в каждый Sample,
// чтобы пайплайн образца не зависел от глобального состояния.
type Thresholds struct {
	// QualityCutoff — порог качества для обрезки концов ридов (cutadapt -q).
	QualityCutoff int

	// MinLength — минимальная длина рида после тримминга (cutadapt --minimum-length).
	MinLength int

	// MinOverlap — минимальное перекрытие при слиянии пар (vsearch --fastq_minovlen).
	MinOverlap int

	// MaxMergeDiffs — максимум несовпадений в зоне перекрытия (vsearch --fastq_maxdiffs).
	MaxMergeDiffs int

	// MaxExpectedErrors — максимум ожидаемых ошибок на рид (vsearch --fastq_maxee).
	MaxExpectedErrors float64

	// MinFinalLength — минимальная длина слитой последовательности (vsearch --fastq_minlen).
	MinFinalLength int

	// ClusterIdentity — доля идентичности для кластеризации, (0, 1].
	ClusterIdentity float64

	// MinClusterSize — минимальный размер кластера: 1 (синглтоны остаются)
	// или 2 (синглтоны отбрасываются).
	MinClusterSize int

	// DemuxErrorRate — допустимая доля ошибок при поиске тега (cutadapt --error-rate).
	DemuxErrorRate float64

	// TrimErrorRate — допустимая доля ошибок при поиске праймера (cutadapt -e).
	TrimErrorRate float64

	// AnchorPrimers — искать праймеры только в начале рида (префикс ^).
	AnchorPrimers bool

	// DiscardUntrimmed — отбрасывать риды без найденного праймера.
	DiscardUntrimmed bool
}
