package domain

import "path/filepath"

// ArtifactRole — роль артефакта в цепочке стадий.
//
// Роли связывают выходы одной стадии со входами следующей:
// цепочка строго линейна, стадия n читает только выходы стадии n-1
// (или исходные файлы для первой стадии).
type ArtifactRole string

const (
	// ArtifactDemuxR1, ArtifactDemuxR2 — риды образца после демультиплексирования.
	ArtifactDemuxR1 ArtifactRole = "demux_r1"
	ArtifactDemuxR2 ArtifactRole = "demux_r2"

	// ArtifactTrimmedR1, ArtifactTrimmedR2 — риды после тримминга праймеров и адаптеров.
	ArtifactTrimmedR1 ArtifactRole = "trimmed_r1"
	ArtifactTrimmedR2 ArtifactRole = "trimmed_r2"

	// ArtifactMerged — слитые paired-end риды.
	ArtifactMerged ArtifactRole = "merged"

	// ArtifactFiltered — последовательности после фильтра качества (FASTA).
	ArtifactFiltered ArtifactRole = "filtered"

	// ArtifactDerep — дереплицированные уникальные последовательности.
	ArtifactDerep ArtifactRole = "derep"

	// ArtifactNonchimeras — последовательности после удаления химер.
	ArtifactNonchimeras ArtifactRole = "nonchimeras"

	// ArtifactOTUs — репрезентативные последовательности кластеров.
	ArtifactOTUs ArtifactRole = "otus"

	// ArtifactOTUTable — таблица принадлежности ридов кластерам.
	ArtifactOTUTable ArtifactRole = "otu_table"
)

// Поддиректории рабочей директории образца.
// Нумерация повторяет порядок стадий, чтобы раскладка читалась с диска.
const (
	DirDemux       = "01_demux"
	DirTrimmed     = "02_trimmed"
	DirMerged      = "03_merged"
	DirFiltered    = "04_filtered"
	DirDerep       = "05_derep"
	DirNonchimeras = "06_nonchimeras"
	DirOTUs        = "07_otus"
	DirLogs        = "logs"
	DirQC          = "qc"
)

// SampleDirs возвращает список поддиректорий, создаваемых перед первой стадией.
func SampleDirs() []string {
	return []string{
		DirDemux, DirTrimmed, DirMerged, DirFiltered,
		DirDerep, DirNonchimeras, DirOTUs, DirLogs, DirQC,
	}
}

// artifactLayout — раскладка артефактов: роль → (поддиректория, суффикс имени файла).
// Имя файла всегда начинается с ID образца.
var artifactLayout = map[ArtifactRole]struct {
	dir    string
	suffix string
}{
	ArtifactDemuxR1:     {DirDemux, "_R1.fastq"},
	ArtifactDemuxR2:     {DirDemux, "_R2.fastq"},
	ArtifactTrimmedR1:   {DirTrimmed, "_trim_R1.fastq"},
	ArtifactTrimmedR2:   {DirTrimmed, "_trim_R2.fastq"},
	ArtifactMerged:      {DirMerged, "_merged.fastq"},
	ArtifactFiltered:    {DirFiltered, ".fasta"},
	ArtifactDerep:       {DirDerep, "_uniques.fasta"},
	ArtifactNonchimeras: {DirNonchimeras, "_nonchim.fasta"},
	ArtifactOTUs:        {DirOTUs, "_otus.fasta"},
	ArtifactOTUTable:    {DirOTUs, "_otutab.txt"},
}

// ArtifactPath возвращает абсолютный путь артефакта данной роли.
// Для неизвестной роли возвращает пустую строку.
func (s *Sample) ArtifactPath(role ArtifactRole) string {
	layout, ok := artifactLayout[role]
	if !ok {
		return ""
	}
	return filepath.Join(s.WorkDir, layout.dir, s.ID+layout.suffix)
}

// LogPath возвращает путь лог-файла инструмента для данной стадии.
func (s *Sample) LogPath(stage string) string {
	return filepath.Join(s.WorkDir, DirLogs, stage+".log")
}

// QCPath возвращает путь отчёта fastp с данной меткой.
func (s *Sample) QCPath(label, ext string) string {
	return filepath.Join(s.WorkDir, DirQC, s.ID+"_"+label+"_fastp."+ext)
}
