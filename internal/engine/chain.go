package engine

import (
	"fmt"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
)

// Chain возвращает фиксированную цепочку стадий пайплайна.
//
// Порядок строгий и одинаков для всех образцов:
//
//	demultiplex → trim → merge → filter → dereplicate → chimera → cluster → otutab
//
// Стадия n+1 никогда не запускается, пока предикат успеха стадии n
// не вернул true.
func Chain() []StageSpec {
	return []StageSpec{
		{
			Name:    StageDemultiplex,
			Outputs: []domain.ArtifactRole{domain.ArtifactDemuxR1, domain.ArtifactDemuxR2},
			Build:   buildDemultiplex,
			OK:      exitZeroAndRecords(domain.ArtifactDemuxR1, domain.ArtifactDemuxR2),
		},
		{
			Name:    StageTrim,
			Inputs:  []domain.ArtifactRole{domain.ArtifactDemuxR1, domain.ArtifactDemuxR2},
			Outputs: []domain.ArtifactRole{domain.ArtifactTrimmedR1, domain.ArtifactTrimmedR2},
			Build:   buildTrim,
			OK:      exitZeroAndRecords(domain.ArtifactTrimmedR1, domain.ArtifactTrimmedR2),
		},
		{
			Name:    StageMerge,
			Inputs:  []domain.ArtifactRole{domain.ArtifactTrimmedR1, domain.ArtifactTrimmedR2},
			Outputs: []domain.ArtifactRole{domain.ArtifactMerged},
			Build:   buildMerge,
			OK:      exitZeroAndRecords(domain.ArtifactMerged),
		},
		{
			Name:    StageFilter,
			Inputs:  []domain.ArtifactRole{domain.ArtifactMerged},
			Outputs: []domain.ArtifactRole{domain.ArtifactFiltered},
			Build:   buildFilter,
			OK:      exitZeroAndRecords(domain.ArtifactFiltered),
		},
		{
			Name:    StageDereplicate,
			Inputs:  []domain.ArtifactRole{domain.ArtifactFiltered},
			Outputs: []domain.ArtifactRole{domain.ArtifactDerep},
			Build:   buildDereplicate,
			OK:      exitZeroAndRecords(domain.ArtifactDerep),
		},
		{
			Name:    StageChimera,
			Inputs:  []domain.ArtifactRole{domain.ArtifactDerep},
			Outputs: []domain.ArtifactRole{domain.ArtifactNonchimeras},
			Build:   buildChimera,
			OK:      exitZeroAndRecords(domain.ArtifactNonchimeras),
		},
		{
			Name:    StageCluster,
			Inputs:  []domain.ArtifactRole{domain.ArtifactNonchimeras},
			Outputs: []domain.ArtifactRole{domain.ArtifactOTUs},
			Build:   buildCluster,
			OK:      exitZeroAndRecords(domain.ArtifactOTUs),
		},
		{
			// Картирование ридов на центроиды читает filtered — артефакт
			// более ранней стадии, уже прошедшей свою gate-проверку.
			Name:    StageOTUTable,
			Inputs:  []domain.ArtifactRole{domain.ArtifactFiltered, domain.ArtifactOTUs},
			Outputs: []domain.ArtifactRole{domain.ArtifactOTUTable},
			Build:   buildOTUTable,
			OK: func(s *domain.Sample, res *invoker.Result) error {
				if res.ExitCode != 0 {
					return fmt.Errorf("%w: exit code %d: %s", ErrToolFailed, res.ExitCode, firstLine(res.Stderr))
				}
				return RequireNonEmptyFile(s, domain.ArtifactOTUTable)
			},
		},
	}
}

// ValidateChain проверяет линейность цепочки: каждый вход стадии
// производится одной из предыдущих стадий. Забегать вперёд или
// возвращаться назад стадии не могут.
func ValidateChain(chain []StageSpec) error {
	produced := make(map[domain.ArtifactRole]bool)

	for i, stage := range chain {
		for _, input := range stage.Inputs {
			if !produced[input] {
				return fmt.Errorf("%w: stage %s (position %d) requires %s",
					ErrBrokenChain, stage.Name, i, input)
			}
		}
		for _, output := range stage.Outputs {
			produced[output] = true
		}
	}
	return nil
}
