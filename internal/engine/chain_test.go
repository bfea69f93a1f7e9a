package engine

import (
	"strings"
	"testing"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
)

func chainSample() *domain.Sample {
	return &domain.Sample{
		ID:      "S1",
		Tag:     "ACGTACGT",
		TagMode: domain.TagModeStrict,
		Primer1: domain.PrimerSet{Forward: "GGWACWGG", Reverse: "TAAACTTC"},
		Adapter: domain.PrimerSet{Forward: "AGATCGGA", Reverse: "AGATCGGA"},
		Thresholds: domain.Thresholds{
			QualityCutoff:     25,
			MinLength:         100,
			MinOverlap:        16,
			MaxMergeDiffs:     5,
			MaxExpectedErrors: 1.0,
			MinFinalLength:    120,
			ClusterIdentity:   0.97,
			MinClusterSize:    1,
			TrimErrorRate:     0.1,
		},
		Threads: 2,
		RawR1:   "/data/pool_R1.fastq.gz",
		RawR2:   "/data/pool_R2.fastq.gz",
		WorkDir: "/work/S1",
	}
}

// --- Chain Tests ---

func TestChain_Order(t *testing.T) {
	chain := Chain()

	expected := []string{
		StageDemultiplex, StageTrim, StageMerge, StageFilter,
		StageDereplicate, StageChimera, StageCluster, StageOTUTable,
	}

	if len(chain) != len(expected) {
		t.Fatalf("expected %d stages, got %d", len(expected), len(chain))
	}
	for i, name := range expected {
		if chain[i].Name != name {
			t.Errorf("stage %d: expected %s, got %s", i, name, chain[i].Name)
		}
	}
}

func TestValidateChain_Default(t *testing.T) {
	if err := ValidateChain(Chain()); err != nil {
		t.Fatalf("default chain should be valid: %v", err)
	}
}

func TestValidateChain_Broken(t *testing.T) {
	chain := []StageSpec{
		{
			Name:    "first",
			Inputs:  []domain.ArtifactRole{domain.ArtifactMerged}, // никто не производил
			Outputs: []domain.ArtifactRole{domain.ArtifactFiltered},
		},
	}

	if err := ValidateChain(chain); err == nil {
		t.Error("expected error for stage consuming unproduced artifact")
	}
}

// --- Command Builder Tests ---

func TestBuildDemultiplex_Strict(t *testing.T) {
	s := chainSample()
	cmd := buildDemultiplex(s)

	if cmd.Tool != invoker.ToolCutadapt {
		t.Errorf("expected cutadapt, got %s", cmd.Tool)
	}
	line := cmd.String()
	if !strings.Contains(line, "-g ^ACGTACGT") {
		t.Errorf("strict mode should anchor the tag: %s", line)
	}
	if !strings.Contains(line, "--discard-untrimmed") {
		t.Errorf("untagged reads must be discarded: %s", line)
	}
}

func TestBuildDemultiplex_Universal(t *testing.T) {
	s := chainSample()
	s.TagMode = domain.TagModeUniversal
	line := buildDemultiplex(s).String()

	// Сдвиг 0–5 bp: от ^TAG до ^NNNNNTAG.
	if !strings.Contains(line, "-g ^ACGTACGT") {
		t.Errorf("universal mode should include zero shift: %s", line)
	}
	if !strings.Contains(line, "-g ^NNNNNACGTACGT") {
		t.Errorf("universal mode should include 5 bp shift: %s", line)
	}
	if strings.Contains(line, "^NNNNNNACGTACGT") {
		t.Errorf("shift must not exceed 5 bp: %s", line)
	}
}

func TestBuildDemultiplex_Rescue(t *testing.T) {
	s := chainSample()
	s.TagMode = domain.TagModeRescue
	line := buildDemultiplex(s).String()

	if strings.Contains(line, "^ACGTACGT") {
		t.Errorf("rescue mode must not anchor the tag: %s", line)
	}
	if !strings.Contains(line, "-g ACGTACGT") {
		t.Errorf("rescue mode should search the tag anywhere: %s", line)
	}
}

func TestBuildTrim_SinglePrimerSet(t *testing.T) {
	s := chainSample()
	line := buildTrim(s).String()

	if !strings.Contains(line, "GGWACWGG...TAAACTTC") {
		t.Errorf("linked adapter for primer set 1 missing: %s", line)
	}
	if strings.Count(line, "...") != 1 {
		t.Errorf("unconfigured second primer set must not appear: %s", line)
	}
}

func TestBuildTrim_SecondPrimerSet(t *testing.T) {
	s := chainSample()
	s.Primer2 = &domain.PrimerSet{Forward: "AAAA", Reverse: "TTTT"}
	line := buildTrim(s).String()

	if !strings.Contains(line, "AAAA...TTTT") {
		t.Errorf("linked adapter for primer set 2 missing: %s", line)
	}
}

func TestBuildTrim_AnchorPrimers(t *testing.T) {
	s := chainSample()
	s.Thresholds.AnchorPrimers = true
	line := buildTrim(s).String()

	if !strings.Contains(line, "^GGWACWGG...TAAACTTC") {
		t.Errorf("anchored linked adapter missing: %s", line)
	}
}

func TestBuildTrim_DiscardUntrimmed(t *testing.T) {
	s := chainSample()
	if strings.Contains(buildTrim(s).String(), "--discard-untrimmed") {
		t.Error("discard-untrimmed must be off by default at trim stage")
	}

	s.Thresholds.DiscardUntrimmed = true
	if !strings.Contains(buildTrim(s).String(), "--discard-untrimmed") {
		t.Error("discard-untrimmed flag missing")
	}
}

func TestBuildFilter_Relabel(t *testing.T) {
	s := chainSample()
	line := buildFilter(s).String()

	if !strings.Contains(line, "--relabel S1_") {
		t.Errorf("filtered sequences must carry the sample prefix: %s", line)
	}
}

func TestBuildCluster_Identity(t *testing.T) {
	s := chainSample()
	line := buildCluster(s).String()

	if !strings.Contains(line, "--id 0.97") {
		t.Errorf("cluster identity must be formatted without trailing zeros: %s", line)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.97, "0.97"},
		{1, "1"},
		{0.1, "0.1"},
		{0, "0"},
	}
	for _, c := range cases {
		if got := formatFloat(c.in); got != c.want {
			t.Errorf("formatFloat(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
