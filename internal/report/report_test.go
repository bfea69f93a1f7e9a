package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

func testOutcomes() (*domain.Run, map[string]*domain.SampleOutcome) {
	ok := domain.NewSampleOutcome("S1")
	ok.MarkRunning()
	ok.RecordArtifact(domain.ArtifactOTUTable, "/work/S1/07_otus/S1_otutab.txt")
	ok.MarkSucceeded()

	failed := domain.NewSampleOutcome("S2")
	failed.MarkRunning()
	failed.MarkFailed("merge", "exit code 1: fatal error")

	skipped := domain.SkippedOutcome("S3", "empty demultiplexing tag")

	run := domain.NewRun("/work", 2)
	return run, map[string]*domain.SampleOutcome{
		"S1": ok,
		"S2": failed,
		"S3": skipped,
	}
}

// --- Finalize Tests ---

func TestFinalize_Counts(t *testing.T) {
	run, outcomes := testOutcomes()
	rep := Finalize(run, outcomes)

	if rep.Total != 3 {
		t.Errorf("expected total 3, got %d", rep.Total)
	}
	if rep.Succeeded != 1 || rep.Failed != 1 || rep.Skipped != 1 {
		t.Errorf("unexpected counts: %d/%d/%d", rep.Succeeded, rep.Failed, rep.Skipped)
	}
}

func TestFinalize_SortedBySampleID(t *testing.T) {
	run, outcomes := testOutcomes()
	rep := Finalize(run, outcomes)

	ids := make([]string, len(rep.Samples))
	for i, s := range rep.Samples {
		ids[i] = s.SampleID
	}
	want := []string{"S1", "S2", "S3"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestFinalize_ArtifactsOnlyForSucceeded(t *testing.T) {
	run, outcomes := testOutcomes()
	rep := Finalize(run, outcomes)

	for _, s := range rep.Samples {
		switch s.SampleID {
		case "S1":
			if len(s.Artifacts) == 0 {
				t.Error("succeeded sample should publish artifacts")
			}
		default:
			if len(s.Artifacts) != 0 {
				t.Errorf("%s: artifacts must not be published", s.SampleID)
			}
		}
	}
}

func TestFinalize_FailureDetail(t *testing.T) {
	run, outcomes := testOutcomes()
	rep := Finalize(run, outcomes)

	for _, s := range rep.Samples {
		if s.SampleID != "S2" {
			continue
		}
		if s.FailedStage != "merge" {
			t.Errorf("expected failed stage merge, got %s", s.FailedStage)
		}
		if !strings.Contains(s.FailureCause, "exit code 1") {
			t.Errorf("failure cause missing: %s", s.FailureCause)
		}
	}
}

// --- ExitCode Tests ---

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		rep  Report
		want int
	}{
		{"all succeeded", Report{Total: 3, Succeeded: 3}, 0},
		{"one failed", Report{Total: 3, Succeeded: 2, Failed: 1}, 1},
		{"one skipped", Report{Total: 3, Succeeded: 2, Skipped: 1}, 1},
		{"empty run", Report{}, 0},
	}

	for _, c := range cases {
		if got := c.rep.ExitCode(); got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, got)
		}
	}
}

// --- Output Tests ---

func TestWriteJSON(t *testing.T) {
	run, outcomes := testOutcomes()
	run.BaseDir = t.TempDir()

	rep := Finalize(run, outcomes)
	path, err := rep.WriteJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != SummaryFileName {
		t.Errorf("unexpected summary file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if decoded.Total != 3 || len(decoded.Samples) != 3 {
		t.Errorf("decoded summary incomplete: total %d, samples %d",
			decoded.Total, len(decoded.Samples))
	}
}

func TestWriteTable(t *testing.T) {
	run, outcomes := testOutcomes()
	rep := Finalize(run, outcomes)

	var buf bytes.Buffer
	rep.WriteTable(&buf)
	out := buf.String()

	for _, want := range []string{"S1", "S2", "S3", "merge", "empty demultiplexing tag", "1 succeeded, 1 failed, 1 skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
