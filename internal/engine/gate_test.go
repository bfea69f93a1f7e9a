package engine

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// --- CountRecords Tests ---

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCountRecords_FASTQ(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "reads.fastq",
		"@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+\nIIII\n")

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 records, got %d", n)
	}
}

func TestCountRecords_FASTA(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "seqs.fasta",
		">s1\nACGT\nACGT\n>s2\nTTTT\n>s3\nGGGG\n")

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 records, got %d", n)
	}
}

func TestCountRecords_GzipFASTQ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte("@r1\nACGT\n+\nIIII\n"))
	gz.Close()
	f.Close()

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 record, got %d", n)
	}
}

func TestCountRecords_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.fastq", "")

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 records, got %d", n)
	}
}

func TestCountRecords_HeaderOnlyFASTA(t *testing.T) {
	// Файл не пуст по байтам, но записей в нём нет.
	dir := t.TempDir()
	path := writeFile(t, dir, "noheader.fasta", "; comment line\n\n")

	n, err := CountRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 records, got %d", n)
	}
}

func TestCountRecords_MissingFile(t *testing.T) {
	if _, err := CountRecords("/nonexistent/reads.fastq"); err == nil {
		t.Error("expected error for missing file")
	}
}

// --- Gate Tests ---

func gateSample(t *testing.T) *domain.Sample {
	t.Helper()
	s := &domain.Sample{ID: "S1", WorkDir: t.TempDir()}
	for _, dir := range domain.SampleDirs() {
		if err := os.MkdirAll(filepath.Join(s.WorkDir, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestRequireRecords_Missing(t *testing.T) {
	s := gateSample(t)

	err := RequireRecords(s, domain.ArtifactMerged)
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestRequireRecords_ZeroRecords(t *testing.T) {
	s := gateSample(t)

	// Непустой файл без единой записи должен резать gate-проверку.
	path := s.ArtifactPath(domain.ArtifactFiltered)
	if err := os.WriteFile(path, []byte("; no sequences here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RequireRecords(s, domain.ArtifactFiltered)
	if err == nil {
		t.Fatal("expected error for artifact with zero records")
	}
}

func TestRequireRecords_OK(t *testing.T) {
	s := gateSample(t)

	path := s.ArtifactPath(domain.ArtifactFiltered)
	if err := os.WriteFile(path, []byte(">S1_1\nACGT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RequireRecords(s, domain.ArtifactFiltered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireNonEmptyFile(t *testing.T) {
	s := gateSample(t)

	if err := RequireNonEmptyFile(s, domain.ArtifactOTUTable); err == nil {
		t.Error("expected error for missing file")
	}

	path := s.ArtifactPath(domain.ArtifactOTUTable)
	if err := os.WriteFile(path, []byte("#OTU ID\tS1\nOTU_1\t12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RequireNonEmptyFile(s, domain.ArtifactOTUTable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n\n  error: bad input\nmore"); got != "error: bad input" {
		t.Errorf("unexpected first line: %q", got)
	}
	if got := firstLine(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
