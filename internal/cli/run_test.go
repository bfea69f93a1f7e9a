package cli

import (
	"path/filepath"
	"testing"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/config"
)

func TestResolveBaseDir(t *testing.T) {
	// Относительный output_dir разрешается в абсолютный путь — одинаково
	// для run и validate, чтобы validate показывал настоящие рабочие директории.
	cfg := &config.Config{OutputDir: "runs/run1"}

	got, err := resolveBaseDir(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %s", got)
	}
	if filepath.Base(got) != "run1" {
		t.Errorf("unexpected base dir: %s", got)
	}

	abs := &config.Config{OutputDir: "/work/run1"}
	got, err = resolveBaseDir(abs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/work/run1" {
		t.Errorf("absolute path must pass through unchanged, got %s", got)
	}
}
