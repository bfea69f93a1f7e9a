package invoker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

func testSample(t *testing.T) *domain.Sample {
	t.Helper()
	s := &domain.Sample{ID: "S1", WorkDir: t.TempDir()}
	if err := os.MkdirAll(filepath.Join(s.WorkDir, domain.DirLogs), 0o755); err != nil {
		t.Fatal(err)
	}
	return s
}

// --- Invoke Tests ---

func TestInvoke_CapturesOutput(t *testing.T) {
	inv := New(0, nil)
	s := testSample(t)

	res, err := inv.Invoke(context.Background(), s, "merge", Command{
		Tool: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stdout, "out") {
		t.Errorf("stdout not captured: %q", res.Stdout)
	}
	if !strings.Contains(res.Stderr, "err") {
		t.Errorf("stderr not captured: %q", res.Stderr)
	}
}

func TestInvoke_NonZeroExitIsResultNotError(t *testing.T) {
	inv := New(0, nil)
	s := testSample(t)

	res, err := inv.Invoke(context.Background(), s, "merge", Command{
		Tool: "sh",
		Args: []string{"-c", "exit 3"},
	})
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit 3, got %d", res.ExitCode)
	}
}

func TestInvoke_WritesToolLog(t *testing.T) {
	inv := New(0, nil)
	s := testSample(t)

	_, err := inv.Invoke(context.Background(), s, "filter", Command{
		Tool: "sh",
		Args: []string{"-c", "echo diagnostics"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(s.LogPath("filter"))
	if err != nil {
		t.Fatalf("tool log not written: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, "# command: sh -c echo diagnostics") {
		t.Errorf("log should record the command: %s", log)
	}
	if !strings.Contains(log, "diagnostics") {
		t.Errorf("log should record stdout: %s", log)
	}
}

func TestInvoke_Timeout(t *testing.T) {
	inv := New(100*time.Millisecond, nil)
	s := testSample(t)

	res, err := inv.Invoke(context.Background(), s, "merge", Command{
		Tool: "sh",
		Args: []string{"-c", "sleep 5"},
	})
	if err != nil {
		t.Fatalf("timeout must be reported via Result, not error: %v", err)
	}
	if !res.TimedOut {
		t.Error("expected TimedOut to be set")
	}
}

func TestInvoke_RunCancellationLetsToolFinish(t *testing.T) {
	// Отмена run не убивает идущий вызов: инструмент дорабатывает,
	// артефакт дописывается, код завершения настоящий.
	inv := New(0, nil)
	s := testSample(t)
	marker := filepath.Join(s.WorkDir, "marker")

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	res, err := inv.Invoke(ctx, s, "merge", Command{
		Tool: "sh",
		Args: []string{"-c", "sleep 0.3; echo ok > " + marker},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
	if res.TimedOut {
		t.Error("cancellation must not be reported as a timeout")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("tool output missing, in-flight invocation was killed: %v", err)
	}
}

func TestInvoke_StartFailure(t *testing.T) {
	inv := New(0, nil)
	s := testSample(t)

	_, err := inv.Invoke(context.Background(), s, "merge", Command{
		Tool: "definitely-not-an-installed-tool",
	})
	if !errors.Is(err, ErrStartFailed) {
		t.Fatalf("expected ErrStartFailed, got %v", err)
	}
}

// --- Tool Check Tests ---

func TestCheckTools_Missing(t *testing.T) {
	err := CheckTools("definitely-not-an-installed-tool")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestCheckTools_Present(t *testing.T) {
	if err := CheckTools("sh"); err != nil {
		t.Fatalf("sh should be on PATH: %v", err)
	}
}

func TestHasTool(t *testing.T) {
	if !HasTool("sh") {
		t.Error("sh should be on PATH")
	}
	if HasTool("definitely-not-an-installed-tool") {
		t.Error("unexpected tool on PATH")
	}
}
