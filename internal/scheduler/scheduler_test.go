package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// fakeRunner имитирует пайплайн образца с заданной длительностью.
type fakeRunner struct {
	delay  time.Duration
	failID string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (r *fakeRunner) Run(ctx context.Context, sample *domain.Sample) *domain.SampleOutcome {
	cur := r.inFlight.Add(1)
	for {
		max := r.maxInFlight.Load()
		if cur <= max || r.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	defer r.inFlight.Add(-1)

	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	outcome := domain.NewSampleOutcome(sample.ID)
	outcome.MarkRunning()
	if sample.ID == r.failID {
		outcome.MarkFailed("merge", "simulated failure")
	} else {
		outcome.MarkSucceeded()
	}
	return outcome
}

func makeSamples(ids ...string) []domain.Sample {
	samples := make([]domain.Sample, len(ids))
	for i, id := range ids {
		samples[i] = domain.Sample{ID: id}
	}
	return samples
}

// --- Scheduler Tests ---

func TestNew_RequiresWorkers(t *testing.T) {
	_, err := New(Config{Runner: &fakeRunner{}, Workers: 0})
	if !errors.Is(err, ErrNoWorkers) {
		t.Fatalf("expected ErrNoWorkers, got %v", err)
	}
}

func TestRunAll_AllSamplesReported(t *testing.T) {
	runner := &fakeRunner{}
	s, err := New(Config{Runner: runner, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}

	samples := makeSamples("S1", "S2", "S3", "S4", "S5")
	outcomes := s.RunAll(context.Background(), samples)

	if len(outcomes) != len(samples) {
		t.Fatalf("expected %d outcomes, got %d", len(samples), len(outcomes))
	}
	for _, sample := range samples {
		o := outcomes[sample.ID]
		if o == nil {
			t.Fatalf("missing outcome for %s", sample.ID)
		}
		if o.Status != domain.SampleStatusSucceeded {
			t.Errorf("%s: expected SUCCEEDED, got %s", sample.ID, o.Status)
		}
	}
}

func TestRunAll_RespectsWorkerCeiling(t *testing.T) {
	runner := &fakeRunner{delay: 20 * time.Millisecond}
	s, err := New(Config{Runner: runner, Workers: 3})
	if err != nil {
		t.Fatal(err)
	}

	s.RunAll(context.Background(), makeSamples("S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9"))

	if max := runner.maxInFlight.Load(); max > 3 {
		t.Errorf("in-flight samples exceeded ceiling: %d > 3", max)
	}
}

func TestRunAll_FailureDoesNotAffectOthers(t *testing.T) {
	runner := &fakeRunner{failID: "S2"}
	s, err := New(Config{Runner: runner, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}

	outcomes := s.RunAll(context.Background(), makeSamples("S1", "S2", "S3"))

	if outcomes["S2"].Status != domain.SampleStatusFailed {
		t.Errorf("S2: expected FAILED, got %s", outcomes["S2"].Status)
	}
	for _, id := range []string{"S1", "S3"} {
		if outcomes[id].Status != domain.SampleStatusSucceeded {
			t.Errorf("%s: expected SUCCEEDED, got %s", id, outcomes[id].Status)
		}
	}
}

func TestRunAll_CancellationSkipsUnadmitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// Один воркер занят первым образцом; отмена приходит, пока он
	// выполняется, и оставшиеся образцы не допускаются.
	runner := &fakeRunner{delay: 100 * time.Millisecond}
	s, err := New(Config{Runner: runner, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}

	time.AfterFunc(20*time.Millisecond, cancel)
	outcomes := s.RunAll(ctx, makeSamples("S1", "S2", "S3", "S4"))

	if len(outcomes) != 4 {
		t.Fatalf("every sample must have an outcome, got %d", len(outcomes))
	}

	skipped := 0
	for _, o := range outcomes {
		if o.Status == domain.SampleStatusSkipped {
			skipped++
			if o.SkipReason == "" {
				t.Error("skipped outcome must carry a reason")
			}
		}
	}
	if skipped != 3 {
		t.Errorf("expected 3 skipped samples, got %d", skipped)
	}
	if outcomes["S1"].Status == domain.SampleStatusSkipped {
		t.Error("the admitted sample must finish, not be skipped")
	}
}

func TestRunAll_OnOutcomeCallback(t *testing.T) {
	var seen atomic.Int32
	s, err := New(Config{
		Runner:  &fakeRunner{},
		Workers: 2,
		OnOutcome: func(outcome *domain.SampleOutcome) {
			seen.Add(1)
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	s.RunAll(context.Background(), makeSamples("S1", "S2", "S3"))

	if seen.Load() != 3 {
		t.Errorf("expected callback for each outcome, got %d", seen.Load())
	}
}
