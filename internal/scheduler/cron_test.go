package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestValidateCronExpr(t *testing.T) {
	cases := []struct {
		expr string
		ok   bool
	}{
		{"0 2 * * *", true},
		{"*/15 * * * *", true},
		{"0 2 * *", false},   // четыре поля
		{"61 * * * *", false}, // минута вне диапазона
		{"not a cron", false},
	}

	for _, c := range cases {
		err := ValidateCronExpr(c.expr)
		if c.ok && err != nil {
			t.Errorf("%q: unexpected error: %v", c.expr, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%q: expected error", c.expr)
		}
	}
}

func TestValidateCronExpr_Empty(t *testing.T) {
	if !errors.Is(ValidateCronExpr(""), ErrNoSchedule) {
		t.Error("empty expression should return ErrNoSchedule")
	}
}

func TestNextRun(t *testing.T) {
	from := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	next, err := NextRun("0 2 * * *", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %s, got %s", want, next)
	}
}
