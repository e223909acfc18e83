package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEscalating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base    time.Duration
		attempt int
		want    time.Duration
	}{
		{base: time.Second, attempt: 0, want: time.Second},
		{base: time.Second, attempt: 2, want: 3 * time.Second},
		{base: 5 * time.Second, attempt: 1, want: 10 * time.Second},
		{base: 0, attempt: 4, want: 0},
		{base: time.Second, attempt: -1, want: time.Second},
	}

	for _, tc := range cases {
		if got := Escalating(tc.base, tc.attempt); got != tc.want {
			t.Fatalf("unexpected backoff base=%s attempt=%d: got=%s want=%s", tc.base, tc.attempt, got, tc.want)
		}
	}
}

func TestSleep_ReturnsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
