package backpressure

import (
	"strconv"
	"testing"
	"time"
)

func Test_Backpressure(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		modifyFunc  func(g *Backpressure)
		expectation func(g *Backpressure) bool
	}{
		{
			name:        "case 0: empty value can proceed",
			modifyFunc:  func(g *Backpressure) {},
			expectation: func(g *Backpressure) bool { return g.CanProceed() },
		},
		{
			name:        "case 1: CanProceed() returns false after NotBefore() set",
			modifyFunc:  func(g *Backpressure) { g.NotBefore(fixed.Add(100 * time.Second)) },
			expectation: func(g *Backpressure) bool { return !g.CanProceed() },
		},
		{
			name:        "case 2: CanProceed() returns true after value set in NotBefore() has expired",
			modifyFunc:  func(g *Backpressure) { g.NotBefore(fixed.Add(-1 * time.Second)) },
			expectation: func(g *Backpressure) bool { return g.CanProceed() },
		},
		{
			name:        "case 3: RetryAfter() returns value set in NotBefore()",
			modifyFunc:  func(g *Backpressure) { g.NotBefore(time.Unix(100, 0)) },
			expectation: func(g *Backpressure) bool { return g.RetryAfter().Equal(time.Unix(100, 0)) },
		},
		{
			name: "case 4: an earlier NotBefore() does not shorten the wait",
			modifyFunc: func(g *Backpressure) {
				g.NotBefore(fixed.Add(10 * time.Minute))
				g.NotBefore(fixed.Add(1 * time.Minute))
			},
			expectation: func(g *Backpressure) bool { return g.RetryAfter().Equal(fixed.Add(10 * time.Minute)) },
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			g := &Backpressure{now: func() time.Time { return fixed }}
			tc.modifyFunc(g)

			if !tc.expectation(g) {
				t.Fatalf("expectation failed; retry after: %s", g.RetryAfter())
			}
		})
	}
}
