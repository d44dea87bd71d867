package landing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/landing/landingtest"
)

// newTestAnimator returns an animator driven by a manual ticker and a channel
// that receives the counters after every tick
func newTestAnimator(t *testing.T) (*landing.Animator, *landingtest.ManualTicker, chan landing.Metrics) {
	t.Helper()
	ticker := landingtest.NewManualTicker()
	ticks := make(chan landing.Metrics, 512)
	a := landing.NewAnimator(
		landing.WithTicker(ticker.Func()),
		landing.WithTickListener(func(m landing.Metrics) { ticks <- m }),
	)
	return a, ticker, ticks
}

// waitTicks drains n tick notifications and returns the last one
func waitTicks(t *testing.T, ch <-chan landing.Metrics, n int) landing.Metrics {
	t.Helper()
	var last landing.Metrics
	for i := 0; i < n; i++ {
		select {
		case last = <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for tick %d of %d", i+1, n)
		}
	}
	return last
}

func TestAnimatorDefaults(t *testing.T) {
	a := landing.NewAnimator()
	if a.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v, want 50ms", a.Interval())
	}
	if a.Running() {
		t.Error("new animator should not be running")
	}
	if a.Ticks() != 0 || a.Metrics().String() != "deals=0 investors=0 funds=0" {
		t.Errorf("unexpected initial state: ticks=%d %s", a.Ticks(), a.Metrics())
	}
}

func TestAnimatorEndToEnd(t *testing.T) {
	a, ticker, ticks := newTestAnimator(t)
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	defer a.Stop()

	if got := ticker.TickN(50); got != 50 {
		t.Fatalf("delivered %d ticks, want 50", got)
	}
	m := waitTicks(t, ticks, 50)
	if m.String() != "deals=50 investors=50 funds=50" {
		t.Fatalf("after 50 ticks: %s", m)
	}
	if m.Saturated() {
		t.Fatal("saturated after 50 ticks")
	}

	if got := ticker.TickN(150); got != 150 {
		t.Fatalf("delivered %d ticks, want 150", got)
	}
	m = waitTicks(t, ticks, 150)
	if m.String() != "deals=150 investors=200 funds=100" {
		t.Fatalf("after 200 ticks: %s", m)
	}
	if a.Ticks() != 200 {
		t.Errorf("Ticks() = %d, want 200", a.Ticks())
	}
}

func TestAnimatorReleasesTickerAtSaturation(t *testing.T) {
	a, ticker, ticks := newTestAnimator(t)
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()

	ticker.TickN(landing.InvestorsCap)
	waitTicks(t, ticks, landing.InvestorsCap)

	// The loop stops the ticker right after the saturating tick
	deadline := time.Now().Add(2 * time.Second)
	for !ticker.Stopped() {
		if time.Now().After(deadline) {
			t.Fatal("ticker not released after saturation")
		}
		time.Sleep(time.Millisecond)
	}
	if ticker.Tick() {
		t.Error("tick delivered after saturation")
	}

	if got := a.Metrics().String(); got != "deals=150 investors=200 funds=100" {
		t.Errorf("Metrics() = %s", got)
	}
	if !a.Running() {
		t.Error("animator should idle, not exit, until stopped")
	}
}

func TestAnimatorStopCancelsTicks(t *testing.T) {
	for _, n := range []int{0, 1, 37, 120} {
		a, ticker, ticks := newTestAnimator(t)
		if err := a.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		ticker.TickN(n)
		waitTicks(t, ticks, n)

		a.Stop()

		if !ticker.Stopped() {
			t.Errorf("n=%d: ticker not released by Stop", n)
		}
		if ticker.Tick() {
			t.Errorf("n=%d: tick accepted after Stop", n)
		}
		select {
		case m := <-ticks:
			t.Errorf("n=%d: listener fired after Stop: %s", n, m)
		default:
		}
		if a.Ticks() != n {
			t.Errorf("n=%d: Ticks() = %d after Stop", n, a.Ticks())
		}
		if a.Running() {
			t.Errorf("n=%d: still running after Stop", n)
		}
	}
}

func TestAnimatorContextCancellation(t *testing.T) {
	a, ticker, _ := newTestAnimator(t)
	ctx, cancel := context.WithCancel(context.Background())
	if err := a.Start(ctx); err != nil {
		t.Fatal(err)
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for a.Running() {
		if time.Now().After(deadline) {
			t.Fatal("animator still running after context cancellation")
		}
		time.Sleep(time.Millisecond)
	}
	if !ticker.Stopped() {
		t.Error("ticker not released after context cancellation")
	}
	a.Stop()
}

func TestAnimatorLifecycleErrors(t *testing.T) {
	a, _, _ := newTestAnimator(t)

	// Stop before Start is a no-op
	a.Stop()
	if err := a.Start(context.Background()); !errors.Is(err, landing.ErrAnimatorStopped) {
		t.Errorf("Start after Stop = %v, want ErrAnimatorStopped", err)
	}

	b, _, _ := newTestAnimator(t)
	if err := b.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.Start(context.Background()); !errors.Is(err, landing.ErrAnimatorRunning) {
		t.Errorf("second Start = %v, want ErrAnimatorRunning", err)
	}
	b.Stop()
	b.Stop()
}

func TestAnimatorRealTicker(t *testing.T) {
	a := landing.NewAnimator(landing.WithInterval(time.Millisecond))
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for a.Ticks() < 5 {
		if time.Now().After(deadline) {
			t.Fatal("real ticker did not advance the counters")
		}
		time.Sleep(2 * time.Millisecond)
	}
	a.Stop()

	frozen := a.Metrics().String()
	time.Sleep(10 * time.Millisecond)
	if got := a.Metrics().String(); got != frozen {
		t.Errorf("counters changed after Stop: %s -> %s", frozen, got)
	}
}
