package landing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/landing/landingtest"
)

func newTestPage(t *testing.T) (*landing.Page, *landingtest.ManualTicker) {
	t.Helper()
	ticker := landingtest.NewManualTicker()
	p := landing.NewPage(landing.WithAnimatorOptions(landing.WithTicker(ticker.Func())))
	return p, ticker
}

func TestPageInitialSnapshot(t *testing.T) {
	p, _ := newTestPage(t)
	s := p.Snapshot()

	if s.MenuOpen {
		t.Error("menu should start closed")
	}
	if s.HasStatus || s.Status != "" {
		t.Errorf("status should be absent, got %q", s.Status)
	}
	if s.Metrics.String() != "deals=0 investors=0 funds=0" {
		t.Errorf("metrics = %s", s.Metrics)
	}
	if s.Mounted {
		t.Error("page should not be mounted before Mount")
	}
}

func TestPageSlicesAreIndependent(t *testing.T) {
	p, ticker := newTestPage(t)
	ticks := make(chan landing.Metrics, 16)
	p.Subscribe(func(m landing.Metrics) { ticks <- m })

	if err := p.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Unmount()

	if open, err := p.ToggleMenu(); err != nil || !open {
		t.Fatalf("ToggleMenu() = (%v, %v)", open, err)
	}
	ticker.TickN(3)
	waitTicks(t, ticks, 3)

	err := p.SubmitContact(landing.ContactInput{Name: "A", Email: "a@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("SubmitContact() = %v", err)
	}

	s := p.Snapshot()
	if !s.MenuOpen {
		t.Error("menu state lost")
	}
	if s.Metrics.String() != "deals=3 investors=3 funds=3" {
		t.Errorf("metrics = %s", s.Metrics)
	}
	if !s.HasStatus || s.Status != landing.AcknowledgmentMessage {
		t.Errorf("status = %q", s.Status)
	}
	if !s.Draft.IsZero() {
		t.Errorf("draft not cleared: %+v", s.Draft)
	}
	if s.Ticks != 3 || !s.Mounted {
		t.Errorf("ticks=%d mounted=%v", s.Ticks, s.Mounted)
	}
}

func TestPageUnmountStopsEverything(t *testing.T) {
	p, ticker := newTestPage(t)

	var mu sync.Mutex
	calls := 0
	p.Subscribe(func(landing.Metrics) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	done := make(chan landing.Metrics, 16)
	p.Subscribe(func(m landing.Metrics) { done <- m })

	if err := p.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	ticker.TickN(5)
	waitTicks(t, done, 5)

	p.Unmount()
	before := p.Snapshot()

	if ticker.Tick() {
		t.Error("tick accepted after Unmount")
	}
	mu.Lock()
	if calls != 5 {
		t.Errorf("listener called %d times, want 5", calls)
	}
	mu.Unlock()

	if _, err := p.ToggleMenu(); !errors.Is(err, landing.ErrPageUnmounted) {
		t.Errorf("ToggleMenu after Unmount = %v", err)
	}
	if err := p.SubmitContact(landing.ContactInput{}); !errors.Is(err, landing.ErrPageUnmounted) {
		t.Errorf("SubmitContact after Unmount = %v", err)
	}
	if err := p.Mount(context.Background()); !errors.Is(err, landing.ErrPageUnmounted) {
		t.Errorf("Mount after Unmount = %v", err)
	}

	after := p.Snapshot()
	if after.Metrics.String() != before.Metrics.String() || after.MenuOpen != before.MenuOpen {
		t.Error("state changed after Unmount")
	}
	if after.Mounted {
		t.Error("Mounted should be false after Unmount")
	}

	// Idempotent
	p.Unmount()
}

func TestPageSnapshotTicksMatchMetrics(t *testing.T) {
	p, ticker := newTestPage(t)
	if err := p.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	defer p.Unmount()

	const n = 120
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker.TickN(n)
	}()

	check := func(s landing.Snapshot) {
		t.Helper()
		for _, m := range s.Metrics {
			if want := min(s.Ticks, m.Cap); m.Current != want {
				t.Fatalf("snapshot at tick %d: %s = %d, want %d", s.Ticks, m.Name, m.Current, want)
			}
		}
	}
	for {
		select {
		case <-done:
			check(p.Snapshot())
			return
		default:
			check(p.Snapshot())
		}
	}
}

func TestPageUnmountBeforeMount(t *testing.T) {
	p, ticker := newTestPage(t)
	p.Unmount()
	if ticker.Created() != 0 {
		t.Error("ticker acquired without Mount")
	}
}

func TestPageUnsubscribe(t *testing.T) {
	p, ticker := newTestPage(t)
	first := make(chan landing.Metrics, 16)
	second := make(chan landing.Metrics, 16)
	unsubscribe := p.Subscribe(func(m landing.Metrics) { first <- m })
	p.Subscribe(func(m landing.Metrics) { second <- m })

	if err := p.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer p.Unmount()

	ticker.Tick()
	waitTicks(t, first, 1)
	waitTicks(t, second, 1)

	unsubscribe()
	ticker.Tick()
	waitTicks(t, second, 1)

	select {
	case m := <-first:
		t.Errorf("unsubscribed listener received %s", m)
	default:
	}
}

func TestPagesDoNotShareState(t *testing.T) {
	a, tickerA := newTestPage(t)
	b, _ := newTestPage(t)
	ticks := make(chan landing.Metrics, 16)
	a.Subscribe(func(m landing.Metrics) { ticks <- m })

	for _, p := range []*landing.Page{a, b} {
		if err := p.Mount(context.Background()); err != nil {
			t.Fatal(err)
		}
		defer p.Unmount()
	}

	if _, err := a.ToggleMenu(); err != nil {
		t.Fatal(err)
	}
	tickerA.TickN(2)
	waitTicks(t, ticks, 2)

	if b.Snapshot().MenuOpen {
		t.Error("menu toggle leaked between pages")
	}
	if b.Snapshot().Ticks != 0 {
		t.Error("ticks leaked between pages")
	}
}
