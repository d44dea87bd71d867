package server

import (
	"context"
	"testing"
	"time"

	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/landing/landingtest"
)

func newTestRegistry(t *testing.T, ttl time.Duration) (*pageRegistry, *time.Time) {
	t.Helper()
	ticker := landingtest.NewManualTicker()
	r := newPageRegistry(ttl, landing.WithAnimatorOptions(landing.WithTicker(ticker.Func())))

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	t.Cleanup(func() { r.closeAll("test_cleanup") })
	return r, &now
}

func TestNewPageRegistryDefaultTTL(t *testing.T) {
	r := newPageRegistry(0)
	if r.ttl != DefaultPageTTL {
		t.Errorf("ttl = %v, want %v", r.ttl, DefaultPageTTL)
	}
	if got := r.janitorInterval(); got != DefaultPageTTL/2 {
		t.Errorf("janitorInterval() = %v, want %v", got, DefaultPageTTL/2)
	}

	short := newPageRegistry(time.Second)
	if got := short.janitorInterval(); got != time.Second {
		t.Errorf("janitorInterval() = %v, want 1s floor", got)
	}
}

func TestRegistryCreateGet(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)

	id, page, err := r.create(context.Background())
	if err != nil {
		t.Fatalf("create() error = %v", err)
	}
	if !page.Mounted() {
		t.Error("created page should be mounted")
	}

	got, err := r.get(id)
	if err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if got != page {
		t.Error("get() returned a different page")
	}

	if _, err := r.get("missing"); err != errPageNotFound {
		t.Errorf("get(missing) error = %v, want errPageNotFound", err)
	}
}

func TestRegistryReap(t *testing.T) {
	r, now := newTestRegistry(t, time.Minute)

	idle, idlePage, _ := r.create(context.Background())
	busy, busyPage, _ := r.create(context.Background())
	if _, err := r.attach(busy); err != nil {
		t.Fatalf("attach() error = %v", err)
	}

	*now = now.Add(30 * time.Second)
	if n := r.reap(*now); n != 0 {
		t.Errorf("reap() before ttl removed %d pages", n)
	}

	*now = now.Add(2 * time.Minute)
	if n := r.reap(*now); n != 1 {
		t.Errorf("reap() removed %d pages, want 1", n)
	}

	if _, err := r.get(idle); err == nil {
		t.Error("idle page still registered")
	}
	if idlePage.Mounted() {
		t.Error("reaped page still mounted")
	}
	if _, err := r.get(busy); err != nil {
		t.Error("page with an open socket was reaped")
	}
	if !busyPage.Mounted() {
		t.Error("page with an open socket was unmounted")
	}
}

func TestRegistryGetRefreshesLastSeen(t *testing.T) {
	r, now := newTestRegistry(t, time.Minute)
	id, _, _ := r.create(context.Background())

	*now = now.Add(50 * time.Second)
	if _, err := r.get(id); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(50 * time.Second)
	if n := r.reap(*now); n != 0 {
		t.Errorf("recently used page was reaped")
	}
}

func TestRegistryDetach(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)
	id, page, _ := r.create(context.Background())

	for i := 0; i < 2; i++ {
		if _, err := r.attach(id); err != nil {
			t.Fatalf("attach() error = %v", err)
		}
	}

	r.detach(id)
	if !page.Mounted() || r.len() != 1 {
		t.Fatal("page removed while a socket is still open")
	}

	r.detach(id)
	if page.Mounted() {
		t.Error("page still mounted after last socket closed")
	}
	if r.len() != 0 {
		t.Errorf("len() = %d, want 0", r.len())
	}

	// Unknown ids are ignored
	r.detach(id)
}

func TestRegistryCloseAll(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)

	var pages []*landing.Page
	for i := 0; i < 3; i++ {
		_, p, err := r.create(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		pages = append(pages, p)
	}

	if n := r.closeAll("test"); n != 3 {
		t.Errorf("closeAll() = %d, want 3", n)
	}
	for i, p := range pages {
		if p.Mounted() {
			t.Errorf("page %d still mounted", i)
		}
	}
	if r.remove("anything", "test") {
		t.Error("remove() on empty registry reported success")
	}
}

func TestRunJanitorStopsOnCancel(t *testing.T) {
	r := newPageRegistry(time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.runJanitor(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
