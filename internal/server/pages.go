package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/logging"
)

// DefaultPageTTL is how long a page with no open socket survives without requests
const DefaultPageTTL = 10 * time.Minute

// errPageNotFound is returned for unknown or already removed page ids
var errPageNotFound = errors.New("page not found")

type pageEntry struct {
	page     *landing.Page
	lastSeen time.Time
	sockets  int
}

// pageRegistry maps page ids to mounted pages. Each GET / mounts a fresh page
// and nothing is shared between entries.
type pageRegistry struct {
	ttl  time.Duration
	opts []landing.PageOption
	now  func() time.Time

	mu    sync.Mutex
	pages map[string]*pageEntry
}

func newPageRegistry(ttl time.Duration, opts ...landing.PageOption) *pageRegistry {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &pageRegistry{
		ttl:   ttl,
		opts:  opts,
		now:   time.Now,
		pages: make(map[string]*pageEntry),
	}
}

// create mounts a new page and registers it under a fresh id
func (r *pageRegistry) create(ctx context.Context) (string, *landing.Page, error) {
	page := landing.NewPage(r.opts...)
	if err := page.Mount(ctx); err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.pages[id] = &pageEntry{page: page, lastSeen: r.now()}
	r.mu.Unlock()

	logging.LogPageEvent(id, "mounted")
	return id, page, nil
}

// get returns the page and marks it as recently used
func (r *pageRegistry) get(id string) (*landing.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pages[id]
	if !ok {
		return nil, errPageNotFound
	}
	e.lastSeen = r.now()
	return e.page, nil
}

// attach records an open socket for the page
func (r *pageRegistry) attach(id string) (*landing.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pages[id]
	if !ok {
		return nil, errPageNotFound
	}
	e.sockets++
	e.lastSeen = r.now()
	return e.page, nil
}

// detach drops a socket. The page is unmounted when its last socket closes.
func (r *pageRegistry) detach(id string) {
	r.mu.Lock()
	e, ok := r.pages[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	e.sockets--
	e.lastSeen = r.now()
	last := e.sockets <= 0
	if last {
		delete(r.pages, id)
	}
	r.mu.Unlock()

	if last {
		e.page.Unmount()
		logging.LogPageEvent(id, "unmounted", zap.String("reason", "last_socket_closed"))
	}
}

// remove unmounts and forgets a page
func (r *pageRegistry) remove(id, reason string) bool {
	r.mu.Lock()
	e, ok := r.pages[id]
	if ok {
		delete(r.pages, id)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	e.page.Unmount()
	logging.LogPageEvent(id, "unmounted", zap.String("reason", reason))
	return true
}

// reap unmounts pages with no socket that have been idle longer than ttl
func (r *pageRegistry) reap(now time.Time) int {
	var expired []string

	r.mu.Lock()
	for id, e := range r.pages {
		if e.sockets == 0 && now.Sub(e.lastSeen) > r.ttl {
			expired = append(expired, id)
		}
	}
	r.mu.Unlock()

	n := 0
	for _, id := range expired {
		if r.remove(id, "idle") {
			n++
		}
	}
	return n
}

func (r *pageRegistry) janitorInterval() time.Duration {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// runJanitor reaps idle pages until ctx is cancelled
func (r *pageRegistry) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(r.janitorInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.reap(r.now()); n > 0 {
				logging.Debug("Reaped idle pages", zap.Int("count", n))
			}
		}
	}
}

// closeAll unmounts every page and returns how many there were
func (r *pageRegistry) closeAll(reason string) int {
	r.mu.Lock()
	entries := r.pages
	r.pages = make(map[string]*pageEntry)
	r.mu.Unlock()

	for id, e := range entries {
		e.page.Unmount()
		logging.LogPageEvent(id, "unmounted", zap.String("reason", reason))
	}
	return len(entries)
}

func (r *pageRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}
