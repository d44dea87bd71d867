package landing

import (
	"context"
	"sync"
	"time"
)

// Snapshot is an immutable view of a page's state for rendering
type Snapshot struct {
	MenuOpen  bool         `json:"menu_open"`
	Metrics   Metrics      `json:"metrics"`
	Saturated bool         `json:"saturated"`
	Ticks     int          `json:"ticks"`
	Status    string       `json:"status,omitempty"`
	HasStatus bool         `json:"has_status"`
	Draft     ContactInput `json:"-"`
	Mounted   bool         `json:"mounted"`
}

// PageOption configures a Page
type PageOption func(*pageOptions)

type pageOptions struct {
	animator []AnimatorOption
}

// WithAnimatorOptions passes options through to the page's Animator
func WithAnimatorOptions(opts ...AnimatorOption) PageOption {
	return func(o *pageOptions) {
		o.animator = append(o.animator, opts...)
	}
}

// WithTickInterval sets the counter tick period
func WithTickInterval(d time.Duration) PageOption {
	return WithAnimatorOptions(WithInterval(d))
}

// Page is the page-level container. It owns one menu, one animator and one
// contact form; nothing is shared between pages.
type Page struct {
	mu        sync.Mutex
	menu      MenuState
	form      ContactForm
	mounted   bool
	unmounted bool

	animator *Animator

	listenerMu sync.Mutex
	listeners  map[int]func(Metrics)
	nextID     int
}

// NewPage creates an unmounted page with every state slice at its initial value
func NewPage(opts ...PageOption) *Page {
	var o pageOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := &Page{listeners: make(map[int]func(Metrics))}
	animatorOpts := append(o.animator, WithTickListener(p.broadcast))
	p.animator = NewAnimator(animatorOpts...)
	return p
}

// Mount starts the counter animation
func (p *Page) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unmounted {
		return ErrPageUnmounted
	}
	if err := p.animator.Start(ctx); err != nil {
		return err
	}
	p.mounted = true
	return nil
}

// Unmount stops the animation and freezes the page. When it returns no tick
// and no metrics listener will run again. Safe to call more than once and
// before Mount. Must not be called from a metrics listener.
func (p *Page) Unmount() {
	p.mu.Lock()
	p.unmounted = true
	p.mounted = false
	p.mu.Unlock()

	p.animator.Stop()

	p.listenerMu.Lock()
	p.listeners = make(map[int]func(Metrics))
	p.listenerMu.Unlock()
}

// Mounted reports whether the page is mounted and not yet unmounted
func (p *Page) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}

// ToggleMenu flips the navigation menu and returns the new state
func (p *Page) ToggleMenu() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unmounted {
		return p.menu.IsOpen(), ErrPageUnmounted
	}
	return p.menu.Toggle(), nil
}

// SubmitContact runs the contact form handler. See ContactForm.Submit.
func (p *Page) SubmitContact(in ContactInput) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unmounted {
		return ErrPageUnmounted
	}
	return p.form.Submit(in)
}

// Snapshot returns the current state of every slice
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	menuOpen := p.menu.IsOpen()
	status, hasStatus := p.form.Status()
	draft := p.form.Draft()
	mounted := p.mounted
	p.mu.Unlock()

	metrics, ticks := p.animator.state()
	return Snapshot{
		MenuOpen:  menuOpen,
		Metrics:   metrics,
		Saturated: metrics.Saturated(),
		Ticks:     ticks,
		Status:    status,
		HasStatus: hasStatus,
		Draft:     draft,
		Mounted:   mounted,
	}
}

// Subscribe registers fn to receive counter values after every tick. fn runs
// on the animation goroutine and must not block or call Unmount. The returned
// func removes the listener.
func (p *Page) Subscribe(fn func(Metrics)) (unsubscribe func()) {
	p.listenerMu.Lock()
	defer p.listenerMu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn

	return func() {
		p.listenerMu.Lock()
		delete(p.listeners, id)
		p.listenerMu.Unlock()
	}
}

func (p *Page) broadcast(m Metrics) {
	p.listenerMu.Lock()
	fns := make([]func(Metrics), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.listenerMu.Unlock()

	for _, fn := range fns {
		fn(m.Clone())
	}
}
