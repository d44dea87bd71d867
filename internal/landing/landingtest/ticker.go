// Package landingtest provides a manually driven ticker for testing code that
// runs a landing.Animator.
package landingtest

import (
	"sync"
	"time"

	"github.com/grayman/dealflows/internal/landing"
)

// sendTimeout bounds how long Tick waits for the animator to receive
const sendTimeout = 2 * time.Second

// ManualTicker is a landing.Ticker that only fires when Tick is called
type ManualTicker struct {
	c        chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	created int
}

// NewManualTicker returns an idle ticker
func NewManualTicker() *ManualTicker {
	return &ManualTicker{
		c:       make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

// Func returns a landing.TickerFunc that hands out this ticker
func (m *ManualTicker) Func() landing.TickerFunc {
	return func(time.Duration) landing.Ticker {
		m.mu.Lock()
		m.created++
		m.mu.Unlock()
		return m
	}
}

// C implements landing.Ticker
func (m *ManualTicker) C() <-chan time.Time { return m.c }

// Stop implements landing.Ticker
func (m *ManualTicker) Stop() {
	m.stopOnce.Do(func() { close(m.stopped) })
}

// Stopped reports whether the consumer released the ticker
func (m *ManualTicker) Stopped() bool {
	select {
	case <-m.stopped:
		return true
	default:
		return false
	}
}

// Created returns how many times the ticker was acquired
func (m *ManualTicker) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// Tick delivers one tick. It returns false if the ticker was stopped or
// nobody received the tick in time.
func (m *ManualTicker) Tick() bool {
	select {
	case <-m.stopped:
		return false
	default:
	}
	select {
	case m.c <- time.Now():
		return true
	case <-m.stopped:
		return false
	case <-time.After(sendTimeout):
		return false
	}
}

// TickN delivers up to n ticks and returns how many were received
func (m *ManualTicker) TickN(n int) int {
	for i := 0; i < n; i++ {
		if !m.Tick() {
			return i
		}
	}
	return n
}
