// Package tui renders the landing page in a terminal with Bubble Tea.
//
// PageModel is the preview host. It keeps the same state as landing.Page (a
// menu flag, the three counters and the contact form) but advances the
// counters with tea.Tick messages instead of a goroutine, so the model stays a
// plain value.
//
// # Mount Generations
//
// Each mount (start, or "r" to reload) bumps a generation number and every
// tick message carries the generation that scheduled it. Ticks from an older
// generation, ticks after quitting and ticks after all counters reach their
// caps are dropped without scheduling another, which is the terminal
// equivalent of cancelling the interval on unmount.
//
// # Keys
//
// While browsing, "m" toggles the menu, "tab" enters the contact form and
// "q" quits. In the form, "tab"/"shift+tab" move between fields, left/right
// pick the interest, "ctrl+s" (or enter on Submit) submits and "esc" goes
// back to browsing.
//
// DiscoveryModel is a small browser for servers advertised over mDNS, used by
// "dealflows discover".
package tui
