// Package landing implements the interactive state of the GrayMan Dealflows
// landing page.
//
// The page is three independent state machines held by one container:
//
//   - MenuState: the collapsible navigation menu (a single open/closed flag)
//   - Metrics and Animator: three counters that count up to fixed caps on a
//     shared recurring tick
//   - ContactForm: the contact form draft and its acknowledgment message
//
// Page owns one of each per mount. Hosts (the HTTP server and the terminal
// preview) create a Page, Mount it, render Snapshot values and Unmount it when
// the visitor goes away.
//
// # Animation
//
// Counter animation is a pure step function applied once per tick:
//
//	m := landing.NewMetrics()
//	for i := 0; i < 60; i++ {
//	    m = landing.Advance(m)
//	}
//	// deals=60 investors=60 funds=60
//
// The Animator owns the recurring ticker. It is acquired in Start and
// released in Stop; Stop blocks until the tick loop has exited, so no tick
// or tick listener runs after Stop returns.
//
// # Contact Form
//
// Submissions are validated in the handler itself (required name, email and
// message, email syntax, known interest). A valid submission sets a fixed
// acknowledgment message and clears the draft. Nothing is sent anywhere.
//
// # Thread Safety
//
// Page and Animator are safe for concurrent use. All mutation of one page is
// serialized, so a tick and a form submission never interleave.
package landing
