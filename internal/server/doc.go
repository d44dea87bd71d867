// Package server hosts the landing page over HTTP.
//
// Every load of / mounts a new landing.Page under a random id and renders it
// server side. Later requests address that page instance, so reloading / is a
// fresh mount while form posts keep the same page.
//
// # Routes
//
//	GET  /                 mount a page and render it
//	GET  /p/{id}           render an existing page (unknown ids redirect to /)
//	POST /p/{id}/menu      toggle the navigation menu
//	POST /p/{id}/contact   submit the contact form
//	GET  /p/{id}/state     JSON snapshot of the page
//	GET  /p/{id}/ws        websocket stream of counter values
//	GET  /healthz          liveness
//
// The menu and contact posts answer with a 303 back to the page for plain
// form submissions, or with JSON when the request sends
// "Accept: application/json". The embedded script uses the JSON form so the
// counter socket stays open. A rejected contact submission is rendered again
// with status 422 and the visitor's values kept.
//
// # Counter Stream
//
// The socket sends a "snapshot" frame on connect and a "metrics" frame after
// each tick:
//
//	{"type":"metrics","metrics":[{"name":"deals","current":12,"cap":150},...],"saturated":false}
//
// A slow client only receives the newest values. When the last socket of a
// page closes, the page is unmounted and forgotten.
//
// # Page Lifetime
//
// Pages without a socket that see no request for the configured TTL are
// unmounted by a janitor goroutine. Shutdown closes open sockets and
// unmounts every page, so no counter ticks once it returns.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{Port: 8080, LogLevel: "info"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until SIGINT/SIGTERM or a listener error
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
package server
