// Package app wires the editor together: document, tools, history,
// conversion, rendering, and the terminal event loop.
//
// Everything that mutates the document runs on the event loop goroutine.
// The conversion coordinator works on its own goroutine and hands results
// back through a channel the loop selects on, so glyph updates are applied
// between events, never concurrently with them.
package app
