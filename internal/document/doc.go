// Package document owns the layered editing state of a canvas.
//
// A document is three stacked planes over one fixed cell grid:
//
//   - pixel plane: a dense byte grid the drawing tools paint into
//   - glyph plane: the per-cell best-match characters derived from the
//     pixels, only ever replaced wholesale by the conversion coordinator
//   - text plane: sparse user-typed character overrides that take priority
//     over the glyph plane
//
// plus an optional selection rectangle and an optional cursor.
//
// The document is the single owner of its buffers. Tools and the renderer
// go through accessor methods and must not retain buffer aliases across
// gestures. All coordinate-taking methods clamp out-of-range input to the
// valid bounds instead of failing.
package document
