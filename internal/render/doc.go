// Package render composes the document's layers into displayable frames.
//
// The compositor is stateless: every call renders from scratch out of the
// document, the optional preview mask, and the overlay flags. Layer order
// is fixed: polarity background, pixel plane at the configured opacity
// (forced opaque during a gesture), preview merged by per-channel maximum,
// optional grid lines, normalized selection highlight, and the cursor
// indicator. The character planes are composited as a separate overlay.
package render
