// Package convert schedules pixel-to-character conversion.
//
// The Coordinator bridges the document's pixel plane to its glyph plane
// through a Matcher, coalescing rapid requests behind a debounce timer and
// guaranteeing single-flight execution: at most one conversion runs at a
// time, and a request arriving mid-run replaces the pending one instead of
// starting a second.
//
// The matching algorithm itself is behind the Matcher interface and must be
// deterministic: identical pixels and configuration produce identical
// output.
package convert
