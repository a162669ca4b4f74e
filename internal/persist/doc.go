// Package persist serializes documents to a raster image plus JSON
// metadata and rebuilds them from that form.
//
// The pixel plane is stored as a lossless grayscale PNG; the metadata
// carries the grid geometry, font, polarity, character set, the text plane
// as (col,row,char) triples, and optionally the conversion configuration.
// The glyph plane is never persisted: it is derived state, recomputed from
// the pixels after load.
//
// Loading is atomic: any missing or malformed field fails with a
// *DeserializationError before any document is constructed, so no partial
// state ever escapes.
package persist
