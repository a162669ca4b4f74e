// Package raster provides deterministic integer rasterization primitives.
//
// Each generator returns an iter.Seq[Point]: a lazy, finite, restartable
// sequence of pixel coordinates that is a pure function of its numeric
// arguments. Iterating the same sequence twice yields the same coordinates
// in the same order. Generators never clip; callers are expected to clamp
// or discard out-of-range coordinates.
package raster
