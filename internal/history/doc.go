// Package history provides a bounded undo/redo stack of full document
// snapshots.
//
// Snapshots are complete deep copies rather than diffs. That trades memory
// for determinism: a restore can never be corrupted by a missed inverse
// operation, and entries stay valid no matter what the live document does.
package history
