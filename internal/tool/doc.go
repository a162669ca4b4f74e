// Package tool routes pointer and keyboard events to the active editing
// tool and manages per-gesture edit batching.
//
// The tool set is closed: freehand paint, straight line, rectangle outline,
// ellipse outline, region eraser, text entry, and rectangular select. Every
// tool implements the mandatory pointer protocol; keyboard, lifecycle and
// preview hooks are explicitly nullable and the dispatcher checks for nil
// rather than inspecting concrete types.
//
// Drawing gestures are batched: pointer-down opens a batch, moves extend
// it, and pointer-up commits any preview, clears typed overrides under the
// drawn pixels, and pushes exactly one undo checkpoint no matter how many
// move events occurred. Text entry is the exception: each committed
// character edit is its own checkpoint.
package tool
