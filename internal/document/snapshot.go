package document

// Snapshot is an independent deep copy of the undoable document state: the
// pixel bytes and the text plane. It never aliases live buffers, so history
// entries stay valid no matter what later edits do.
//
// The glyph plane is deliberately absent: it is derived state and is
// recomputed from the pixels after a restore.
type Snapshot struct {
	pixels []byte
	text   map[CellIndex]rune
}

// Snapshot captures the current undoable state.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		pixels: make([]byte, len(d.pixels)),
		text:   make(map[CellIndex]rune, len(d.text)),
	}
	copy(s.pixels, d.pixels)
	for k, v := range d.text {
		s.text[k] = v
	}
	return s
}

// Restore replaces the pixel and text planes with the snapshot's contents.
// The snapshot remains usable afterwards.
func (d *Document) Restore(s Snapshot) error {
	if len(s.pixels) != len(d.pixels) {
		return ErrPixelPlaneSize
	}
	copy(d.pixels, s.pixels)
	d.text = make(map[CellIndex]rune, len(s.text))
	for k, v := range s.text {
		d.text[k] = v
	}
	return nil
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		pixels: make([]byte, len(s.pixels)),
		text:   make(map[CellIndex]rune, len(s.text)),
	}
	copy(out.pixels, s.pixels)
	for k, v := range s.text {
		out.text[k] = v
	}
	return out
}
