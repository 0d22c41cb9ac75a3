package stream

import (
	"fmt"
	"io"
)

// undoBuffer holds everything written since the last event line so that
// event can still be retracted. Only the immediately preceding event is
// ever retracted, so one segment is enough.
type undoBuffer struct {
	w       io.Writer
	pending []string
}

func newUndoBuffer(w io.Writer) *undoBuffer {
	return &undoBuffer{w: w}
}

func (b *undoBuffer) Write(s string) {
	b.pending = append(b.pending, s)
}

// Commit writes the pending segment through. Call it before starting a new
// retractable event.
func (b *undoBuffer) Commit() error {
	for _, s := range b.pending {
		if _, err := io.WriteString(b.w, s); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	b.pending = b.pending[:0]
	return nil
}

// Retract drops the pending segment: the last event line and any
// passthrough lines that followed it.
func (b *undoBuffer) Retract() {
	b.pending = b.pending[:0]
}
