package state

// History is the linear undo/redo record of a document: the committed
// strokes in paint order and the strokes undone since the last commit, most
// recent last. The two lists never share a stroke.
//
// Every mutation that changes what is committed, except Append, ends with a
// call to the replay function so the raster can be rebuilt from scratch.
type History struct {
	committed []Stroke
	redo      []Stroke
	replay    func(strokes []Stroke)
}

// NewHistory returns an empty history that calls replay with the committed
// strokes after each commit, undo, redo and clear. replay may be nil.
func NewHistory(replay func(strokes []Stroke)) *History {
	return &History{replay: replay}
}

// Commit appends s, discards the redo stack and replays. Strokes without
// points are ignored.
func (h *History) Commit(s Stroke) {
	if len(s.Points) == 0 {
		return
	}
	h.committed = append(h.committed, s.Clone())
	h.redo = nil
	h.doReplay()
}

// Append adds s to the committed strokes without touching the redo stack and
// without replaying. It is the cheap path taken for clicks and taps.
func (h *History) Append(s Stroke) {
	if len(s.Points) == 0 {
		return
	}
	h.committed = append(h.committed, s.Clone())
}

// ClearRedo discards the redo stack.
func (h *History) ClearRedo() {
	h.redo = nil
}

// Undo moves the last committed stroke to the redo stack. It reports false
// and does nothing when there is nothing to undo.
func (h *History) Undo() bool {
	n := len(h.committed)
	if n == 0 {
		return false
	}
	h.redo = append(h.redo, h.committed[n-1])
	h.committed = h.committed[:n-1]
	h.doReplay()
	return true
}

// Redo moves the last undone stroke back to the committed list. It reports
// false and does nothing when the redo stack is empty.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	h.committed = append(h.committed, h.redo[n-1])
	h.redo = h.redo[:n-1]
	h.doReplay()
	return true
}

// Clear empties both lists and replays nothing, leaving a blank surface.
func (h *History) Clear() {
	h.committed = nil
	h.redo = nil
	h.doReplay()
}

// Restore replaces both lists, as when loading a mirrored snapshot, and
// replays.
func (h *History) Restore(committed, redo []Stroke) {
	h.committed = cloneStrokes(committed)
	h.redo = cloneStrokes(redo)
	h.doReplay()
}

// Replay rebuilds the raster from the committed strokes without changing
// the history.
func (h *History) Replay() {
	h.doReplay()
}

// Strokes returns a deep copy of the committed strokes, oldest first.
func (h *History) Strokes() []Stroke {
	return cloneStrokes(h.committed)
}

// RedoStrokes returns a deep copy of the redo stack, most recently undone
// last.
func (h *History) RedoStrokes() []Stroke {
	return cloneStrokes(h.redo)
}

func (h *History) Len() int     { return len(h.committed) }
func (h *History) RedoLen() int { return len(h.redo) }

func (h *History) doReplay() {
	if h.replay != nil {
		h.replay(h.committed)
	}
}

func cloneStrokes(in []Stroke) []Stroke {
	if len(in) == 0 {
		return nil
	}
	out := make([]Stroke, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
