package engine

import (
	"errors"
	"fmt"

	"MisPaint/internal/state"
)

// ErrBadOp is returned by Apply for ops that are malformed or of an unknown
// type.
var ErrBadOp = errors.New("engine: bad op")

// Snapshot returns the whole document state as a snapshot op: both history
// lists, both style slots and the active tool, stamped with the current
// lamport value.
func (e *Engine) Snapshot() state.Op {
	styles := e.styles
	return state.Op{
		Type:    state.OpSnapshot,
		Strokes: e.history.Strokes(),
		Redo:    e.history.RedoStrokes(),
		Styles:  &styles,
		Tool:    e.tool,
		Lamport: e.clock.Now(),
		Site:    e.clock.Site(),
	}
}

// Apply mirrors an op produced by another document onto this one. Ops this
// document produced itself, and ops older than what was already applied
// from their site, are skipped. A snapshot resets the document to the
// state it carries.
func (e *Engine) Apply(op state.Op) error {
	if op.Site == e.clock.Site() {
		return nil
	}
	if last, ok := e.seen[op.Site]; ok && op.Lamport <= last && op.Type != state.OpSnapshot {
		return nil
	}

	e.applying = true
	defer func() { e.applying = false }()

	switch op.Type {
	case state.OpCommit, state.OpAppend:
		if op.Stroke == nil {
			return e.reject(op, "missing stroke")
		}
		if op.Type == state.OpCommit {
			e.history.Commit(*op.Stroke)
		} else {
			e.history.Append(*op.Stroke)
		}
	case state.OpSegment:
		if op.From == nil || op.To == nil {
			return e.reject(op, "missing segment ends")
		}
		e.surface.DrawSegment(*op.From, *op.To, e.styles.For(op.Tool))
		e.changed()
	case state.OpUndo:
		e.history.Undo()
	case state.OpRedo:
		e.history.Redo()
	case state.OpClear:
		e.history.Clear()
	case state.OpStyle:
		if op.Styles == nil {
			return e.reject(op, "missing styles")
		}
		e.styles = *op.Styles
		e.tool = op.Tool
	case state.OpSnapshot:
		if op.Styles == nil {
			return e.reject(op, "missing styles")
		}
		e.styles = *op.Styles
		e.tool = op.Tool
		e.history.Restore(op.Strokes, op.Redo)
	default:
		return e.reject(op, "unknown type")
	}

	e.seen[op.Site] = op.Lamport
	return nil
}

func (e *Engine) reject(op state.Op, why string) error {
	Logger().Warn("rejected op", "type", string(op.Type), "site", op.Site, "lamport", op.Lamport, "reason", why)
	return fmt.Errorf("%w: %s op: %s", ErrBadOp, op.Type, why)
}
