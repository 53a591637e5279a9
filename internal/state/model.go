package state

import (
	"slices"

	"MisPaint/internal/geom"
	"MisPaint/internal/paint"
)

// Stroke is one continuous pointer drag. It records the tool it was made
// with, never the style: the style is resolved whenever the stroke is drawn.
type Stroke struct {
	ID     string       `json:"id"`
	Points []geom.Point `json:"points"`
	Tool   paint.Tool   `json:"tool"`
}

// Clone returns a copy that shares no memory with s.
func (s Stroke) Clone() Stroke {
	s.Points = slices.Clone(s.Points)
	return s
}

// Last returns the most recently recorded point.
func (s *Stroke) Last() (geom.Point, bool) {
	if len(s.Points) == 0 {
		return geom.Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

type OpType string

const (
	OpCommit   OpType = "commit"
	OpAppend   OpType = "append"
	OpSegment  OpType = "segment"
	OpUndo     OpType = "undo"
	OpRedo     OpType = "redo"
	OpClear    OpType = "clear"
	OpStyle    OpType = "style"
	OpSnapshot OpType = "snapshot"
)

// Op describes one change to a document, in the order it happened. Ops are
// what a document mirrors to its viewers.
type Op struct {
	Type OpType `json:"type"`

	// Stroke is set for commit and append.
	Stroke *Stroke `json:"stroke,omitempty"`

	// From, To and Tool describe a live preview segment.
	From *geom.Point `json:"from,omitempty"`
	To   *geom.Point `json:"to,omitempty"`
	Tool paint.Tool  `json:"tool,omitempty"`

	// Styles is set for style and snapshot.
	Styles *paint.Styles `json:"styles,omitempty"`

	// Strokes and Redo carry the full history in a snapshot.
	Strokes []Stroke `json:"strokes,omitempty"`
	Redo    []Stroke `json:"redo,omitempty"`

	Lamport uint64 `json:"lamport"`
	Site    string `json:"site"`
}
