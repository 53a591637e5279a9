package state

import (
	"github.com/google/uuid"
)

// Clock stamps the ops of one document with its site id and a lamport
// counter. It is owned by the engine thread.
type Clock struct {
	site    string
	lamport uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

func (c *Clock) Site() string {
	return c.site
}

// Stamp assigns the next lamport value and the site id to op.
func (c *Clock) Stamp(op Op) Op {
	c.lamport++
	op.Lamport = c.lamport
	op.Site = c.site
	return op
}

// Now returns the last assigned lamport value.
func (c *Clock) Now() uint64 {
	return c.lamport
}

// NewStrokeID returns a fresh stroke identifier.
func NewStrokeID() string {
	return uuid.NewString()
}
