// Package paint defines the painting tools and the per-tool paint styles the
// rasterizer resolves at draw time.
package paint

import "fmt"

// Tool is the kind of tool a stroke was made with.
type Tool int

const (
	Brush Tool = iota
	Eraser
	Fill
	Picker
)

var toolNames = [...]string{
	Brush:  "brush",
	Eraser: "eraser",
	Fill:   "fill",
	Picker: "picker",
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{Brush, Eraser, Fill, Picker}
}

func (t Tool) Valid() bool {
	return t >= Brush && t <= Picker
}

func (t Tool) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool maps a tool name back to its Tool.
func ParseTool(s string) (Tool, error) {
	for t, name := range toolNames {
		if name == s {
			return Tool(t), nil
		}
	}
	return Brush, fmt.Errorf("unknown tool %q", s)
}

func (t Tool) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tool %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
