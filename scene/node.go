// Package scene implements the scene-graph protocol layered on top of
// the token stream: the five node variants, their serialization, the
// in-place patch algorithm, and the event encoder.
package scene

import "github.com/sceneproto/scene/value"

// EventType is one of the closed set of input event kinds a Widget can
// bind to.
type EventType int

const (
	EventTypeDown EventType = iota
	EventTypeUp
	EventTypeMotion
	EventTypeKey
	EventTypeText
	EventTypeKeyboardFocusLost
)

func (e EventType) Tag() value.Tag {
	switch e {
	case EventTypeDown:
		return EventDown
	case EventTypeUp:
		return EventUp
	case EventTypeMotion:
		return EventMotion
	case EventTypeKey:
		return EventKey
	case EventTypeText:
		return EventText
	case EventTypeKeyboardFocusLost:
		return EventKeyboardFocusLost
	default:
		return 0
	}
}

func (e EventType) String() string {
	switch e {
	case EventTypeDown:
		return "Down"
	case EventTypeUp:
		return "Up"
	case EventTypeMotion:
		return "Motion"
	case EventTypeKey:
		return "Key"
	case EventTypeText:
		return "Text"
	case EventTypeKeyboardFocusLost:
		return "KeyboardFocusLost"
	default:
		return "EventType(?)"
	}
}

// EventTypeFromTag maps a wire tag back to an EventType, reporting
// false for any tag outside the closed set.
func EventTypeFromTag(t value.Tag) (EventType, bool) {
	switch t {
	case EventDown:
		return EventTypeDown, true
	case EventUp:
		return EventTypeUp, true
	case EventMotion:
		return EventTypeMotion, true
	case EventKey:
		return EventTypeKey, true
	case EventText:
		return EventTypeText, true
	case EventKeyboardFocusLost:
		return EventTypeKeyboardFocusLost, true
	default:
		return 0, false
	}
}

// Binding is the identifier a Widget attaches to one of its event
// bindings; it is opaque to the protocol, only ever echoed back.
type Binding int32

// EventBinding is one (EventType, Binding) pair in a Widget's ordered
// bindings list.
type EventBinding struct {
	Event   EventType
	Binding Binding
}

// Node is any of the five closed scene node variants.
type Node interface {
	Kind() value.Tag
	sealedNode()
}

// Border is a Widget's optional border sub-group. A zero-value Border
// (Width == 0) is written as an empty BRDR group.
type Border struct {
	Width  int32
	Colour value.Vec3
}

// Widget is the only node variant with bindings and an optional border.
type Widget struct {
	Location   value.Vec2
	Size       value.Vec2
	FillColour value.Vec4
	Border     Border
	Bindings   []EventBinding
	Children   []Node
}

func (*Widget) Kind() value.Tag { return TagWidget }
func (*Widget) sealedNode()     {}

// Group is a plain positioned container.
type Group struct {
	Location value.Vec2
	Children []Node
}

func (*Group) Kind() value.Tag { return TagGroup }
func (*Group) sealedNode()     {}

// Grid renders as a set of evenly spaced lines within Bounds.
type Grid struct {
	Bounds   value.Box2
	CellSize value.Vec2
	Offset   value.Vec2
	Colour   value.Vec3
}

func (*Grid) Kind() value.Tag { return TagGrid }
func (*Grid) sealedNode()     {}

// Model positions a Shape built from one or more Paths.
type Model struct {
	Location value.Vec2
	Scale    float64
	Shape    Shape
}

func (*Model) Kind() value.Tag { return TagModel }
func (*Model) sealedNode()     {}

// Text renders a string at a location, size and colour.
type Text struct {
	Location value.Vec2
	Size     float64
	Colour   value.Vec3
	Value    string
}

func (*Text) Kind() value.Tag { return TagText }
func (*Text) sealedNode()     {}

// NewNode default-constructs a zero-value node of the given kind,
// matching the patch algorithm's "default-construct and populate"
// behavior on a variant mismatch. It returns nil for a kind outside the
// closed set.
func NewNode(kind value.Tag) Node {
	switch kind {
	case TagWidget:
		return &Widget{}
	case TagGroup:
		return &Group{}
	case TagGrid:
		return &Grid{}
	case TagModel:
		return &Model{}
	case TagText:
		return &Text{}
	default:
		return nil
	}
}
