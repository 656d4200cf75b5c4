package scene

import "github.com/sceneproto/scene/value"

// Node kind tags.
var (
	TagWidget = value.MakeTag('W', 'D', 'G', 'T')
	TagGroup  = value.MakeTag('G', 'R', 'U', 'P')
	TagGrid   = value.MakeTag('G', 'R', 'I', 'D')
	TagModel  = value.MakeTag('M', 'O', 'D', 'L')
	TagText   = value.MakeTag('T', 'E', 'X', 'T')
)

// Shape/Path sub-tree tags.
var (
	TagShape  = value.MakeTag('S', 'H', 'A', 'P')
	TagPaths  = value.MakeTag('P', 'T', 'H', 'S')
	TagColour = value.MakeTag('C', 'O', 'L', 'R')
	TagPoints = value.MakeTag('P', 'N', 'T', 'S')
)

// Widget attribute sub-group tags.
var (
	TagAttrs    = value.MakeTag('A', 'T', 'T', 'R')
	TagBorder   = value.MakeTag('B', 'R', 'D', 'R')
	TagBindings = value.MakeTag('B', 'N', 'D', 'S')
	TagChildren = value.MakeTag('C', 'H', 'L', 'D')
)

// EventType tags, used on the wire for a binding's event kind. The Text
// *event* gets its own tag, TXTE, rather than sharing TEXT with the
// Text node kind: the two never collide at the wire level (one appears
// as a node's kind tag, the other inside a bindings pair) but keeping
// the closed sets disjoint makes that impossible to get wrong.
var (
	EventDown              = value.MakeTag('D', 'O', 'W', 'N')
	EventUp                = value.MakeTag('U', 'P', '_', '_')
	EventMotion            = value.MakeTag('M', 'O', 'T', 'N')
	EventKey               = value.MakeTag('K', 'E', 'Y', '_')
	EventText              = value.MakeTag('T', 'X', 'T', 'E')
	EventKeyboardFocusLost = value.MakeTag('K', 'L', 'S', 'T')
)

// IsNodeKind reports whether t is one of the five closed node kind tags.
func IsNodeKind(t value.Tag) bool {
	switch t {
	case TagWidget, TagGroup, TagGrid, TagModel, TagText:
		return true
	}
	return false
}
