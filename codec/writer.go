package codec

import "github.com/sceneproto/scene/value"

// Writer is the inverse of Reader: a group-start, group-end and
// value-emit primitive. Unlike Reader, all three methods are required —
// there is no smaller primitive to build them from.
type Writer interface {
	WriteStart() error
	WriteEnd() error
	WriteValue(v value.Value) error
}
