package scene

import (
	"io"

	"github.com/sceneproto/scene/codec/text"
	"github.com/sceneproto/scene/value"
)

// Event is one observed input event, ready to be relayed back to
// whatever sent the scene description. Only the fields relevant to Kind
// are meaningful: MotionX/MotionY for EventTypeMotion, KeyCode for
// EventTypeKey, Char for EventTypeText.
type Event struct {
	Binding          Binding
	Kind             EventType
	MotionX, MotionY float64
	KeyCode          int32
	Char             rune
}

// EncodeEvents writes a batch of events to w in text form: an outer
// group containing one (binding-id (event-kind ...payload)) pair per
// event, following the convention used everywhere else in the protocol
// that a group's first value identifies its kind. Keeping events in the
// same format family means the receiving side can parse them with the
// same reader it already has.
func EncodeEvents(w io.Writer, events []Event) error {
	tw := text.NewWriter(w)
	if err := tw.WriteStart(); err != nil {
		return err
	}
	for _, e := range events {
		if err := tw.WriteStart(); err != nil {
			return err
		}
		if err := tw.WriteValue(value.Int(e.Binding)); err != nil {
			return err
		}
		if err := tw.WriteStart(); err != nil {
			return err
		}
		if err := tw.WriteValue(e.Kind.Tag()); err != nil {
			return err
		}
		switch e.Kind {
		case EventTypeMotion:
			if err := tw.WriteValue(value.Vec2{X: e.MotionX, Y: e.MotionY}); err != nil {
				return err
			}
		case EventTypeKey:
			if err := tw.WriteValue(value.Int(e.KeyCode)); err != nil {
				return err
			}
		case EventTypeText:
			if err := tw.WriteValue(value.String(string(e.Char))); err != nil {
				return err
			}
		}
		if err := tw.WriteEnd(); err != nil {
			return err
		}
		if err := tw.WriteEnd(); err != nil {
			return err
		}
	}
	if err := tw.WriteEnd(); err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	// A batch is framed by the closing paren plus a newline.
	_, err := w.Write([]byte{'\n'})
	return err
}
