package scene

import (
	"bytes"
	"testing"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/codec/text"
	"github.com/sceneproto/scene/value"
)

func TestEncodeEventsProducesOneGroupPerEvent(t *testing.T) {
	events := []Event{
		{Binding: 1, Kind: EventTypeDown},
		{Binding: 2, Kind: EventTypeMotion, MotionX: 3, MotionY: 4},
		{Binding: 3, Kind: EventTypeKey, KeyCode: 13},
		{Binding: 4, Kind: EventTypeText, Char: 'x'},
	}
	var buf bytes.Buffer
	if err := EncodeEvents(&buf, events); err != nil {
		t.Fatalf("EncodeEvents: %v", err)
	}

	r := codec.New(text.NewReader(&buf))
	if err := r.ExpectStart(); err != nil {
		t.Fatalf("ExpectStart (outer group): %v", err)
	}
	for _, e := range events {
		if err := r.ExpectStart(); err != nil {
			t.Fatalf("ExpectStart (event group): %v", err)
		}
		binding, err := r.ExpectInt()
		if err != nil {
			t.Fatalf("ExpectInt (binding): %v", err)
		}
		if Binding(binding) != e.Binding {
			t.Errorf("binding = %d, want %d", binding, e.Binding)
		}
		if err := r.ExpectStart(); err != nil {
			t.Fatalf("ExpectStart (kind group): %v", err)
		}
		tag, err := r.ExpectTag()
		if err != nil {
			t.Fatalf("ExpectTag: %v", err)
		}
		if tag != e.Kind.Tag() {
			t.Errorf("kind tag = %s, want %s", tag, e.Kind.Tag())
		}
		switch e.Kind {
		case EventTypeMotion:
			v, err := r.ExpectVec2()
			if err != nil || v.X != e.MotionX || v.Y != e.MotionY {
				t.Errorf("motion payload = %+v, %v", v, err)
			}
		case EventTypeKey:
			k, err := r.ExpectInt()
			if err != nil || k != e.KeyCode {
				t.Errorf("key payload = %v, %v", k, err)
			}
		case EventTypeText:
			s, err := r.ExpectString()
			if err != nil || s != string(e.Char) {
				t.Errorf("text payload = %q, %v", s, err)
			}
		}
		if err := r.ExpectEnd(); err != nil { // kind group
			t.Fatalf("ExpectEnd (kind group): %v", err)
		}
		if err := r.ExpectEnd(); err != nil { // event group
			t.Fatalf("ExpectEnd (event group): %v", err)
		}
	}
	if err := r.ExpectEnd(); err != nil { // outer group
		t.Fatalf("ExpectEnd (outer group): %v", err)
	}
}

func TestEventTypeTagsAreDisjointFromNodeKindTags(t *testing.T) {
	eventTags := []value.Tag{EventDown, EventUp, EventMotion, EventKey, EventText, EventKeyboardFocusLost}
	for _, et := range eventTags {
		if IsNodeKind(et) {
			t.Errorf("event tag %s is also a node-kind tag", et)
		}
	}
	if EventText == TagText {
		t.Errorf("EventText and TagText must stay distinct tags")
	}
}
