package scene

import (
	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

// WriteNode writes n as a group whose first value is its kind tag,
// followed by its fixed positional sequence of sub-groups/values.
func WriteNode(w codec.Writer, n Node) error {
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(n.Kind()); err != nil {
		return err
	}
	var err error
	switch nn := n.(type) {
	case *Widget:
		err = writeWidgetBody(w, nn)
	case *Group:
		err = writeGroupBody(w, nn)
	case *Grid:
		err = writeGridBody(w, nn)
	case *Model:
		err = writeModelBody(w, nn)
	case *Text:
		err = writeTextBody(w, nn)
	}
	if err != nil {
		return err
	}
	return w.WriteEnd()
}

func writeWidgetBody(w codec.Writer, wd *Widget) error {
	// attrs
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagAttrs); err != nil {
		return err
	}
	if err := w.WriteValue(wd.Location); err != nil {
		return err
	}
	if err := w.WriteValue(wd.Size); err != nil {
		return err
	}
	if err := w.WriteValue(wd.FillColour); err != nil {
		return err
	}
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagBorder); err != nil {
		return err
	}
	if wd.Border.Width != 0 {
		if err := w.WriteValue(value.Int(wd.Border.Width)); err != nil {
			return err
		}
		if err := w.WriteValue(wd.Border.Colour); err != nil {
			return err
		}
	}
	if err := w.WriteEnd(); err != nil {
		return err
	}
	if err := w.WriteEnd(); err != nil { // attrs
		return err
	}

	// bindings
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagBindings); err != nil {
		return err
	}
	for _, b := range wd.Bindings {
		if err := w.WriteValue(b.Event.Tag()); err != nil {
			return err
		}
		if err := w.WriteValue(value.Int(b.Binding)); err != nil {
			return err
		}
	}
	if err := w.WriteEnd(); err != nil {
		return err
	}

	// children
	return writeChildrenGroup(w, wd.Children)
}

func writeGroupBody(w codec.Writer, g *Group) error {
	if err := w.WriteValue(g.Location); err != nil {
		return err
	}
	return writeChildrenGroup(w, g.Children)
}

func writeChildrenGroup(w codec.Writer, children []Node) error {
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagChildren); err != nil {
		return err
	}
	for _, c := range children {
		if err := WriteNode(w, c); err != nil {
			return err
		}
	}
	return w.WriteEnd()
}

func writeGridBody(w codec.Writer, g *Grid) error {
	if err := w.WriteValue(g.Bounds); err != nil {
		return err
	}
	if err := w.WriteValue(g.CellSize); err != nil {
		return err
	}
	if err := w.WriteValue(g.Offset); err != nil {
		return err
	}
	return w.WriteValue(g.Colour)
}

func writeModelBody(w codec.Writer, m *Model) error {
	if err := w.WriteValue(m.Location); err != nil {
		return err
	}
	if err := w.WriteValue(value.Double(m.Scale)); err != nil {
		return err
	}
	return WriteModel(w, m.Shape)
}

func writeTextBody(w codec.Writer, t *Text) error {
	if err := w.WriteValue(t.Location); err != nil {
		return err
	}
	if err := w.WriteValue(value.Double(t.Size)); err != nil {
		return err
	}
	if err := w.WriteValue(t.Colour); err != nil {
		return err
	}
	return w.WriteValue(value.String(t.Value))
}
