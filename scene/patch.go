package scene

import (
	"fmt"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

// Patch accepts an already-opened kind group (Start and kind tag
// already consumed by the caller) and an existing node of any variant;
// it reshapes that node to match the incoming description and consumes
// every token through this group's closing End. On a kind mismatch the
// existing node is discarded in favour of a freshly default-constructed
// instance of the incoming kind, which is then populated exactly as an
// existing matching node would be.
//
// existing may be nil, in which case a default instance of kind is
// always constructed.
func Patch(r *codec.R, kind value.Tag, existing Node) (Node, error) {
	node := existing
	if node == nil || node.Kind() != kind {
		node = NewNode(kind)
		if node == nil {
			return nil, fmt.Errorf("scene: tag %s: %w", kind, codec.ErrUnknownTag)
		}
	}

	var err error
	switch kind {
	case TagWidget:
		err = patchWidgetBody(r, node.(*Widget))
	case TagGroup:
		err = patchGroupBody(r, node.(*Group))
	case TagGrid:
		err = patchGridBody(r, node.(*Grid))
	case TagModel:
		err = patchModelBody(r, node.(*Model))
	case TagText:
		err = patchTextBody(r, node.(*Text))
	default:
		err = fmt.Errorf("scene: tag %s: %w", kind, codec.ErrUnknownTag)
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

func expectSubTag(r *codec.R, want value.Tag) error {
	got, err := r.ExpectTag()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("scene: expected %s sub-group, got %s: %w", want, got, codec.ErrUnexpectedToken)
	}
	return nil
}

func patchWidgetBody(r *codec.R, w *Widget) error {
	started, err := r.ExpectStartOrEnd()
	if err != nil {
		return err
	}
	if !started {
		return nil
	}
	if err := expectSubTag(r, TagAttrs); err != nil {
		return err
	}
	if err := patchWidgetAttrs(r, w); err != nil {
		return err
	}

	started, err = r.ExpectStartOrEnd()
	if err != nil {
		return err
	}
	if !started {
		return nil
	}
	if err := expectSubTag(r, TagBindings); err != nil {
		return err
	}
	if err := patchWidgetBindings(r, w); err != nil {
		return err
	}

	started, err = r.ExpectStartOrEnd()
	if err != nil {
		return err
	}
	if !started {
		return nil
	}
	if err := expectSubTag(r, TagChildren); err != nil {
		return err
	}
	if err := patchChildren(r, &w.Children); err != nil {
		return err
	}
	return r.ExpectEnd()
}

func patchWidgetAttrs(r *codec.R, w *Widget) error {
	loc, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	w.Location = loc

	size, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	w.Size = size

	fill, ok, err := r.ExpectVec4OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	w.FillColour = fill

	for {
		started, err := r.ExpectStartOrEnd()
		if err != nil {
			return err
		}
		if !started {
			return nil
		}
		tag, err := r.ExpectTag()
		if err != nil {
			return err
		}
		if tag != TagBorder {
			// Sub-groups the attribute section doesn't recognise are
			// skipped whole; this is the protocol's only mechanism for
			// forward-compatible extension.
			if err := r.SkipToEnd(); err != nil {
				return err
			}
			continue
		}
		if err := patchBorder(r, &w.Border); err != nil {
			return err
		}
	}
}

func patchBorder(r *codec.R, b *Border) error {
	width, ok, err := r.ExpectIntOrEnd()
	if err != nil {
		return err
	}
	if !ok {
		// Empty border sub-group resets border_width to 0.
		b.Width = 0
		return nil
	}
	b.Width = width

	colour, ok, err := r.ExpectVec3OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	b.Colour = colour
	return r.ExpectEnd()
}

func patchWidgetBindings(r *codec.R, w *Widget) error {
	w.Bindings = w.Bindings[:0]
	for {
		tag, ok, err := r.ExpectTagOrEnd()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		et, known := EventTypeFromTag(tag)
		if !known {
			return fmt.Errorf("scene: unknown event tag %s: %w", tag, codec.ErrUnknownTag)
		}
		id, err := r.ExpectInt()
		if err != nil {
			return err
		}
		w.Bindings = append(w.Bindings, EventBinding{Event: et, Binding: Binding(id)})
	}
}

// patchChildren patches children positionally with truncation: an
// incoming child either recurses into the existing child at the same
// index (matching variant), replaces it (mismatched variant), or is
// appended (beyond the current length).
// Once the incoming group closes, children is truncated to the number
// of children actually seen.
func patchChildren(r *codec.R, children *[]Node) error {
	i := 0
	for {
		started, err := r.ExpectStartOrEnd()
		if err != nil {
			return err
		}
		if !started {
			break
		}
		tag, err := r.ExpectTag()
		if err != nil {
			return err
		}
		if !IsNodeKind(tag) {
			return fmt.Errorf("scene: unknown child node tag %s: %w", tag, codec.ErrUnknownTag)
		}

		var existing Node
		if i < len(*children) {
			existing = (*children)[i]
		}
		patched, err := Patch(r, tag, existing)
		if err != nil {
			return err
		}
		if i < len(*children) {
			(*children)[i] = patched
		} else {
			*children = append(*children, patched)
		}
		i++
	}
	*children = (*children)[:i]
	return nil
}

func patchGroupBody(r *codec.R, g *Group) error {
	loc, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	g.Location = loc

	started, err := r.ExpectStartOrEnd()
	if err != nil {
		return err
	}
	if !started {
		return nil
	}
	if err := expectSubTag(r, TagChildren); err != nil {
		return err
	}
	if err := patchChildren(r, &g.Children); err != nil {
		return err
	}
	return r.ExpectEnd()
}

func patchGridBody(r *codec.R, g *Grid) error {
	bounds, ok, err := r.ExpectBox2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	g.Bounds = bounds

	cellSize, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	g.CellSize = cellSize

	offset, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	g.Offset = offset

	colour, ok, err := r.ExpectVec3OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	g.Colour = colour

	return r.ExpectEnd()
}

func patchModelBody(r *codec.R, m *Model) error {
	loc, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	m.Location = loc

	scale, ok, err := r.ExpectDoubleOrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	m.Scale = scale

	started, err := r.ExpectStartOrEnd()
	if err != nil {
		return err
	}
	if !started {
		return nil
	}
	if err := expectSubTag(r, TagShape); err != nil {
		return err
	}
	shape, err := ReadModel(r)
	if err != nil {
		return err
	}
	m.Shape = shape
	return r.ExpectEnd()
}

func patchTextBody(r *codec.R, t *Text) error {
	loc, ok, err := r.ExpectVec2OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	t.Location = loc

	size, ok, err := r.ExpectDoubleOrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	t.Size = size

	colour, ok, err := r.ExpectVec3OrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	t.Colour = colour

	str, ok, err := r.ExpectStringOrEnd()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	t.Value = str

	return r.ExpectEnd()
}
