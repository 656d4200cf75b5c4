package scene

// InBounds reports whether (x, y), given in the coordinate space of
// w's parent, falls within w's location/size rectangle. It is a pure
// geometry query: it stops short of dispatching to a controller, which
// stays outside this package.
func (w *Widget) InBounds(x, y float64) bool {
	return x >= w.Location.X && x < w.Location.X+w.Size.X &&
		y >= w.Location.Y && y < w.Location.Y+w.Size.Y
}

// FindBinding looks up the Binding this widget has registered for the
// given event kind, if any.
func (w *Widget) FindBinding(event EventType) (Binding, bool) {
	for _, b := range w.Bindings {
		if b.Event == event {
			return b.Binding, true
		}
	}
	return 0, false
}

// HitTest walks n's sub-tree (translating coordinates by each Widget's
// and Group's location as it descends) looking for the innermost Widget
// bound to event whose bounds contain (x, y). Children are visited in
// reverse order so that later-drawn (and so visually topmost) siblings
// win ties. It does not deliver the event; dispatch belongs to whoever
// owns the window loop.
func HitTest(n Node, x, y float64, event EventType) (Binding, bool) {
	switch nn := n.(type) {
	case *Widget:
		lx, ly := x-nn.Location.X, y-nn.Location.Y
		for i := len(nn.Children) - 1; i >= 0; i-- {
			if b, ok := HitTest(nn.Children[i], lx, ly, event); ok {
				return b, ok
			}
		}
		if nn.InBounds(x, y) {
			return nn.FindBinding(event)
		}
		return 0, false
	case *Group:
		lx, ly := x-nn.Location.X, y-nn.Location.Y
		for i := len(nn.Children) - 1; i >= 0; i-- {
			if b, ok := HitTest(nn.Children[i], lx, ly, event); ok {
				return b, ok
			}
		}
		return 0, false
	default:
		return 0, false
	}
}
