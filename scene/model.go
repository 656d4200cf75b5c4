package scene

import (
	"fmt"

	"github.com/sceneproto/scene/codec"
	"github.com/sceneproto/scene/value"
)

// Point is one vertex of a Path: a location and a curve-bias scalar
// used by the (out-of-scope) renderer to bend the segment leading into
// it.
type Point struct {
	Location  value.Vec2
	CurveBias float64
}

// Path is one outline within a Shape: a colour and its ordered points.
// Locations and curve biases are tracked as parallel arrays on the wire
// but as a single Point slice in memory.
type Path struct {
	Colour value.Vec3
	Points []Point
}

// Shape is the embedded sub-tree of a Model: an ordered list of Paths.
type Shape struct {
	Paths []Path
}

// ReadModel reads a SHAP group (kind tag already consumed) into a fresh
// Shape, following the PTHS-count-then-N-Path-groups layout and
// tolerating unknown sub-groups via SkipToEnd. It pairs with WriteModel
// so the Shape format can be used on its own, without the scene-node
// layer around it.
func ReadModel(r *codec.R) (Shape, error) {
	var shape Shape
	havePaths := false
	for {
		started, err := r.ExpectStartOrEnd()
		if err != nil {
			return Shape{}, err
		}
		if !started {
			break
		}
		tag, err := r.ExpectTag()
		if err != nil {
			return Shape{}, err
		}
		switch tag {
		case TagPaths:
			paths, err := readPaths(r)
			if err != nil {
				return Shape{}, err
			}
			shape.Paths = paths
			havePaths = true
		default:
			if err := r.SkipToEnd(); err != nil {
				return Shape{}, err
			}
		}
	}
	if !havePaths {
		return Shape{}, fmt.Errorf("scene: SHAP group missing PTHS: %w", codec.ErrUnexpectedEOF)
	}
	return shape, nil
}

func readPaths(r *codec.R) ([]Path, error) {
	count, err := r.ExpectInt()
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, count)
	for i := int32(0); i < count; i++ {
		path, err := readPath(r)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	if err := r.SkipToEnd(); err != nil {
		return nil, err
	}
	return paths, nil
}

func readPath(r *codec.R) (Path, error) {
	if err := r.ExpectStart(); err != nil {
		return Path{}, err
	}
	var path Path
	haveColour, havePoints := false, false
	for {
		started, err := r.ExpectStartOrEnd()
		if err != nil {
			return Path{}, err
		}
		if !started {
			break
		}
		tag, err := r.ExpectTag()
		if err != nil {
			return Path{}, err
		}
		switch tag {
		case TagColour:
			c, err := r.ExpectVec3()
			if err != nil {
				return Path{}, err
			}
			if err := r.SkipToEnd(); err != nil {
				return Path{}, err
			}
			path.Colour = c
			haveColour = true
		case TagPoints:
			points, err := readPoints(r)
			if err != nil {
				return Path{}, err
			}
			path.Points = points
			havePoints = true
		default:
			if err := r.SkipToEnd(); err != nil {
				return Path{}, err
			}
		}
	}
	if !haveColour || !havePoints {
		return Path{}, fmt.Errorf("scene: PATH group missing COLR or PNTS: %w", codec.ErrUnexpectedEOF)
	}
	return path, nil
}

func readPoints(r *codec.R) ([]Point, error) {
	locations, err := r.ExpectVec2Array()
	if err != nil {
		return nil, err
	}
	biases, err := r.ExpectDoubleArray()
	if err != nil {
		return nil, err
	}
	if len(locations) != len(biases) {
		return nil, fmt.Errorf("scene: PNTS locations/biases length mismatch (%d != %d): %w", len(locations), len(biases), codec.ErrUnexpectedToken)
	}
	if err := r.SkipToEnd(); err != nil {
		return nil, err
	}
	points := make([]Point, len(locations))
	for i := range locations {
		points[i] = Point{Location: locations[i], CurveBias: biases[i]}
	}
	return points, nil
}

// WriteModel writes shape as a SHAP group, the inverse of ReadModel.
func WriteModel(w codec.Writer, shape Shape) error {
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagShape); err != nil {
		return err
	}
	if err := writePaths(w, shape.Paths); err != nil {
		return err
	}
	return w.WriteEnd()
}

func writePaths(w codec.Writer, paths []Path) error {
	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagPaths); err != nil {
		return err
	}
	if err := w.WriteValue(value.Int(len(paths))); err != nil {
		return err
	}
	for _, p := range paths {
		if err := writePath(w, p); err != nil {
			return err
		}
	}
	return w.WriteEnd()
}

func writePath(w codec.Writer, p Path) error {
	if err := w.WriteStart(); err != nil {
		return err
	}

	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagColour); err != nil {
		return err
	}
	if err := w.WriteValue(p.Colour); err != nil {
		return err
	}
	if err := w.WriteEnd(); err != nil {
		return err
	}

	if err := w.WriteStart(); err != nil {
		return err
	}
	if err := w.WriteValue(TagPoints); err != nil {
		return err
	}
	locations := make(value.Vec2Array, len(p.Points))
	biases := make(value.DoubleArray, len(p.Points))
	for i, pt := range p.Points {
		locations[i] = pt.Location
		biases[i] = pt.CurveBias
	}
	if err := w.WriteValue(locations); err != nil {
		return err
	}
	if err := w.WriteValue(biases); err != nil {
		return err
	}
	if err := w.WriteEnd(); err != nil {
		return err
	}

	return w.WriteEnd()
}
