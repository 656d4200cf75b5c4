// Package text implements the human-readable, S-expression-like codec:
// parenthesised groups, bracketed vectors, braced homogeneous arrays.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sceneproto/scene/value"
)

// Writer writes tokens in the text encoding. It satisfies codec.Writer.
// Groups at nesting depth ≥ 1 begin on their own line, indented two
// spaces per level; scalar siblings within a group are space-separated;
// non-empty arrays are written multi-line regardless of depth, and an
// empty array is written as "{}".
type Writer struct {
	w     *bufio.Writer
	depth int
	// sep[d] is true once a sibling has already been written at
	// depth d, so the next one needs a leading space.
	sep []bool
}

// NewWriter wraps an io.Writer as a text Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), sep: []bool{false}}
}

// Flush pushes any buffered bytes to the underlying writer.
func (tw *Writer) Flush() error {
	return tw.w.Flush()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func (tw *Writer) WriteStart() error {
	if tw.depth > 0 {
		if _, err := fmt.Fprintf(tw.w, "\n%s(", indent(tw.depth)); err != nil {
			return err
		}
	} else {
		if err := tw.w.WriteByte('('); err != nil {
			return err
		}
	}
	tw.sep[tw.depth] = true
	tw.depth++
	tw.sep = append(tw.sep, false)
	return nil
}

func (tw *Writer) WriteEnd() error {
	if err := tw.w.WriteByte(')'); err != nil {
		return err
	}
	tw.sep = tw.sep[:tw.depth]
	tw.depth--
	tw.sep[tw.depth] = true
	return nil
}

func (tw *Writer) writePrefixed(s string) error {
	if tw.sep[tw.depth] {
		if err := tw.w.WriteByte(' '); err != nil {
			return err
		}
	}
	tw.sep[tw.depth] = true
	_, err := tw.w.WriteString(s)
	return err
}

func (tw *Writer) WriteValue(v value.Value) error {
	switch vv := v.(type) {
	case value.Tag:
		return tw.writePrefixed(vv.String())
	case value.String:
		return tw.writePrefixed(formatString(string(vv)))
	case value.Blob:
		return tw.writePrefixed(formatBlob(vv))
	case value.BoolArray:
		return tw.writeArray(len(vv), func(i int) string { return formatBool(vv[i]) })
	case value.IntArray:
		return tw.writeArray(len(vv), func(i int) string { return fmt.Sprintf("%d", vv[i]) })
	case value.DoubleArray:
		return tw.writeArray(len(vv), func(i int) string { return formatDouble(vv[i]) })
	case value.Vec2Array:
		return tw.writeArray(len(vv), func(i int) string { return formatVec2(vv[i]) })
	case value.Vec3Array:
		return tw.writeArray(len(vv), func(i int) string { return formatVec3(vv[i]) })
	case value.Vec4Array:
		return tw.writeArray(len(vv), func(i int) string { return formatVec4(vv[i]) })
	case value.Box2Array:
		return tw.writeArray(len(vv), func(i int) string { return formatBox2(vv[i]) })
	default:
		s, err := formatScalar(v)
		if err != nil {
			return err
		}
		return tw.writePrefixed(s)
	}
}

func (tw *Writer) writeArray(n int, elem func(i int) string) error {
	if tw.sep[tw.depth] {
		if err := tw.w.WriteByte(' '); err != nil {
			return err
		}
	}
	tw.sep[tw.depth] = true

	if n == 0 {
		_, err := tw.w.WriteString("{}")
		return err
	}
	if _, err := tw.w.WriteString("{"); err != nil {
		return err
	}
	elemIndent := indent(tw.depth + 1)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(tw.w, "\n%s%s", elemIndent, elem(i)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(tw.w, "\n%s}", indent(tw.depth))
	return err
}
