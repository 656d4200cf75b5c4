package text

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/sceneproto/scene/value"
)

func formatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatVec2(v value.Vec2) string {
	return fmt.Sprintf("[%s %s]", formatDouble(v.X), formatDouble(v.Y))
}

func formatVec3(v value.Vec3) string {
	return fmt.Sprintf("[%s %s %s]", formatDouble(v.X), formatDouble(v.Y), formatDouble(v.Z))
}

func formatVec4(v value.Vec4) string {
	return fmt.Sprintf("[%s %s %s %s]", formatDouble(v.X), formatDouble(v.Y), formatDouble(v.Z), formatDouble(v.W))
}

func formatBox2(v value.Box2) string {
	return fmt.Sprintf("[%s %s]", formatVec2(v.Min), formatVec2(v.Max))
}

func formatString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatBlob(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// formatScalar formats any non-array, non-Tag, non-String, non-Blob
// value the way it appears both standalone and as an array element.
func formatScalar(v value.Value) (string, error) {
	switch vv := v.(type) {
	case value.Bool:
		return formatBool(bool(vv)), nil
	case value.Int:
		return strconv.Itoa(int(vv)), nil
	case value.Double:
		return formatDouble(float64(vv)), nil
	case value.Vec2:
		return formatVec2(vv), nil
	case value.Vec3:
		return formatVec3(vv), nil
	case value.Vec4:
		return formatVec4(vv), nil
	case value.Box2:
		return formatBox2(vv), nil
	default:
		return "", fmt.Errorf("text writer: %s is not a valid array element kind", v.Kind())
	}
}
