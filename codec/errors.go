package codec

import "fmt"

// Sentinel errors for the five error kinds in the error taxonomy.
// Callers compare against these with errors.Is; the concrete error
// values returned by Reader/Writer implementations wrap one of these
// with positional detail via fmt.Errorf's %w.
var (
	ErrInvalidToken    = fmt.Errorf("scene: invalid token")
	ErrUnexpectedToken = fmt.Errorf("scene: unexpected token")
	ErrUnexpectedEOF   = fmt.Errorf("scene: unexpected end of file")
	ErrRangeViolation  = fmt.Errorf("scene: range violation")
	ErrUnknownTag      = fmt.Errorf("scene: unknown tag")
)
