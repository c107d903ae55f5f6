package dataset

import "fmt"

// FormatError describes a malformed input file. It carries enough position
// context to point the user at the offending cell.
type FormatError struct {
	Err    error
	Path   string
	Column string
	Row    int
}

func (e *FormatError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: row %d, column %q: %v", e.Path, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
