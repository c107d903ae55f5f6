package report

import "fmt"

// WriteError reports a failure while serializing the report. The attempted
// path is preserved so callers can point the user at it. A failed write
// never leaves a partial artifact at the target path.
type WriteError struct {
	Err  error
	Path string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write report to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
