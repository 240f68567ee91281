package dataset

import "fmt"

// LoadError reports a source file that is missing or could not be decoded
// and parsed with any supported encoding. Encoding names the decoder that
// accepted the bytes when the failure came later, during CSV parsing.
type LoadError struct {
	File     string
	Encoding string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Encoding != "" {
		return fmt.Sprintf("load %s (%s): %v", e.File, e.Encoding, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a table that does not satisfy the join contract:
// a missing column, a duplicate dimension key or an invalid fact value.
// Row is the 1-based data row, or 0 when the problem is not row specific.
type SchemaError struct {
	Table  string
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("schema error in %s: column %q row %d: %s", e.Table, e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("schema error in %s: column %q: %s", e.Table, e.Column, e.Reason)
}
