package tabular

import (
	"errors"
	"fmt"
)

// SchemaError reports a required column missing from an input table.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: table %q is missing required column %q", e.Table, e.Column)
}

// ParseError reports a cell that is present but cannot be interpreted.
type ParseError struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: table %q row %d column %q value %q: %v", e.Table, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsSchema reports whether err is (or wraps) a *SchemaError.
func IsSchema(err error) bool {
	var s *SchemaError
	return errors.As(err, &s)
}

// IsParse reports whether err is (or wraps) a *ParseError.
func IsParse(err error) bool {
	var p *ParseError
	return errors.As(err, &p)
}
