package models

import (
	"errors"
	"fmt"
	"strings"
)

// Decode and construction errors. Each concrete error type matches one of
// these with errors.Is.
var (
	ErrSchema           = errors.New("schema error")
	ErrTypeMismatch     = errors.New("block type mismatch")
	ErrUnknownBlockType = errors.New("unknown block type")
)

// SchemaError reports a missing or malformed field found while decoding.
// Path locates the field inside the decoded tree, e.g.
// "toggle.children[1].paragraph.rich_text[0].text.content".
type SchemaError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Path == "" {
		return "schema error: " + msg
	}
	return fmt.Sprintf("schema error at %s: %s", e.Path, msg)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

func (e *SchemaError) Unwrap() error { return e.Err }

// TypeMismatchError is returned when metadata carrying one block type is used
// to build a block of another type.
type TypeMismatchError struct {
	Path     string
	Expected BlockType
	Actual   BlockType
}

func (e *TypeMismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("block type mismatch: expected %q, got %q", e.Expected, e.Actual)
	}
	return fmt.Sprintf("block type mismatch at %s: expected %q, got %q", e.Path, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// UnknownBlockTypeError is returned for a discriminant outside BlockTypes().
type UnknownBlockTypeError struct {
	Path string
	Type string
}

func (e *UnknownBlockTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unknown block type %q", e.Type)
	}
	return fmt.Sprintf("unknown block type %q at %s", e.Type, e.Path)
}

func (e *UnknownBlockTypeError) Is(target error) bool { return target == ErrUnknownBlockType }

// PrefixPath records that err happened below segment. Errors that carry no
// path are returned unchanged.
func PrefixPath(err error, segment string) error {
	var schemaErr *SchemaError
	var mismatchErr *TypeMismatchError
	var unknownErr *UnknownBlockTypeError
	switch {
	case errors.As(err, &schemaErr):
		schemaErr.Path = joinPath(segment, schemaErr.Path)
	case errors.As(err, &mismatchErr):
		mismatchErr.Path = joinPath(segment, mismatchErr.Path)
	case errors.As(err, &unknownErr):
		unknownErr.Path = joinPath(segment, unknownErr.Path)
	}
	return err
}

// ErrorPath returns the location recorded in a decode error, or "".
func ErrorPath(err error) string {
	var schemaErr *SchemaError
	var mismatchErr *TypeMismatchError
	var unknownErr *UnknownBlockTypeError
	switch {
	case errors.As(err, &schemaErr):
		return schemaErr.Path
	case errors.As(err, &mismatchErr):
		return mismatchErr.Path
	case errors.As(err, &unknownErr):
		return unknownErr.Path
	}
	return ""
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

func joinPath(prefix, rest string) string {
	switch {
	case prefix == "":
		return rest
	case rest == "":
		return prefix
	case strings.HasPrefix(rest, "["):
		return prefix + rest
	}
	return prefix + "." + rest
}
