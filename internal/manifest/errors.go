package manifest

import (
	"errors"
	"fmt"
)

// Kind classifies manifest load failures.
type Kind string

const (
	// KindMissing means no manifest file exists at the kit root
	KindMissing Kind = "missing_manifest"
	// KindMalformed means the manifest could not be parsed at all
	KindMalformed Kind = "malformed_manifest"
	// KindInvalidField means a field failed validation
	KindInvalidField Kind = "invalid_field"
	// KindPathEscape means a referenced path escapes the kit root
	KindPathEscape Kind = "path_escape"
)

// Error is the typed failure returned by Parse. Field is set for
// KindInvalidField and KindPathEscape.
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("manifest: %s: %s: %v", e.Kind, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("manifest: %s: %s", e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("manifest: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("manifest: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a manifest Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var me *Error
	return errors.As(err, &me) && me.Kind == kind
}

func missing(err error) *Error { return &Error{Kind: KindMissing, Err: err} }

func malformed(err error) *Error { return &Error{Kind: KindMalformed, Err: err} }

func invalid(field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidField, Field: field, Err: fmt.Errorf(format, args...)}
}

func escape(field, path string) *Error {
	return &Error{Kind: KindPathEscape, Field: field, Err: fmt.Errorf("path %q escapes the kit root", path)}
}
