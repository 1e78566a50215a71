package utils

import "errors"

// FlattenErrors splits an errors.Join tree into its leaves. A single wrapping
// layer around a joined error (fmt.Errorf("...: %w", errors.Join(...))) is
// looked through.
func FlattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, FlattenErrors(e)...)
		}
		return out
	}
	if wrapped := errors.Unwrap(err); wrapped != nil {
		if _, ok := wrapped.(interface{ Unwrap() []error }); ok {
			return FlattenErrors(wrapped)
		}
	}
	return []error{err}
}
