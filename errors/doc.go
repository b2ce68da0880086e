// Package errors provides structured error types for layout compilation and
// flyweight access.
//
// Every error carries a Kind that names the stage that failed:
//
//	schema  compile-time, aborts the plan for one message
//	bind    buffer too small or view not bound
//	write   read-only binding or value does not fit the field
//	read    repeated-record index at or beyond the committed count
//
// Use the standard library's errors.Is with the sentinels in this package to
// match a Kind, or with a Builder-made *Error carrying a Reason to match
// exactly:
//
//	if errors.Is(err, lerrors.ErrWrite) { ... }
package errors
