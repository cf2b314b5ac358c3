// Package errors provides error handling for monokit.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing CLI messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrPackageNotFound) {
//	    // handle missing package
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapOnce   = crdb.UnwrapOnce
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across monokit.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrPackageNotFound indicates the workspace query could not resolve a package name
	ErrPackageNotFound = New("package not found in workspace")

	// ErrDescriptorNotFound indicates the package has no entry-point descriptor file
	ErrDescriptorNotFound = New("entry-point descriptor not found")

	// ErrUnsupportedExportKind indicates a jsFile entry declared an export kind
	// outside "default export" / "named export"
	ErrUnsupportedExportKind = New("unsupported export kind")

	// ErrEmptyEntryPoint indicates a named-export entry declared no entry points
	ErrEmptyEntryPoint = New("named export entry has no entry points")

	// ErrNoChangesets indicates a release version run found nothing to consume
	ErrNoChangesets = New("no changesets found")
)

// IsPackageNotFound checks if an error is or wraps ErrPackageNotFound
func IsPackageNotFound(err error) bool {
	return err != nil && Is(err, ErrPackageNotFound)
}

// IsSkippableEntry reports whether an error describes a per-entry generation
// failure that should be logged and skipped rather than aborting the run.
func IsSkippableEntry(err error) bool {
	return err != nil && IsAny(err, ErrUnsupportedExportKind, ErrEmptyEntryPoint)
}

// NewPackageNotFound creates a package-not-found error naming the package
func NewPackageNotFound(name string) error {
	return Wrap(ErrPackageNotFound, name)
}
