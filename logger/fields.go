package logger

// Standard field names for consistent structured logging across monokit.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldPackage   = "package"
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldEntry     = "entry"
	FieldKind      = "export_kind"

	// Files and paths
	FieldFile   = "file"
	FieldPath   = "path"
	FieldTarget = "target"

	// Counts and sizes
	FieldCount = "count"
	FieldDepth = "depth"

	// Errors
	FieldError = "error"

	// Release
	FieldVersion   = "version"
	FieldBump      = "bump"
	FieldTagName   = "tag"
	FieldChangeset = "changeset"

	// Subprocess
	FieldCommand = "command"

	// Output markers
	FieldGlyph = "glyph" // monokit operation glyph (⇅, ⌁, ✗, etc.)
)
