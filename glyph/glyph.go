// Package glyph defines canonical output glyphs for monokit operations and
// status markers. These glyphs are stable across CLI output, structured logs,
// and documentation; tooling that parses monokit output may match on them.
package glyph

// Operation glyphs mark which subsystem produced a line of output.
const (
	// Sync marks export-manifest synchronizer operations
	Sync = "⇅"

	// Stub marks generated proxy-file artifacts
	Stub = "∴"

	// Release marks release workflow operations (changesets, versioning)
	Release = "⌁"

	// Tag marks git tag operations
	Tag = "◈"

	// Watch marks file-watch mode events
	Watch = "◉"
)

// Status glyphs mark the outcome of an operation.
const (
	// OK marks a successful operation
	OK = "✓"

	// Fail marks a failed or skipped operation
	Fail = "✗"

	// Warn marks a degraded but non-fatal condition
	Warn = "⚠"

	// Skip marks an intentionally skipped step (already up to date, tag exists)
	Skip = "∅"
)

// Name returns a stable identifier for a glyph, for machine-readable output.
// Unknown glyphs return the empty string.
func Name(g string) string {
	switch g {
	case Sync:
		return "sync"
	case Stub:
		return "stub"
	case Release:
		return "release"
	case Tag:
		return "tag"
	case Watch:
		return "watch"
	case OK:
		return "ok"
	case Fail:
		return "fail"
	case Warn:
		return "warn"
	case Skip:
		return "skip"
	}
	return ""
}
