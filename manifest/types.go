// Package manifest models the per-package entry-point descriptor: the
// declarative JSON file describing a package's public surface, read fresh on
// every synchronizer invocation from a fixed location inside the package.
package manifest

import (
	"encoding/json"

	"github.com/solterra/monokit/errors"
)

// ExportKind selects the stub-generation template for a jsFile entry.
type ExportKind string

const (
	// ExportKindDefault generates single default re-export stubs
	ExportKindDefault ExportKind = "default export"

	// ExportKindNamed generates destructured named re-export stubs
	ExportKindNamed ExportKind = "named export"
)

// EntryPointDescriptor is a package's declared public surface.
type EntryPointDescriptor struct {
	// JSFile lists named export-point declarations. Order is irrelevant to
	// semantics but kept stable for deterministic output.
	JSFile []JSFileEntry `json:"jsFile"`

	// StaticFile lists simple name -> file re-export pairs (CSS, JSON assets).
	StaticFile []StaticFileEntry `json:"staticFile"`

	// CustomConfig lists manual override entries for non-standard export
	// shapes (root export, conditional platform exports).
	CustomConfig []CustomConfigEntry `json:"customConfig"`
}

// JSFileEntry declares one export subpath backed by a compiled artifact.
type JSFileEntry struct {
	// Name is the export subpath. Slashes indicate nesting depth.
	Name string `json:"name"`

	// File is the compiled artifact path relative to the package root,
	// conventionally ./dist/... without extension.
	File string `json:"file"`

	// ExportKind selects the stub template.
	ExportKind ExportKind `json:"exportKind"`

	// EntryPoint is required for named exports: the export names, each
	// either a plain value/type name or an interface-marked type-only name.
	EntryPoint []EntryName `json:"entryPoint,omitempty"`
}

// Depth returns the nesting depth of the entry: the number of '/' separators
// in its name.
func (e JSFileEntry) Depth() int {
	depth := 0
	for _, c := range e.Name {
		if c == '/' {
			depth++
		}
	}
	return depth
}

// StaticFileEntry maps an export subpath directly at a shipped file.
// No stubs are generated for static entries.
type StaticFileEntry struct {
	Name string `json:"name"`
	File string `json:"file"`
}

// CustomConfigEntry is a manual exports-map override. Name is used verbatim
// as the exports key (not prefixed with "./").
type CustomConfigEntry struct {
	Name         string       `json:"name"`
	ExportConfig ExportConfig `json:"exportConfig"`
	FilesConfig  []string     `json:"filesConfig"`
}

// EntryName is one named-export item: either a plain export name or an
// interface-marked type-only name. The descriptor encodes the two shapes as a
// string-or-object union; this tagged variant replaces runtime shape
// inspection.
type EntryName struct {
	// Name is the exported identifier.
	Name string

	// TypeOnly marks interface entries: rendered with a `type` qualifier in
	// declaration stubs and omitted from runtime re-export lists.
	TypeOnly bool
}

// interfaceEntry is the object shape of the union: {"type": "interface", "name": "..."}.
type interfaceEntry struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// UnmarshalJSON decodes either union shape.
func (e *EntryName) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		e.Name = plain
		e.TypeOnly = false
		return nil
	}

	var marked interfaceEntry
	if err := json.Unmarshal(data, &marked); err != nil {
		return errors.Wrap(err, "entryPoint item is neither a string nor an interface marker")
	}
	if marked.Type != "interface" {
		return errors.Newf("entryPoint item has unknown marker type %q", marked.Type)
	}
	if marked.Name == "" {
		return errors.New("interface-marked entryPoint item has no name")
	}

	e.Name = marked.Name
	e.TypeOnly = true
	return nil
}

// MarshalJSON encodes back to the original union shape.
func (e EntryName) MarshalJSON() ([]byte, error) {
	if e.TypeOnly {
		return json.Marshal(interfaceEntry{Type: "interface", Name: e.Name})
	}
	return json.Marshal(e.Name)
}

// ExportConfig is the custom exports-map value: either a bare path string or
// a condition -> path object.
type ExportConfig struct {
	// Path is set for the bare string shape.
	Path string

	// Conditions is set for the object shape.
	Conditions map[string]string
}

// UnmarshalJSON decodes either union shape.
func (c *ExportConfig) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		c.Path = path
		c.Conditions = nil
		return nil
	}

	var conditions map[string]string
	if err := json.Unmarshal(data, &conditions); err != nil {
		return errors.Wrap(err, "exportConfig is neither a path string nor a condition map")
	}
	c.Path = ""
	c.Conditions = conditions
	return nil
}

// MarshalJSON encodes back to the original union shape.
func (c ExportConfig) MarshalJSON() ([]byte, error) {
	if c.Conditions != nil {
		return json.Marshal(c.Conditions)
	}
	return json.Marshal(c.Path)
}

// Value returns the shape to embed in the exports map.
func (c ExportConfig) Value() interface{} {
	if c.Conditions != nil {
		return c.Conditions
	}
	return c.Path
}

// DuplicateNames returns jsFile names that appear more than once. Later
// entries silently overwrite earlier generated files, so callers warn on
// collisions rather than failing.
func (d *EntryPointDescriptor) DuplicateNames() []string {
	seen := map[string]int{}
	for _, entry := range d.JSFile {
		seen[entry.Name]++
	}

	var dups []string
	for _, entry := range d.JSFile {
		if seen[entry.Name] > 1 {
			dups = append(dups, entry.Name)
			seen[entry.Name] = 0 // report once
		}
	}
	return dups
}
