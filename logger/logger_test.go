package logger

import (
	"testing"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global logger
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Initialize() left Logger nil")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      string
	}{
		{VerbosityUser, "warn"},
		{VerbosityInfo, "info"},
		{VerbosityDebug, "debug"},
		{VerbosityTrace, "debug"},
		{7, "debug"},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity).String(); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %s, want %s", tt.verbosity, got, tt.want)
		}
	}
}

func TestGlyphHelpersSafeWithNopLogger(t *testing.T) {
	// Helpers must not panic before Initialize is called
	Logger = nil
	SyncInfow("message", FieldPackage, "@solterra/buttons")
	StubFailw("skipped", FieldEntry, "button")
	ReleaseInfow("bumped", FieldVersion, "1.2.0")
}
