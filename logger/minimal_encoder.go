package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/solterra/monokit/glyph"
)

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Gruvbox Dark color palette (warm, muted, easy on eyes)
const (
	colorFg     = "\x1b[38;5;223m" // Soft cream (#ebdbb2)
	colorAqua   = "\x1b[38;5;108m" // Muted cyan-green (#8ec07c)
	colorOrange = "\x1b[38;5;208m" // Warm orange (#fe8019)
	colorYellow = "\x1b[38;5;214m" // Soft yellow (#fabd2f)
	colorGreen  = "\x1b[38;5;142m" // Muted green (#b8bb26)
	colorBlue   = "\x1b[38;5;109m" // Soft blue (#83a598)
	colorRed    = "\x1b[38;5;167m" // Warm red (#fb4934)
	colorRedBg  = "\x1b[48;5;88m"  // Dark red background
	colorYelBg  = "\x1b[48;5;58m"  // Dark yellow background
)

// minimalEncoder implements a calm, compact console encoder
// Format: "13:04:35  sync  Generated stubs  @solterra/buttons 12 files"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	// Create a base JSON encoder for field serialization (internal use only)
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	// Time
	final.AppendString(colorAqua)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel && ent.Level != zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	// Component name (abbreviated) for visual grouping
	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	// Glyph field leads the message when present
	if g := glyphField(fields); g != "" {
		final.AppendString("  ")
		final.AppendString(colorGreen)
		final.AppendString(g)
		final.AppendString(colorReset)
	}

	// Message
	final.AppendString("  ")
	final.AppendString(colorMessage(ent.Message))

	// Fields: extract and color values
	if rest := extractFieldValues(fields); rest != "" {
		final.AppendString("  ")
		final.AppendString(rest)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYelBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: syncer -> syncer, release.tags -> r.tags
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// colorComponent hashes the component name to a consistent color
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return colorOrange
	}
	return colorYellow
}

// colorMessage picks a message color by operation keywords
func colorMessage(msg string) string {
	lower := strings.ToLower(msg)

	if strings.Contains(lower, "generated") || strings.Contains(lower, "completed") ||
		strings.Contains(lower, "wrote") || strings.Contains(lower, "tagged") {
		return colorGreen + msg + colorReset
	}
	if strings.Contains(lower, "resolv") || strings.Contains(lower, "watch") {
		return colorBlue + msg + colorReset
	}
	if strings.Contains(lower, "skip") || strings.Contains(lower, "missing") {
		return colorYellow + msg + colorReset
	}
	return colorFg + msg + colorReset
}

// glyphField pulls the glyph field out of the structured fields, if logged
func glyphField(fields []zapcore.Field) string {
	for _, field := range fields {
		if field.Key == FieldGlyph && field.Type == zapcore.StringType {
			if glyph.Name(field.String) != "" {
				return field.String
			}
		}
	}
	return ""
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}

	switch field.Type {
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}

	return ""
}

// extractFieldValues pulls just the values from structured fields
// Input: {"package": "@solterra/buttons", "count": 12}
// Output: "@solterra/buttons (12 files)" with colored names and numbers
func extractFieldValues(fields []zapcore.Field) string {
	var values []string

	for _, field := range fields {
		switch field.Key {
		case FieldPackage, FieldEntry, FieldTagName, FieldChangeset:
			if val := getFieldValue(field); val != "" {
				values = append(values, colorBlue+val+colorReset)
			}
		case FieldFile, FieldPath, FieldTarget:
			if val := getFieldValue(field); val != "" {
				values = append(values, colorFg+val+colorReset)
			}
		case FieldCount:
			if val := getFieldValue(field); val != "" {
				values = append(values, colorFg+"("+colorGreen+val+colorReset+colorFg+" files)"+colorReset)
			}
		case FieldVersion, FieldBump:
			if val := getFieldValue(field); val != "" {
				values = append(values, colorGreen+val+colorReset)
			}
		case FieldError:
			if val := getFieldValue(field); val != "" {
				values = append(values, colorRed+val+colorReset)
			}
		}
	}

	if len(values) == 0 {
		return ""
	}

	return strings.Join(values, " ")
}
