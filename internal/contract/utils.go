package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/clio/schema"
)

// Store errors shared by every backend.
var (
	ErrNotFound      = errors.New("not found")
	ErrStoreDisabled = errors.New("store backend is disabled")
	ErrDuplicate     = errors.New("duplicate key")
)

// Score label constants.
const (
	VeryHighValue = "Very High" // Very high value
	HighValue     = "High"      // High value
	ModerateValue = "Moderate"  // Moderate value
	LowValue      = "Low"       // Low value
)

// Color variables for console output.
var (
	VeryHighColor = color.New(color.FgRed, color.Bold)     // veryHighColor marks the strongest tendency.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor marks a strong, distinct tendency.
	ModerateColor = color.New(color.FgYellow)              // moderateColor marks a present but mild tendency.
	LowColor      = color.New(color.FgCyan)                // lowColor marks a weak signal.
	DominantColor = color.New(color.FgGreen, color.Bold)   // dominantColor highlights the dominant archetype.
)

// GetPlainLabel returns a plain text label for a score on the 0-100 scale.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	return schema.GetPlainLabel(score)
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case VeryHighValue:
		return VeryHighColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for the store.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".clio.db"
	}
	return filepath.Join(homeDir, ".clio.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis and at least one character fit.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseResponsePairs parses "q1=Often,q2=Never" into a Response.
// Labels are matched case-insensitively against the five answers and kept verbatim otherwise,
// so unknown labels still reach the rulebook and score as 0.
func ParseResponsePairs(s string) (schema.Response, error) {
	resp := make(schema.Response)
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, label, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid answer %q: expected <question>=<label>", pair)
		}
		resp[id] = NormalizeLabel(label)
	}
	return resp, nil
}

// NormalizeLabel maps user input such as "very often" onto the canonical label.
func NormalizeLabel(s string) schema.Label {
	trimmed := strings.TrimSpace(s)
	for _, l := range schema.AllLabels {
		if strings.EqualFold(trimmed, string(l)) {
			return l
		}
	}
	return schema.Label(trimmed)
}
