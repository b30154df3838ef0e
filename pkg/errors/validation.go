package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a user-supplied output file path.
// It rejects paths that could not plausibly be written to safely.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
//
// Absolute paths are allowed; output locations are the user's choice.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// runIDRegex matches canonical UUID run identifiers.
var runIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateRunID validates a run archive identifier.
// Run IDs are lowercase canonical UUIDs; anything else is rejected before it
// reaches a store backend or a URL path.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run ID cannot be empty")
	}

	if !runIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid run ID: %q", id)
	}

	return nil
}

// ValidateMongoURI validates a MongoDB connection string.
// It ensures the URI has a mongodb or mongodb+srv scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidInput, "mongo URI cannot be empty")
	}

	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidInput, "mongo URI must use mongodb or mongodb+srv scheme")
	}

	return nil
}

// presetNameRegex matches valid preset file basenames (without extension).
var presetNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidatePresetName validates a preset name for safety.
// It ensures the name is a simple basename without path components, so a
// preset lookup can never escape the presets directory.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "preset name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "preset name cannot contain path separators")
	}

	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid preset name: %q", name)
	}

	return nil
}
