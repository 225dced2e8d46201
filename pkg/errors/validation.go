package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// Config file extensions accepted by ValidateConfigFilename.
var configExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// ValidateConfigFilename validates a lattice description filename.
// The extension selects the decoder, so it must be one of .toml, .yaml,
// .yml or .json (case-insensitive).
func ValidateConfigFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "config filename cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(configExtensions, ext) {
		return New(ErrCodeInvalidConfig, "unsupported config extension %q (want one of %s)",
			ext, strings.Join(configExtensions, ", "))
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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

// ValidateURL validates a backend connection URL.
// It ensures the URL uses one of the allowed schemes (e.g. "redis", "mongodb").
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
