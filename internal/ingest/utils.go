package ingest

import (
	"path/filepath"
	"strings"

	"github.com/rpad300/godmode-docs/constants"
)

// AllowedExt checks if a file extension has an extraction strategy.
func AllowedExt(ext string) bool {
	return constants.IsSupportedExt(ext)
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
