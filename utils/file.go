package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampedFilename returns a sanitized filename with a unix timestamp
// suffix, keeping uploads from overwriting each other.
func TimestampedFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	name := fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// FileNameWithoutExt extracts the base filename without its extension.
func FileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return base
}
