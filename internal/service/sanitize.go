package service

import (
	"regexp"
	"strings"
)

// Characters that are unsafe in file names on common filesystems: control
// characters plus the Windows-reserved set.
var unsafeFileChars = regexp.MustCompile(`[\x00-\x1f\x7f<>:"/\\|?*]`)

// SanitizeFileName normalizes a client-supplied file name into something safe
// to use on the host filesystem. All client names are treated as untrusted:
// path components, traversal sequences and unsafe characters are stripped.
// Deterministic and side-effect free.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)

	// Strip any directory prefix, regardless of separator convention.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	name = strings.ReplaceAll(name, "..", "")
	name = unsafeFileChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ". ")

	if name == "" {
		return "document"
	}
	return name
}
