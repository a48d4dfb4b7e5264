package storage

import (
	"regexp"
	"strings"
	"time"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName replaces spaces with underscores and strips every character
// outside [A-Za-z0-9._-]. The result may be empty for names made entirely
// of stripped characters.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(strings.ReplaceAll(name, " ", "_"), "")
}

// ObjectName prefixes the sanitized filename with a sortable timestamp so
// repeated uploads of the same file do not collide.
func ObjectName(now time.Time, filename string) string {
	return now.Format("20060102150405") + "_" + SanitizeName(filename)
}
