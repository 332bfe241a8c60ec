package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// UniqueStrings returns slice without repeated entries, keeping first-seen order.
func UniqueStrings(slice []string) []string {
	seen := make(map[string]struct{}, len(slice))
	unique := make([]string, 0, len(slice))
	for _, entry := range slice {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		unique = append(unique, entry)
	}
	return unique
}

// unsafeFilenameRegex matches characters that are not allowed in a path segment on common filesystems.
var unsafeFilenameRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

const maxFilenameRunes = 100

// SanitizeFilename turns a product or category name into a single safe path segment.
func SanitizeFilename(name string) string {
	clean := strings.Join(strings.Fields(name), " ")
	clean = unsafeFilenameRegex.ReplaceAllString(clean, "_")
	clean = strings.Trim(clean, " .")

	if utf8.RuneCountInString(clean) > maxFilenameRunes {
		clean = strings.TrimRight(string([]rune(clean)[:maxFilenameRunes]), " .")
	}
	if clean == "" {
		return "unnamed"
	}
	return clean
}
