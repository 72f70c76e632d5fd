package scaffold

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// MaxNameLength is the longest folder name accepted, in UTF-16 code units.
const MaxNameLength = 255

var (
	illegalNameChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
	packageNameIllegal = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// ValidateName checks that name can be used as the project folder.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	case illegalNameChars.MatchString(name):
		return &InvalidNameError{Name: name, Reason: "name contains reserved characters"}
	case nameLength(name) > MaxNameLength:
		return &InvalidNameError{Name: name, Reason: "name is longer than 255 characters"}
	case PackageName(name) == "":
		return &InvalidNameError{Name: name, Reason: "name has no characters usable in a package name"}
	}
	return nil
}

// nameLength counts name the way JavaScript string length does, so
// characters outside the BMP count twice.
func nameLength(name string) int {
	return len(utf16.Encode([]rune(name)))
}

// PackageName derives the npm package name from a folder name: whitespace
// runs become dashes, anything outside [a-zA-Z0-9-] is dropped, and the
// result is lowercased.
func PackageName(name string) string {
	name = whitespaceRuns.ReplaceAllString(name, "-")
	name = packageNameIllegal.ReplaceAllString(name, "")
	return strings.ToLower(name)
}
