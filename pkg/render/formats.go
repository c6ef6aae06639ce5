package render

import (
	"strings"

	"github.com/razor-app/archdiagram/pkg/errors"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatJPG = "jpg"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatPNG

// Formats lists every supported format.
var Formats = []string{FormatPNG, FormatSVG, FormatJPG, FormatPDF, FormatDOT}

var validFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatJPG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// ValidFormat reports whether f is supported.
func ValidFormat(f string) bool {
	return validFormats[f]
}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format list. Empty input yields
// [DefaultFormat]; blanks and duplicates are dropped.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{DefaultFormat}
	}
	seen := make(map[string]bool)
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return []string{DefaultFormat}
	}
	return out
}
