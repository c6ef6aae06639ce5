package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// nodeIDRegex matches identifiers usable as node references in definition files.
var nodeIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// attrKeyRegex matches Graphviz attribute names.
var attrKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateNodeID validates a node identifier.
//
// Identifiers are referenced by edges and clusters, so they are kept to a
// conservative character set:
//   - No empty identifiers
//   - Must start with a letter or underscore
//   - Letters, digits, '_', '.', '-' only
//   - Maximum length of 128 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDiagram, "node id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidDiagram, "node id too long (max 128 characters)")
	}
	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDiagram, "invalid node id: %q", id)
	}
	return nil
}

// ValidateAttrKey validates a Graphviz attribute name such as "fontsize"
// or "bgcolor".
func ValidateAttrKey(key string) error {
	if !attrKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidDiagram, "invalid attribute name %q", key)
	}
	return nil
}

// ValidateTitle validates a diagram title. Titles become file names, so they
// must contain at least one printable word and no path separators or control
// characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidDiagram, "diagram title cannot be empty")
	}
	if len(title) > 200 {
		return New(ErrCodeInvalidDiagram, "diagram title too long (max 200 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "diagram title contains control characters")
		}
	}
	if strings.ContainsAny(title, `/\`) {
		return New(ErrCodeInvalidDiagram, "diagram title cannot contain path separators")
	}
	if strings.Contains(title, "..") {
		return New(ErrCodeInvalidDiagram, "diagram title cannot contain '..'")
	}
	return nil
}

// ValidatePath validates an output directory path.
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
