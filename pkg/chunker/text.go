package chunker

import (
	"strings"
)

// ReconstructText rebuilds the full reading-order text of an element: its own
// leading text, then for each child in document order the child's
// reconstructed text followed by the child's tail text. Every fragment is
// trimmed and non-empty fragments are joined with a single space, so inline
// markup (amendments, cross-references, formatting) collapses into one
// normalized string without losing the text between sibling elements.
func ReconstructText(element *Element) string {
	var pieces []string

	if own := strings.TrimSpace(element.Text); own != "" {
		pieces = append(pieces, own)
	}

	for _, child := range element.Children {
		if childText := ReconstructText(child); childText != "" {
			pieces = append(pieces, childText)
		}
		if tail := strings.TrimSpace(child.Tail); tail != "" {
			pieces = append(pieces, tail)
		}
	}

	return strings.Join(pieces, " ")
}
