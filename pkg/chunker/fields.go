package chunker

import (
	"strings"
)

// metadataAttributes maps source attribute names to the semantic keys used in
// chunk metadata. Attributes absent from an element are omitted, never
// emitted with empty values.
var metadataAttributes = map[string]string{
	"id":                "id",
	"DocumentURI":       "document_uri",
	"IdURI":             "id_uri",
	"RestrictStartDate": "effective_date",
}

// ExtractMetadata copies the allow-listed identifying attributes from an
// element into a metadata map. The map is always non-nil, possibly empty.
func ExtractMetadata(element *Element) map[string]string {
	metadata := make(map[string]string)
	for sourceName, semanticKey := range metadataAttributes {
		if value, present := element.Attr[sourceName]; present {
			metadata[semanticKey] = value
		}
	}
	return metadata
}

// ExtractNumber returns the number of an element, taken from the first
// Pnumber descendant with non-empty text, falling back to the first Number
// descendant. Both searches match anywhere beneath the element, not only
// direct children. Returns "" when no number-bearing descendant exists.
func ExtractNumber(element *Element) string {
	if pnumber := findDescendant(element, NamespaceLegislation, "Pnumber"); pnumber != nil {
		if trimmed := strings.TrimSpace(pnumber.Text); trimmed != "" {
			return trimmed
		}
	}
	if number := findDescendant(element, NamespaceLegislation, "Number"); number != nil {
		if trimmed := strings.TrimSpace(number.Text); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ExtractTitle returns the title of an element. Schedules wrap their title in
// a TitleBlock, so a TitleBlock with a direct Title child is tried first; a
// bare Title descendant is the fallback. The title text is fully
// reconstructed so inline markup inside headings is preserved.
func ExtractTitle(element *Element) string {
	for _, titleBlock := range findAllDescendants(element, NamespaceLegislation, "TitleBlock") {
		for _, child := range titleBlock.Children {
			if child.Space == NamespaceLegislation && child.Local == "Title" {
				return ReconstructText(child)
			}
		}
	}

	if title := findDescendant(element, NamespaceLegislation, "Title"); title != nil {
		return ReconstructText(title)
	}

	return ""
}

// HasAmendments reports whether the element contains amendment markup: at
// least one Addition or Substitution marker anywhere beneath it.
func HasAmendments(element *Element) bool {
	if findDescendant(element, NamespaceLegislation, "Addition") != nil {
		return true
	}
	return findDescendant(element, NamespaceLegislation, "Substitution") != nil
}
