package chunker

import (
	"io"
	"strconv"
)

// readDocumentMetadata extracts document-level metadata from the first
// ukm:Metadata block in the stream and stops immediately; the rest of the
// document is never scanned. A document without a metadata block yields an
// empty record. Missing or non-numeric fields are left absent rather than
// failing the extraction.
func readDocumentMetadata(reader io.Reader) (DocumentMetadata, error) {
	metadata := DocumentMetadata{}

	stream := NewElementStream(reader, NamespaceMetadata, "Metadata")
	block, err := stream.Next()
	if err == io.EOF {
		return metadata, nil
	}
	if err != nil {
		return metadata, err
	}

	if titleElement := findDescendant(block, NamespaceDublinCore, "title"); titleElement != nil {
		metadata.Title = ReconstructText(titleElement)
	}

	metadata.Year = descendantAttr(block, "Year", "Value")
	metadata.Number = descendantAttr(block, "Number", "Value")
	metadata.MadeDate = descendantAttr(block, "Made", "Date")

	metadata.TotalParagraphs = descendantCount(block, "TotalParagraphs")
	metadata.BodyParagraphs = descendantCount(block, "BodyParagraphs")
	metadata.ScheduleParagraphs = descendantCount(block, "ScheduleParagraphs")

	return metadata, nil
}

// descendantAttr returns the named attribute of the first ukm descendant with
// the given local name, or "" when the element or attribute is missing.
func descendantAttr(block *Element, local string, attrName string) string {
	element := findDescendant(block, NamespaceMetadata, local)
	if element == nil {
		return ""
	}
	return element.Attr[attrName]
}

// descendantCount parses the Value attribute of the first ukm descendant with
// the given local name as an integer. Nil on absence or parse failure.
func descendantCount(block *Element, local string) *int {
	raw := descendantAttr(block, local, "Value")
	if raw == "" {
		return nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &count
}
