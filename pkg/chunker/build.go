package chunker

// BuildChunk assembles one chunk record from a matched element. Absent
// optional fields (number, title, hierarchy) are left zero-valued and omitted
// during serialization; building never fails.
func BuildChunk(element *Element, kind ChunkKind) Chunk {
	chunk := Chunk{
		Type:          kind,
		Metadata:      ExtractMetadata(element),
		Number:        ExtractNumber(element),
		Title:         ExtractTitle(element),
		Text:          ReconstructText(element),
		HasAmendments: HasAmendments(element),
	}

	// Only regulations and schedule paragraphs carry nested sub-structure.
	if kind == KindRegulation || kind == KindParagraph {
		chunk.Hierarchy = ExtractHierarchy(element)
	}

	return chunk
}
