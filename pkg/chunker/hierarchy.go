package chunker

// subSectionLevels are the recognized sub-level tags beneath a regulation or
// schedule paragraph, queried level by level. All P2 records are emitted
// before any P3 records; document order holds within each level.
var subSectionLevels = []string{"P2", "P3"}

// ExtractHierarchy collects the nested sub-section records beneath a matched
// element. Sub-level elements are found anywhere beneath the element, not
// only as direct children. Returns nil when neither level is present, in
// which case the hierarchy field is omitted from output.
func ExtractHierarchy(element *Element) *Hierarchy {
	var subSections []SubSection

	for _, level := range subSectionLevels {
		for _, subElement := range findAllDescendants(element, NamespaceLegislation, level) {
			subSections = append(subSections, SubSection{
				Level:    level,
				Number:   ExtractNumber(subElement),
				Text:     ReconstructText(subElement),
				Metadata: ExtractMetadata(subElement),
			})
		}
	}

	if len(subSections) == 0 {
		return nil
	}
	return &Hierarchy{SubSections: subSections}
}
