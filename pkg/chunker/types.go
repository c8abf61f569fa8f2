// Package chunker provides streaming, hierarchy-aware chunking of UK
// legislation XML from legislation.gov.uk. Documents are walked in a single
// forward pass without materializing the full tree, and structural records
// (chunks) are emitted at several granularities: parts, regulations,
// regulation groups, schedules, and schedule paragraphs.
package chunker

import (
	"errors"
)

// Namespace URIs used by legislation.gov.uk XML documents.
// See: https://www.legislation.gov.uk/developer/formats/xml
const (
	// NamespaceLegislation is the structural namespace (Part, P1, Schedule, ...).
	NamespaceLegislation = "http://www.legislation.gov.uk/namespaces/legislation"

	// NamespaceMetadata is the document metadata namespace (ukm:Metadata, ...).
	NamespaceMetadata = "http://www.legislation.gov.uk/namespaces/metadata"

	// NamespaceDublinCore is the Dublin Core namespace used inside the
	// metadata block (dc:title).
	NamespaceDublinCore = "http://purl.org/dc/elements/1.1/"
)

// ChunkKind identifies the structural granularity of a chunk.
type ChunkKind string

const (
	KindPart            ChunkKind = "part"
	KindRegulation      ChunkKind = "regulation"
	KindRegulationGroup ChunkKind = "regulation_group"
	KindSchedule        ChunkKind = "schedule"
	KindParagraph       ChunkKind = "paragraph"
)

// Chunk is one extracted structural record. Optional fields are omitted from
// serialized output when absent; Text is always serialized, even when empty.
type Chunk struct {
	Type          ChunkKind         `json:"type"`
	Metadata      map[string]string `json:"metadata"`
	Number        string            `json:"number,omitempty"`
	Title         string            `json:"title,omitempty"`
	Text          string            `json:"text"`
	HasAmendments bool              `json:"has_amendments"`

	// Hierarchy is populated only for regulation and paragraph chunks that
	// contain sub-level elements.
	Hierarchy *Hierarchy `json:"hierarchy,omitempty"`
}

// Hierarchy holds the ordered sub-sections found beneath a regulation or
// schedule paragraph. All P2-level entries precede all P3-level entries;
// document order is guaranteed only within a level.
type Hierarchy struct {
	SubSections []SubSection `json:"sub_sections"`
}

// SubSection is one nested sub-level record (a P2 or P3 element).
type SubSection struct {
	Level    string            `json:"level"`
	Number   string            `json:"number,omitempty"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// DocumentMetadata holds document-level descriptive fields extracted from the
// first ukm:Metadata block. All fields are optional; paragraph counts are nil
// when missing or non-numeric.
type DocumentMetadata struct {
	Title              string `json:"title,omitempty"`
	Year               string `json:"year,omitempty"`
	Number             string `json:"number,omitempty"`
	MadeDate           string `json:"made_date,omitempty"`
	TotalParagraphs    *int   `json:"total_paragraphs,omitempty"`
	BodyParagraphs     *int   `json:"body_paragraphs,omitempty"`
	ScheduleParagraphs *int   `json:"schedule_paragraphs,omitempty"`
}

// Strategy names a chunking strategy accepted by Parser.Parse.
type Strategy string

const (
	StrategyPart            Strategy = "part"
	StrategyRegulation      Strategy = "regulation"
	StrategyRegulationGroup Strategy = "regulation_group"
	StrategySchedule        Strategy = "schedule"
	StrategyParagraph       Strategy = "paragraph"
	StrategyAll             Strategy = "all"
	StrategyMetadata        Strategy = "metadata"
)

// ErrUnknownStrategy is returned by Parser.Parse for an unrecognized strategy
// name, before any document I/O takes place.
var ErrUnknownStrategy = errors.New("unknown chunking strategy")

// Strategies returns all recognized strategy names in presentation order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyPart,
		StrategyRegulation,
		StrategyRegulationGroup,
		StrategySchedule,
		StrategyParagraph,
		StrategyAll,
		StrategyMetadata,
	}
}

// ValidStrategy reports whether name is a recognized strategy.
func ValidStrategy(name string) bool {
	for _, strategy := range Strategies() {
		if Strategy(name) == strategy {
			return true
		}
	}
	return false
}
