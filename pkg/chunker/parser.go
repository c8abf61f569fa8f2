package chunker

import (
	"fmt"
	"io"
	"os"
)

// Parser runs chunking strategies over a single legislation XML document.
// Each strategy performs its own forward pass over the file; nothing is
// shared between passes, so a failed pass never corrupts earlier results.
type Parser struct {
	filePath string

	// unclassified counts P1 elements dropped during the most recent pass
	// because they had neither a Body nor a Schedule ancestor. Such elements
	// are excluded from both regulation and paragraph output; the count is
	// surfaced so callers can report the data loss.
	unclassified int
}

// NewParser creates a parser for the given XML file. Returns an error
// satisfying errors.Is(err, os.ErrNotExist) when the file does not exist.
func NewParser(filePath string) (*Parser, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("legislation document %s: %w", filePath, err)
	}
	return &Parser{filePath: filePath}, nil
}

// Parse dispatches to the strategy named by strategy. The result is a
// []Chunk for single-kind strategies, a map[string][]Chunk for StrategyAll,
// and a DocumentMetadata for StrategyMetadata. Unknown names fail with
// ErrUnknownStrategy before any I/O.
func (parser *Parser) Parse(strategy Strategy) (any, error) {
	switch strategy {
	case StrategyPart:
		return parser.ParseByPart()
	case StrategyRegulation:
		return parser.ParseByRegulation()
	case StrategyRegulationGroup:
		return parser.ParseByRegulationGroup()
	case StrategySchedule:
		return parser.ParseBySchedule()
	case StrategyParagraph:
		return parser.ParseByParagraph()
	case StrategyAll:
		return parser.ParseAll()
	case StrategyMetadata:
		return parser.DocumentMetadata()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// ParseByPart chunks the document by Part elements.
func (parser *Parser) ParseByPart() ([]Chunk, error) {
	return parser.chunkByTag("Part", func(*Element) (ChunkKind, bool) {
		return KindPart, true
	})
}

// ParseByRegulation chunks the document by P1 elements inside the body.
// P1 elements inside schedules belong to ParseByParagraph and are skipped.
func (parser *Parser) ParseByRegulation() ([]Chunk, error) {
	return parser.chunkByTag("P1", func(element *Element) (ChunkKind, bool) {
		switch ClassifyContainer(element) {
		case ContainerBody:
			return KindRegulation, true
		case ContainerSchedule:
			return "", false
		default:
			parser.unclassified++
			return "", false
		}
	})
}

// ParseByRegulationGroup chunks the document by P1group elements.
func (parser *Parser) ParseByRegulationGroup() ([]Chunk, error) {
	return parser.chunkByTag("P1group", func(*Element) (ChunkKind, bool) {
		return KindRegulationGroup, true
	})
}

// ParseBySchedule chunks the document by Schedule elements.
func (parser *Parser) ParseBySchedule() ([]Chunk, error) {
	return parser.chunkByTag("Schedule", func(*Element) (ChunkKind, bool) {
		return KindSchedule, true
	})
}

// ParseByParagraph chunks the document by P1 elements inside schedules.
// P1 elements inside the body belong to ParseByRegulation and are skipped.
func (parser *Parser) ParseByParagraph() ([]Chunk, error) {
	return parser.chunkByTag("P1", func(element *Element) (ChunkKind, bool) {
		switch ClassifyContainer(element) {
		case ContainerSchedule:
			return KindParagraph, true
		case ContainerBody:
			return "", false
		default:
			parser.unclassified++
			return "", false
		}
	})
}

// ParseAll runs every chunk-producing strategy, one full pass per kind, and
// returns the results keyed by chunk-type name.
func (parser *Parser) ParseAll() (map[string][]Chunk, error) {
	parts, err := parser.ParseByPart()
	if err != nil {
		return nil, err
	}
	regulations, err := parser.ParseByRegulation()
	if err != nil {
		return nil, err
	}
	regulationGroups, err := parser.ParseByRegulationGroup()
	if err != nil {
		return nil, err
	}
	schedules, err := parser.ParseBySchedule()
	if err != nil {
		return nil, err
	}
	paragraphs, err := parser.ParseByParagraph()
	if err != nil {
		return nil, err
	}

	return map[string][]Chunk{
		"parts":             parts,
		"regulations":       regulations,
		"regulation_groups": regulationGroups,
		"schedules":         schedules,
		"paragraphs":        paragraphs,
	}, nil
}

// DocumentMetadata extracts document-level metadata from the first
// ukm:Metadata block.
func (parser *Parser) DocumentMetadata() (DocumentMetadata, error) {
	reader, err := OpenDocument(parser.filePath)
	if err != nil {
		return DocumentMetadata{}, err
	}
	defer reader.Close()

	return readDocumentMetadata(reader)
}

// UnclassifiedElements returns the number of P1 elements dropped as
// unclassified during the most recent pass. After ParseAll this reflects the
// final paragraph pass, which observes the same orphan set as the regulation
// pass.
func (parser *Parser) UnclassifiedElements() int {
	return parser.unclassified
}

// chunkByTag streams elements with the given legislation-namespace local name
// and builds a chunk for each element the route function accepts.
func (parser *Parser) chunkByTag(local string, route func(*Element) (ChunkKind, bool)) ([]Chunk, error) {
	parser.unclassified = 0

	reader, err := OpenDocument(parser.filePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	chunks := []Chunk{}
	stream := NewElementStream(reader, NamespaceLegislation, local)
	for {
		element, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", parser.filePath, err)
		}

		kind, wanted := route(element)
		if !wanted {
			continue
		}
		chunks = append(chunks, BuildChunk(element, kind))
	}

	return chunks, nil
}
