package chunker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// OpenDocument opens a legislation XML file for streaming. Some source files
// carry a single stray non-XML line before the XML declaration (an artifact of
// how they were downloaded); when the first line does not begin with an
// opening angle bracket it is dropped and the remainder of the file is
// returned unchanged. Returns an error satisfying errors.Is(err,
// os.ErrNotExist) when the path does not exist.
func OpenDocument(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open legislation document %s: %w", path, err)
	}

	buffered := bufio.NewReader(file)
	firstLine, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("failed to read leading line of %s: %w", path, err)
	}

	if hasPreamble(firstLine) {
		// Drop the stray line; the parser sees only the XML body.
		return &documentReader{reader: buffered, closer: file}, nil
	}

	// No preamble: splice the consumed line back in front of the remainder.
	return &documentReader{
		reader: io.MultiReader(strings.NewReader(firstLine), buffered),
		closer: file,
	}, nil
}

// hasPreamble reports whether the first line of a file is a non-XML preamble
// line. A line beginning with "<" (which covers the XML declaration) is part
// of the document; an empty line is left alone for the parser to skip.
func hasPreamble(firstLine string) bool {
	trimmed := strings.TrimSpace(firstLine)
	trimmed = strings.TrimPrefix(trimmed, "\ufeff")
	return trimmed != "" && !strings.HasPrefix(trimmed, "<")
}

// documentReader pairs the buffered/spliced reader with the underlying file
// so closing the stream closes the file.
type documentReader struct {
	reader io.Reader
	closer io.Closer
}

func (document *documentReader) Read(p []byte) (int, error) {
	return document.reader.Read(p)
}

func (document *documentReader) Close() error {
	return document.closer.Close()
}
