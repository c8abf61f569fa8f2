package chunker

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Element is a node in the partial document tree built during streaming.
// Text holds character data appearing before the first child; Tail holds
// character data appearing after this element's end tag, inside the parent
// (reading-order text that belongs between siblings).
type Element struct {
	Space    string
	Local    string
	Attr     map[string]string
	Text     string
	Tail     string
	Parent   *Element
	Children []*Element

	// tailOwner is the most recently closed child; subsequent character
	// data at this level is attributed to that child's Tail.
	tailOwner *Element
}

// ElementStream produces completed elements matching a target qualified name
// from a forward-only pass over an XML stream. Each call to Next releases the
// previously returned element and its already-consumed preceding siblings, so
// peak memory is bounded by the content between matches rather than by
// document size.
type ElementStream struct {
	decoder *xml.Decoder
	space   string
	local   string
	current *Element
	prev    *Element
	done    bool
}

// NewElementStream creates a stream over reader that matches elements with
// the given namespace URI and local name. The decoder runs in non-strict
// mode, matching how source files with minor defects are tolerated elsewhere.
func NewElementStream(reader io.Reader, space string, local string) *ElementStream {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = false

	return &ElementStream{
		decoder: decoder,
		space:   space,
		local:   local,
	}
}

// Next returns the next completed matching element, or io.EOF when the
// document is exhausted. The returned element remains valid until the
// following call to Next, at which point its subtree is released. Ancestors
// stay reachable through Parent links for classification.
func (stream *ElementStream) Next() (*Element, error) {
	if stream.prev != nil {
		stream.release(stream.prev)
		stream.prev = nil
	}
	if stream.done {
		return nil, io.EOF
	}

	for {
		token, err := stream.decoder.Token()
		if err != nil {
			if err == io.EOF {
				stream.done = true
				return nil, io.EOF
			}
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		switch typed := token.(type) {
		case xml.StartElement:
			element := &Element{
				Space:  typed.Name.Space,
				Local:  typed.Name.Local,
				Parent: stream.current,
			}
			if len(typed.Attr) > 0 {
				element.Attr = make(map[string]string, len(typed.Attr))
				for _, attr := range typed.Attr {
					element.Attr[attr.Name.Local] = attr.Value
				}
			}
			if stream.current != nil {
				stream.current.Children = append(stream.current.Children, element)
			}
			stream.current = element

		case xml.EndElement:
			finished := stream.current
			if finished == nil {
				// Stray end tag in non-strict mode.
				continue
			}
			stream.current = finished.Parent
			if stream.current != nil {
				stream.current.tailOwner = finished
			}
			if finished.Space == stream.space && finished.Local == stream.local {
				stream.prev = finished
				return finished, nil
			}

		case xml.CharData:
			if stream.current == nil {
				continue
			}
			if owner := stream.current.tailOwner; owner != nil {
				owner.Tail += string(typed)
			} else {
				stream.current.Text += string(typed)
			}
		}
	}
}

// release drops the consumed element's subtree and any fully processed
// preceding siblings, keeping the element itself in place as a position
// marker within its parent.
func (stream *ElementStream) release(element *Element) {
	element.Children = nil
	element.tailOwner = nil

	parent := element.Parent
	if parent == nil {
		return
	}
	for index, sibling := range parent.Children {
		if sibling == element {
			if index > 0 {
				kept := make([]*Element, len(parent.Children)-index)
				copy(kept, parent.Children[index:])
				parent.Children = kept
			}
			return
		}
	}
}

// findDescendant returns the first descendant of element (excluding element
// itself) with the given namespace and local name, in document order.
func findDescendant(element *Element, space string, local string) *Element {
	for _, child := range element.Children {
		if child.Space == space && child.Local == local {
			return child
		}
		if found := findDescendant(child, space, local); found != nil {
			return found
		}
	}
	return nil
}

// findAllDescendants returns every descendant of element with the given
// namespace and local name, in document order.
func findAllDescendants(element *Element, space string, local string) []*Element {
	var matches []*Element
	for _, child := range element.Children {
		if child.Space == space && child.Local == local {
			matches = append(matches, child)
		}
		matches = append(matches, findAllDescendants(child, space, local)...)
	}
	return matches
}
