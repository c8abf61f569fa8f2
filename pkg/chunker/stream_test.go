package chunker

import (
	"io"
	"strings"
	"testing"
)

const streamTestNamespace = NamespaceLegislation

func collectMatches(t *testing.T, document string, local string) []*Element {
	t.Helper()
	stream := NewElementStream(strings.NewReader(document), streamTestNamespace, local)

	var matches []*Element
	for {
		element, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("stream error: %v", err)
		}
		matches = append(matches, element)
	}
	return matches
}

func TestStreamMatchesByQualifiedName(t *testing.T) {
	document := `<Legislation xmlns="` + NamespaceLegislation + `">
		<Body>
			<P1 id="one"/>
			<P1 id="two"/>
			<Other><P1 id="three"/></Other>
		</Body>
	</Legislation>`

	stream := NewElementStream(strings.NewReader(document), NamespaceLegislation, "P1")

	var ids []string
	for {
		element, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("stream error: %v", err)
		}
		ids = append(ids, element.Attr["id"])
	}

	expected := []string{"one", "two", "three"}
	if len(ids) != len(expected) {
		t.Fatalf("matched %d elements, want %d", len(ids), len(expected))
	}
	for index, id := range expected {
		if ids[index] != id {
			t.Errorf("match %d: got id %q, want %q", index, ids[index], id)
		}
	}
}

func TestStreamIgnoresOtherNamespaces(t *testing.T) {
	document := `<root xmlns:leg="` + NamespaceLegislation + `" xmlns:other="urn:other">
		<leg:P1 id="wanted"/>
		<other:P1 id="unwanted"/>
	</root>`

	matches := collectMatches(t, document, "P1")
	if len(matches) != 1 {
		t.Fatalf("matched %d elements, want 1", len(matches))
	}
	if matches[0].Attr["id"] != "wanted" {
		t.Errorf("matched element id: got %q, want %q", matches[0].Attr["id"], "wanted")
	}
}

func TestStreamPrefixedDocumentMatches(t *testing.T) {
	// Prefixed and default-namespace forms of the same document must match
	// identically, since matching is on resolved namespace URIs.
	prefixed := `<leg:Body xmlns:leg="` + NamespaceLegislation + `"><leg:P1 id="r1"/></leg:Body>`
	defaulted := `<Body xmlns="` + NamespaceLegislation + `"><P1 id="r1"/></Body>`

	prefixedMatches := collectMatches(t, prefixed, "P1")
	defaultedMatches := collectMatches(t, defaulted, "P1")

	if len(prefixedMatches) != 1 || len(defaultedMatches) != 1 {
		t.Fatalf("matches: prefixed %d, defaulted %d, want 1 each", len(prefixedMatches), len(defaultedMatches))
	}
	if prefixedMatches[0].Attr["id"] != defaultedMatches[0].Attr["id"] {
		t.Error("prefixed and default-namespace documents produced different matches")
	}
}

func TestStreamTailTextAttribution(t *testing.T) {
	document := `<P1 xmlns="` + NamespaceLegislation + `">leading <Addition>added</Addition> trailing</P1>`

	matches := collectMatches(t, document, "P1")
	if len(matches) != 1 {
		t.Fatalf("matched %d elements, want 1", len(matches))
	}

	element := matches[0]
	if got := strings.TrimSpace(element.Text); got != "leading" {
		t.Errorf("own text: got %q, want %q", got, "leading")
	}
	if len(element.Children) != 1 {
		t.Fatalf("children: got %d, want 1", len(element.Children))
	}
	child := element.Children[0]
	if child.Text != "added" {
		t.Errorf("child text: got %q, want %q", child.Text, "added")
	}
	if got := strings.TrimSpace(child.Tail); got != "trailing" {
		t.Errorf("child tail: got %q, want %q", got, "trailing")
	}
}

func TestStreamParentChainAvailable(t *testing.T) {
	document := `<Legislation xmlns="` + NamespaceLegislation + `"><Body><Part><P1 id="r1"/></Part></Body></Legislation>`

	matches := collectMatches(t, document, "P1")
	if len(matches) != 1 {
		t.Fatalf("matched %d elements, want 1", len(matches))
	}

	var chain []string
	for ancestor := matches[0].Parent; ancestor != nil; ancestor = ancestor.Parent {
		chain = append(chain, ancestor.Local)
	}
	expected := []string{"Part", "Body", "Legislation"}
	if len(chain) != len(expected) {
		t.Fatalf("ancestor chain %v, want %v", chain, expected)
	}
	for index := range expected {
		if chain[index] != expected[index] {
			t.Fatalf("ancestor chain %v, want %v", chain, expected)
		}
	}
}

func TestStreamReleasesConsumedElements(t *testing.T) {
	document := `<Body xmlns="` + NamespaceLegislation + `">
		<P1 id="one"><Text>first</Text></P1>
		<P1 id="two"><Text>second</Text></P1>
	</Body>`

	stream := NewElementStream(strings.NewReader(document), NamespaceLegislation, "P1")

	first, err := stream.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	if len(first.Children) == 0 {
		t.Fatal("first element should retain its subtree while being consumed")
	}

	second, err := stream.Next()
	if err != nil {
		t.Fatalf("second Next failed: %v", err)
	}

	// Pulling the second match must have released the first one's subtree.
	if first.Children != nil {
		t.Error("first element subtree was not released")
	}

	// Draining the stream releases the second match and prunes consumed
	// preceding siblings from the parent.
	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if second.Children != nil {
		t.Error("second element subtree was not released")
	}
	if parent := second.Parent; parent != nil {
		for _, sibling := range parent.Children {
			if sibling == first {
				t.Error("consumed preceding sibling was not pruned from parent")
			}
		}
	}
}

func TestStreamMalformedInput(t *testing.T) {
	stream := NewElementStream(strings.NewReader("<root><unclosed"), NamespaceLegislation, "P1")

	_, err := stream.Next()
	if err == nil || err == io.EOF {
		t.Fatalf("expected parse error for truncated document, got %v", err)
	}
	if !strings.Contains(err.Error(), "malformed XML") {
		t.Errorf("error should identify malformed XML, got %v", err)
	}
}
