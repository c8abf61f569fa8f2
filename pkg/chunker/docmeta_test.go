package chunker

import (
	"strings"
	"testing"
)

const metadataBlock = `<ukm:Metadata xmlns:ukm="` + NamespaceMetadata + `" xmlns:dc="` + NamespaceDublinCore + `">
	<dc:title>The Maternity and Parental Leave etc. Regulations 1999</dc:title>
	<ukm:SecondaryMetadata>
		<ukm:Year Value="1999"/>
		<ukm:Number Value="3312"/>
		<ukm:Made Date="1999-12-10"/>
		<ukm:Statistics>
			<ukm:TotalParagraphs Value="44"/>
			<ukm:BodyParagraphs Value="28"/>
			<ukm:ScheduleParagraphs Value="16"/>
		</ukm:Statistics>
	</ukm:SecondaryMetadata>
</ukm:Metadata>`

func TestReadDocumentMetadata(t *testing.T) {
	document := `<Legislation xmlns="` + NamespaceLegislation + `">` + metadataBlock + `<Body/></Legislation>`

	metadata, err := readDocumentMetadata(strings.NewReader(document))
	if err != nil {
		t.Fatalf("readDocumentMetadata failed: %v", err)
	}

	if metadata.Title != "The Maternity and Parental Leave etc. Regulations 1999" {
		t.Errorf("title: got %q", metadata.Title)
	}
	if metadata.Year != "1999" {
		t.Errorf("year: got %q, want %q", metadata.Year, "1999")
	}
	if metadata.Number != "3312" {
		t.Errorf("number: got %q, want %q", metadata.Number, "3312")
	}
	if metadata.MadeDate != "1999-12-10" {
		t.Errorf("made date: got %q, want %q", metadata.MadeDate, "1999-12-10")
	}
	if metadata.TotalParagraphs == nil || *metadata.TotalParagraphs != 44 {
		t.Errorf("total paragraphs: got %v, want 44", metadata.TotalParagraphs)
	}
	if metadata.BodyParagraphs == nil || *metadata.BodyParagraphs != 28 {
		t.Errorf("body paragraphs: got %v, want 28", metadata.BodyParagraphs)
	}
	if metadata.ScheduleParagraphs == nil || *metadata.ScheduleParagraphs != 16 {
		t.Errorf("schedule paragraphs: got %v, want 16", metadata.ScheduleParagraphs)
	}
}

func TestReadDocumentMetadataNonNumericCount(t *testing.T) {
	document := `<Legislation xmlns="` + NamespaceLegislation + `">
		<ukm:Metadata xmlns:ukm="` + NamespaceMetadata + `">
			<ukm:Year Value="2004"/>
			<ukm:TotalParagraphs Value="many"/>
		</ukm:Metadata>
	</Legislation>`

	metadata, err := readDocumentMetadata(strings.NewReader(document))
	if err != nil {
		t.Fatalf("readDocumentMetadata failed: %v", err)
	}
	if metadata.Year != "2004" {
		t.Errorf("year: got %q, want %q", metadata.Year, "2004")
	}
	if metadata.TotalParagraphs != nil {
		t.Errorf("non-numeric count must be absent, got %v", *metadata.TotalParagraphs)
	}
}

func TestReadDocumentMetadataFirstBlockWins(t *testing.T) {
	document := `<Legislation xmlns="` + NamespaceLegislation + `">
		<ukm:Metadata xmlns:ukm="` + NamespaceMetadata + `"><ukm:Year Value="1999"/></ukm:Metadata>
		<ukm:Metadata xmlns:ukm="` + NamespaceMetadata + `"><ukm:Year Value="2024"/></ukm:Metadata>
	</Legislation>`

	metadata, err := readDocumentMetadata(strings.NewReader(document))
	if err != nil {
		t.Fatalf("readDocumentMetadata failed: %v", err)
	}
	if metadata.Year != "1999" {
		t.Errorf("year: got %q, want %q (first metadata block)", metadata.Year, "1999")
	}
}

func TestReadDocumentMetadataMissingBlock(t *testing.T) {
	document := `<Legislation xmlns="` + NamespaceLegislation + `"><Body/></Legislation>`

	metadata, err := readDocumentMetadata(strings.NewReader(document))
	if err != nil {
		t.Fatalf("readDocumentMetadata failed: %v", err)
	}
	if metadata != (DocumentMetadata{}) {
		t.Errorf("expected empty metadata record, got %+v", metadata)
	}
}
