package chunker

import (
	"testing"
)

func TestClassifyContainer(t *testing.T) {
	cases := []struct {
		name     string
		document string
		expected Container
	}{
		{
			name:     "inside body",
			document: `<Legislation xmlns="` + NamespaceLegislation + `"><Body><Part><P1 id="r"/></Part></Body></Legislation>`,
			expected: ContainerBody,
		},
		{
			name:     "inside schedule",
			document: `<Legislation xmlns="` + NamespaceLegislation + `"><Schedules><Schedule><P1 id="p"/></Schedule></Schedules></Legislation>`,
			expected: ContainerSchedule,
		},
		{
			name: "nearest container wins",
			document: `<Legislation xmlns="` + NamespaceLegislation + `"><Body><Schedule><P1 id="p"/></Schedule></Body></Legislation>`,
			// Schedule is the closer ancestor even though Body encloses it.
			expected: ContainerSchedule,
		},
		{
			name:     "neither ancestor",
			document: `<Legislation xmlns="` + NamespaceLegislation + `"><Appendix><P1 id="x"/></Appendix></Legislation>`,
			expected: ContainerUnknown,
		},
		{
			name: "foreign namespace Body does not classify",
			document: `<root xmlns:leg="` + NamespaceLegislation + `" xmlns:o="urn:other">` +
				`<o:Body><leg:P1 id="x"/></o:Body></root>`,
			expected: ContainerUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			element := singleMatch(t, tc.document, "P1")
			if got := ClassifyContainer(element); got != tc.expected {
				t.Errorf("container: got %s, want %s", got, tc.expected)
			}
		})
	}
}
