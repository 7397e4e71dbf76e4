package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const tocSource = `# Pendahuluan

Teks pembuka.

## **Apa itu** Uji-T?

### Asumsi Normalitas

# Langkah Analisis

` + "```md\n# bukan heading\n```\n" + `
#### Catatan
`

func TestGenerateTOCDefaultsToTopLevel(t *testing.T) {
	got := GenerateTOC([]byte(tocSource), DefaultTOCOptions)
	want := []interfaces.TocItem{
		{ID: "pendahuluan", Title: "Pendahuluan", Level: 1, URL: "#pendahuluan"},
		{ID: "langkah-analisis", Title: "Langkah Analisis", Level: 1, URL: "#langkah-analisis"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("toc mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTOCLevelRange(t *testing.T) {
	got := GenerateTOC([]byte(tocSource), TOCOptionsFor(1, 6))
	want := []interfaces.TocItem{
		{ID: "pendahuluan", Title: "Pendahuluan", Level: 1, URL: "#pendahuluan"},
		{ID: "apa-itu-uji-t", Title: "**Apa itu** Uji-T?", Level: 2, URL: "#apa-itu-uji-t"},
		{ID: "asumsi-normalitas", Title: "Asumsi Normalitas", Level: 3, URL: "#asumsi-normalitas"},
		{ID: "langkah-analisis", Title: "Langkah Analisis", Level: 1, URL: "#langkah-analisis"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("toc mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTOCEmpty(t *testing.T) {
	got := GenerateTOC([]byte("Tanpa heading sama sekali.\n"), DefaultTOCOptions)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil toc, got %#v", got)
	}
}

func TestGenerateTOCSkipsEmptyAnchors(t *testing.T) {
	got := GenerateTOC([]byte("# ???\n\n# Valid\n"), DefaultTOCOptions)
	if len(got) != 1 || got[0].ID != "valid" {
		t.Fatalf("unexpected toc %#v", got)
	}
}
