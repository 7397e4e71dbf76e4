package content

import (
	"strings"
	"testing"
)

func TestLookupCategory(t *testing.T) {
	known := LookupCategory("tutorial-analisis-statistik")
	if !known.Known || known.Name != "Pengolahan Data" || known.Color != "#4b56d2" || known.Icon != "flask-conical" {
		t.Fatalf("unexpected known category %#v", known)
	}

	unknown := LookupCategory("analisis-regresi-logistik")
	if unknown.Known || unknown.Name != "Analisis Regresi Logistik" || unknown.Color != "" {
		t.Fatalf("unexpected fallback %#v", unknown)
	}
}

func TestCategoryDisplayNameKeepsCasing(t *testing.T) {
	names := map[string]string{
		"spss-AMOS":                 "Spss AMOS",
		"analisis-regresi-logistik": "Analisis Regresi Logistik",
		"uji-t":                     "Uji T",
		"r_studio-2":                "R_studio 2",
		"metode-statistik":          "Metode Statistik",
		"":                          "",
	}
	for id, want := range names {
		if got := CategoryDisplayName(id); got != want {
			t.Fatalf("CategoryDisplayName(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestKnownCategoriesIsACopy(t *testing.T) {
	list := KnownCategories()
	if len(list) != 5 {
		t.Fatalf("expected five categories, got %d", len(list))
	}
	list[0].Name = "changed"
	if KnownCategories()[0].Name == "changed" {
		t.Fatalf("table mutated through returned slice")
	}
}

func TestExcerpt(t *testing.T) {
	withDescription := Post{FrontMatter: frontMatterWithDescription("  Ringkasan singkat ")}
	if got := Excerpt(withDescription); got != "Ringkasan singkat" {
		t.Fatalf("unexpected excerpt %q", got)
	}

	long := strings.Repeat("é", 200)
	if got := Excerpt(Post{Content: long}); got != strings.Repeat("é", 150)+"..." {
		t.Fatalf("expected 150 runes plus ellipsis, got %d runes", len([]rune(got)))
	}

	if got := Excerpt(Post{Content: "pendek"}); got != "pendek..." {
		t.Fatalf("unexpected short excerpt %q", got)
	}
}
