package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the display metadata of a topic category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Known       bool   `json:"known"`
}

var knownCategories = []Category{
	{
		ID:          "interpretasi-uji-statistik",
		Name:        "Interpretasi Hasil",
		Description: "Cara interpretasi uji statistik adalah cara memahami hasil dari analisis statistik. Kami membahas cara interpretasi yang mudah dipahami oleh pemula",
		Color:       "#472183",
		Icon:        "lightbulb",
		Known:       true,
	},
	{
		ID:          "metode-statistik",
		Name:        "Metode Statistik",
		Description: "Berikut langkah langkah dalam metode penelitian",
		Color:       "#82c3ec",
		Icon:        "bar-chart-3",
		Known:       true,
	},
	{
		ID:          "metode-penelitian",
		Name:        "Metode Penelitian",
		Description: "Metode penelitian yang digunakan harus sesuai dengan jenis data yang dikumpulkan dan tujuan penelitian yang ingin dicapai.",
		Color:       "#3795bd",
		Icon:        "book-open",
		Known:       true,
	},
	{
		ID:          "software-statistik",
		Name:        "Software Statistik",
		Description: "Disini kami membahas pengenalan software statistik yang sering dipakai oleh pemula seperti, SPSS, EViews, Stata, AMOS, LISREL dan SmartPLS",
		Color:       "#0078b0",
		Icon:        "code-2",
		Known:       true,
	},
	{
		ID:          "tutorial-analisis-statistik",
		Name:        "Pengolahan Data",
		Description: "Tutorial analisis statistik yang kami buat untuk anda semudah mungkin di pahami untuk pemula. Anda akan mempelajari berbagai pengujian hipotesis.",
		Color:       "#4b56d2",
		Icon:        "flask-conical",
		Known:       true,
	},
}

// KnownCategories returns the static category table in display order.
func KnownCategories() []Category {
	return append([]Category(nil), knownCategories...)
}

// LookupCategory resolves display metadata for id. Unknown ids get a
// capitalised name and no colour or icon.
func LookupCategory(id string) Category {
	for _, category := range knownCategories {
		if category.ID == id {
			return category
		}
	}
	return Category{ID: id, Name: CategoryDisplayName(id)}
}

// CategoryDisplayName is the human label for id.
func CategoryDisplayName(id string) string {
	for _, category := range knownCategories {
		if category.ID == id {
			return category.Name
		}
	}
	return capitalizeWords(strings.ReplaceAll(id, "-", " "))
}

// capitalizeWords upper-cases the first letter of every word and leaves the
// rest as written, so acronyms such as AMOS survive.
func capitalizeWords(s string) string {
	upper := cases.Upper(language.Indonesian)
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !inWord {
			b.WriteString(upper.String(string(r)))
		} else {
			b.WriteRune(r)
		}
		inWord = word
	}
	return b.String()
}
