package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/restatolahdata/go-artikel/internal/content"
)

func TestBuildSitemap(t *testing.T) {
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	xml := Build("https://restatolahdata.id/", []Entry{
		{Path: "/artikel/metode-statistik/uji-t", LastMod: published},
		{Path: "/"},
		{Path: "artikel"},
		{Path: "/dashboard/orders"},
		{Path: "/api/search"},
		{Path: "/artikel/metode-statistik/uji-t"},
		{Path: "/tentang?a=1&b=2"},
	}, fallback)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://restatolahdata.id/</loc>
    <lastmod>2025-01-01T00:00:00Z</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
  <url>
    <loc>https://restatolahdata.id/artikel</loc>
    <lastmod>2025-01-01T00:00:00Z</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.9</priority>
  </url>
  <url>
    <loc>https://restatolahdata.id/artikel/metode-statistik/uji-t</loc>
    <lastmod>2024-03-01T00:00:00Z</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.8</priority>
  </url>
  <url>
    <loc>https://restatolahdata.id/tentang?a=1&amp;b=2</loc>
    <lastmod>2025-01-01T00:00:00Z</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.7</priority>
  </url>
</urlset>
`
	if diff := cmp.Diff(want, xml); diff != "" {
		t.Fatalf("sitemap mismatch (-want +got):\n%s", diff)
	}
}

func TestRobots(t *testing.T) {
	robots := Robots("https://restatolahdata.id")
	for _, want := range []string{
		"User-agent: *\nAllow: /\n",
		"Disallow: /dashboard\n",
		"Disallow: /payment-confirmation\n",
		"Disallow: /api\n",
		"Sitemap: https://restatolahdata.id/sitemap.xml\n",
	} {
		if !strings.Contains(robots, want) {
			t.Fatalf("robots missing %q:\n%s", want, robots)
		}
	}
}

func TestEntries(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	posts := []content.Post{
		{Slug: "anova", Category: "metode-statistik", PublishedAt: newer},
		{Slug: "korelasi", Category: "interpretasi-uji-statistik", PublishedAt: older},
	}

	got := Entries(posts, []string{"interpretasi-uji-statistik", "metode-statistik", "kosong"})
	want := []Entry{
		{Path: "/", LastMod: newer},
		{Path: "/artikel", LastMod: newer},
		{Path: "/artikel/interpretasi-uji-statistik", LastMod: older},
		{Path: "/artikel/metode-statistik", LastMod: newer},
		{Path: "/artikel/kosong"},
		{Path: "/artikel/metode-statistik/anova", LastMod: newer},
		{Path: "/artikel/interpretasi-uji-statistik/korelasi", LastMod: older},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestIsExcluded(t *testing.T) {
	for route, want := range map[string]bool{
		"/dashboard":         true,
		"/dashboard/x":       true,
		"/dashboards":        false,
		"/api":               true,
		"/artikel/api-guide": false,
	} {
		if got := IsExcluded(route); got != want {
			t.Fatalf("IsExcluded(%q) = %v, want %v", route, got, want)
		}
	}
}
