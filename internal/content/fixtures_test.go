package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

type fixturePost struct {
	category string
	folder   string
	file     string
	source   string
}

func writeFixture(t *testing.T, root string, posts ...fixturePost) {
	t.Helper()
	for _, post := range posts {
		name := post.file
		if name == "" {
			name = "index.mdx"
		}
		dir := filepath.Join(root, post.category, post.folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(post.source), 0o644); err != nil {
			t.Fatalf("write %s: %v", dir, err)
		}
	}
}

func doc(frontMatter, body string) string {
	return "---\n" + strings.TrimSpace(frontMatter) + "\n---\n" + body
}

// corpus is the three-article site used across the package tests.
func corpus() []fixturePost {
	return []fixturePost{
		{
			category: "metode-statistik",
			folder:   "uji-t",
			source: doc(`
title: "Uji T Independen"
description: "Panduan lengkap uji t"
date: "2024-03-01"
author: "Tim Restat"
tags: ["t-test", "parametrik"]
featured: true
`, "# Pendahuluan\n\nUji t membandingkan dua rata-rata.\n"),
		},
		{
			category: "metode-statistik",
			folder:   "anova",
			source: doc(`
title: "Anova Satu Arah"
description: "Membandingkan lebih dari dua kelompok"
date: "2024-02-01"
author: "Dewi"
tags: ["parametrik"]
`, "Anova dipakai untuk tiga kelompok atau lebih.\n"),
		},
		{
			category: "interpretasi-uji-statistik",
			folder:   "korelasi",
			source: doc(`
title: "Korelasi Pearson"
date: "2024-01-10"
author: "Tim Restat"
tags: ["korelasi"]
`, "Korelasi mengukur hubungan linear.\n"),
		},
	}
}

func frontMatterWithDescription(description string) interfaces.FrontMatter {
	return interfaces.FrontMatter{Description: description}
}
