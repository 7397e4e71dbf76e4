package markdown

import (
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// headingAnchors stamps an id on every heading up to maxLevel.
type headingAnchors struct {
	maxLevel int
}

func (h headingAnchors) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level <= h.maxLevel {
			if id := HeadingID(plainText(heading, source)); id != "" {
				heading.SetAttributeString("id", []byte(id))
			}
		}
		return ast.WalkSkipChildren, nil
	})
}

// imageBase prefixes local image destinations with base.
type imageBase struct {
	base string
}

func (t imageBase) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			img.Destination = []byte(ResolveImage(string(img.Destination), t.base))
		}
		return ast.WalkContinue, nil
	})
}

// IsExternalImage reports whether dest must never be rewritten: absolute
// http(s) URLs, protocol-relative URLs, data URIs and site-absolute paths.
func IsExternalImage(dest string) bool {
	lower := strings.ToLower(strings.TrimSpace(dest))
	switch {
	case strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "data:"),
		strings.HasPrefix(lower, "/"):
		return true
	}
	return false
}

// ResolveImage joins a local image destination onto base. External
// destinations and an empty base return dest unchanged.
func ResolveImage(dest, base string) string {
	if strings.TrimSpace(base) == "" || dest == "" || IsExternalImage(dest) {
		return dest
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimPrefix(dest, "./")
}

// LocalImageBase is the public folder serving a post's images. It uses the
// post folder, which may differ from the slug.
func LocalImageBase(prefix, category, folder string) string {
	if prefix == "" {
		prefix = "/"
	}
	return path.Join("/", prefix, category, folder) + "/"
}

// plainText concatenates the literal text under n, dropping emphasis
// markers, link destinations and raw HTML.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := child.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// rawText returns the heading source as written, markers included.
func rawText(heading *ast.Heading, source []byte) string {
	var b strings.Builder
	lines := heading.Lines()
	for i := 0; i < lines.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}
	return strings.TrimSpace(b.String())
}
