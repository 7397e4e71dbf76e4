package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// DefaultTOCOptions lists top-level headings only, the shape long-standing
// articles were written for.
var DefaultTOCOptions = interfaces.TOCOptions{MinLevel: 1, MaxLevel: 1}

var defaultRenderer = NewRenderer()

// GenerateTOC outlines source with the default renderer configuration.
func GenerateTOC(source []byte, opts interfaces.TOCOptions) []interfaces.TocItem {
	return defaultRenderer.TOC(source, opts)
}

// TOC lists the headings of source whose level falls inside opts, in
// document order. Titles keep their markdown emphasis. Ids are read back from
// the same parse Render uses, so every entry links to a rendered anchor.
func (r *Renderer) TOC(source []byte, opts interfaces.TOCOptions) []interfaces.TocItem {
	minLevel, maxLevel := clampLevels(opts)

	doc := r.engine("").Parser().Parse(text.NewReader(source))
	items := []interfaces.TocItem{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level < minLevel || heading.Level > maxLevel {
			return ast.WalkSkipChildren, nil
		}
		id := anchorOf(heading)
		if id == "" {
			return ast.WalkSkipChildren, nil
		}
		items = append(items, interfaces.TocItem{
			ID:    id,
			Title: rawText(heading, source),
			Level: heading.Level,
			URL:   "#" + id,
		})
		return ast.WalkSkipChildren, nil
	})
	return items
}

func anchorOf(heading *ast.Heading) string {
	value, ok := heading.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := value.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

func clampLevels(opts interfaces.TOCOptions) (int, int) {
	minLevel, maxLevel := opts.MinLevel, opts.MaxLevel
	if minLevel < 1 {
		minLevel = 1
	}
	if maxLevel < minLevel {
		maxLevel = minLevel
	}
	if maxLevel > maxAnchoredLevel {
		maxLevel = maxAnchoredLevel
	}
	return minLevel, maxLevel
}

// TOCOptionsFor is shorthand for an outline bounded to [minLevel, maxLevel].
func TOCOptionsFor(minLevel, maxLevel int) interfaces.TOCOptions {
	return interfaces.TOCOptions{MinLevel: minLevel, MaxLevel: maxLevel}
}
