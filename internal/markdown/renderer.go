package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// ErrRender wraps failures raised while converting a document.
var ErrRender = errors.New("markdown: render failed")

// maxAnchoredLevel is the deepest heading that receives an id attribute.
const maxAnchoredLevel = 3

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
}

var defaultExtensions = []string{"table", "strikethrough"}

// Renderer converts article markdown into HTML. It keeps no per-call state
// and is safe for concurrent use.
type Renderer struct {
	extensions []goldmark.Extender
	hardWraps  bool
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// Option customises a Renderer.
type Option func(*Renderer)

// WithExtensions replaces the default goldmark extensions. Unknown names are
// ignored.
func WithExtensions(names ...string) Option {
	return func(r *Renderer) {
		r.extensions = collectExtensions(names)
	}
}

// WithHardWraps renders single newlines inside paragraphs as <br>.
func WithHardWraps() Option {
	return func(r *Renderer) {
		r.hardWraps = true
	}
}

// NewRenderer builds a renderer with tables and strikethrough enabled.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{extensions: collectExtensions(defaultExtensions)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render converts source into HTML leaving image destinations untouched.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	return r.RenderWithBase(source, "")
}

// RenderWithBase converts source into HTML after prefixing every local image
// destination with base. Raw <img> tags in the source are emitted verbatim.
func (r *Renderer) RenderWithBase(source []byte, base string) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrRender, rec)
		}
	}()

	var buf bytes.Buffer
	if err := r.engine(base).Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) engine(base string) goldmark.Markdown {
	transformers := []util.PrioritizedValue{
		util.Prioritized(headingAnchors{maxLevel: maxAnchoredLevel}, 100),
	}
	if strings.TrimSpace(base) != "" {
		transformers = append(transformers, util.Prioritized(imageBase{base: base}, 200))
	}

	// Raw HTML must survive so embedded <img> tags with data URIs pass through.
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if r.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(r.extensions...),
		goldmark.WithParserOptions(parser.WithASTTransformers(transformers...)),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, ext)
	}
	return extenders
}
