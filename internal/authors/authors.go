// Package authors reads author profiles stored as one JSON file each.
package authors

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

var (
	ErrAuthorNotFound = errors.New("authors: author not found")
	ErrAuthorInvalid  = errors.New("authors: profile does not match schema")
)

//go:embed author.schema.json
var authorSchema []byte

// Social is one external profile link.
type Social struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Author is a writer profile.
type Author struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Social      []Social `json:"social,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Slug        string   `json:"slug"`
}

// Directory reads profiles on every call so edits show up without a restart.
type Directory struct {
	fsys   fs.FS
	schema *jsonschema.Schema
	logger interfaces.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger used for skipped profiles.
func WithLogger(logger interfaces.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDirectory reads *.json profiles from the root of fsys.
func NewDirectory(fsys fs.FS, opts ...Option) (*Directory, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	d := &Directory{fsys: fsys, schema: schema, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// NewDirDirectory reads profiles from dir on the local filesystem.
func NewDirDirectory(dir string, opts ...Option) (*Directory, error) {
	return NewDirectory(os.DirFS(dir), opts...)
}

// All returns every valid profile ordered by file name. A missing directory
// yields an empty list.
func (d *Directory) All(ctx context.Context) ([]Author, error) {
	entries, err := fs.ReadDir(d.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Author{}, nil
		}
		return nil, fmt.Errorf("authors: read directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	authors := []Author{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		author, err := d.read(entry.Name())
		if err != nil {
			d.logger.Warn("authors.profile.skipped", "file", entry.Name(), "error", err)
			continue
		}
		authors = append(authors, author)
	}
	return authors, nil
}

// ByName finds a profile by its exact display name, as written in article
// front matter.
func (d *Directory) ByName(ctx context.Context, name string) (Author, error) {
	return d.find(ctx, func(a Author) bool { return a.Name == name })
}

func (d *Directory) BySlug(ctx context.Context, slug string) (Author, error) {
	return d.find(ctx, func(a Author) bool { return a.Slug == slug })
}

func (d *Directory) find(ctx context.Context, match func(Author) bool) (Author, error) {
	authors, err := d.All(ctx)
	if err != nil {
		return Author{}, err
	}
	for _, author := range authors {
		if match(author) {
			return author, nil
		}
	}
	return Author{}, ErrAuthorNotFound
}

func (d *Directory) read(name string) (Author, error) {
	data, err := fs.ReadFile(d.fsys, path.Clean(name))
	if err != nil {
		return Author{}, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Author{}, fmt.Errorf("authors: decode %s: %w", name, err)
	}
	if err := d.schema.Validate(doc); err != nil {
		return Author{}, fmt.Errorf("%w: %s: %v", ErrAuthorInvalid, name, err)
	}

	var author Author
	if err := json.Unmarshal(data, &author); err != nil {
		return Author{}, fmt.Errorf("authors: decode %s: %w", name, err)
	}
	return author, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("author.schema.json", bytes.NewReader(authorSchema)); err != nil {
		return nil, fmt.Errorf("authors: load schema: %w", err)
	}
	schema, err := compiler.Compile("author.schema.json")
	if err != nil {
		return nil, fmt.Errorf("authors: compile schema: %w", err)
	}
	return schema, nil
}
