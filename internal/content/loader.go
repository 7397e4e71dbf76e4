package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/internal/markdown"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const (
	defaultDocumentName  = "index.mdx"
	fallbackDocumentName = "index.md"
)

// Loader reads posts from a category/folder tree.
type Loader struct {
	fsys          fs.FS
	documentNames []string
	logger        interfaces.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDocumentName sets the file looked up inside every post folder.
// index.md stays accepted as a fallback.
func WithDocumentName(name string) LoaderOption {
	return func(l *Loader) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		l.documentNames = []string{name}
		if name != fallbackDocumentName {
			l.documentNames = append(l.documentNames, fallbackDocumentName)
		}
	}
}

// WithLoaderLogger sets the logger used for skipped documents.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader reads posts from fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{
		fsys:          fsys,
		documentNames: []string{defaultDocumentName, fallbackDocumentName},
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// NewDirLoader reads posts below root on the local filesystem.
func NewDirLoader(root string, opts ...LoaderOption) *Loader {
	return NewLoader(os.DirFS(root), opts...)
}

// LoadResult is one full pass over the tree.
type LoadResult struct {
	Posts       []Post
	Issues      []LoadIssue
	Fingerprint string
}

// Load reads and parses every post, newest first. A missing root yields an
// empty result.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	docs, issues, err := l.scan(ctx)
	if err != nil {
		return LoadResult{}, err
	}
	posts, parseIssues := l.parse(docs)
	return LoadResult{
		Posts:       posts,
		Issues:      append(issues, parseIssues...),
		Fingerprint: fingerprint(docs),
	}, nil
}

// Categories lists the category directories in lexical order.
func (l *Loader) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}
	categories := []string{}
	for _, entry := range entries {
		if isContentDir(entry) {
			categories = append(categories, entry.Name())
		}
	}
	return categories, nil
}

type document struct {
	category string
	folder   string
	path     string
	data     []byte
}

func (l *Loader) scan(ctx context.Context) ([]document, []LoadIssue, error) {
	categories, err := l.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}

	var (
		docs   []document
		issues []LoadIssue
	)
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		folders, err := fs.ReadDir(l.fsys, category)
		if err != nil {
			issues = append(issues, l.skip(LoadIssue{Path: category, Category: category, Reason: "category unreadable", Err: err}))
			continue
		}
		for _, folder := range folders {
			if !isContentDir(folder) {
				continue
			}
			doc, found, err := l.readDocument(category, folder.Name())
			if err != nil {
				issues = append(issues, l.skip(LoadIssue{Path: doc.path, Category: category, Folder: folder.Name(), Reason: "document unreadable", Err: err}))
				continue
			}
			if found {
				docs = append(docs, doc)
			}
		}
	}
	return docs, issues, nil
}

func (l *Loader) readDocument(category, folder string) (document, bool, error) {
	for _, name := range l.documentNames {
		p := path.Join(category, folder, name)
		data, err := fs.ReadFile(l.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		doc := document{category: category, folder: folder, path: p, data: data}
		if err != nil {
			return doc, false, err
		}
		return doc, true, nil
	}
	return document{}, false, nil
}

func (l *Loader) parse(docs []document) ([]Post, []LoadIssue) {
	posts := make([]Post, 0, len(docs))
	var issues []LoadIssue
	for _, doc := range docs {
		post, err := parseDocument(doc)
		if err != nil {
			issues = append(issues, l.skip(LoadIssue{Path: doc.path, Category: doc.category, Folder: doc.folder, Reason: "document invalid", Err: err}))
			continue
		}
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, issues
}

func (l *Loader) skip(issue LoadIssue) LoadIssue {
	logging.WithPostContext(l.logger, issue.Category, issue.Folder, issue.Path).
		Warn("content.document.skipped", "reason", issue.Reason, "error", issue.Err)
	return issue
}

func parseDocument(doc document) (post Post, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrDocumentInvalid, rec)
		}
	}()

	meta, body, err := markdown.ParseFrontMatter(doc.data)
	if err != nil {
		return Post{}, fmt.Errorf("%w: %w", ErrDocumentInvalid, err)
	}
	if err := validateFrontMatter(meta); err != nil {
		return Post{}, fmt.Errorf("%w: %w", ErrDocumentInvalid, err)
	}
	published, err := ParseDate(meta.Date)
	if err != nil {
		return Post{}, err
	}

	content := string(body)
	return Post{
		Slug:        doc.folder,
		Folder:      doc.folder,
		Category:    doc.category,
		FrontMatter: meta,
		Content:     content,
		ReadingTime: ReadingTime(content),
		PublishedAt: published,
		Path:        doc.path,
	}, nil
}

func validateFrontMatter(meta interfaces.FrontMatter) error {
	errs := validation.Errors{}
	if strings.TrimSpace(meta.Title) == "" {
		errs["title"] = validation.NewError("artikel.content.title_required", "title is required")
	}
	switch {
	case strings.TrimSpace(meta.Date) == "":
		errs["date"] = validation.NewError("artikel.content.date_required", "date is required")
	default:
		if _, err := ParseDate(meta.Date); err != nil {
			errs["date"] = validation.NewError("artikel.content.date_invalid", "date must be an ISO 8601 date")
		}
	}
	return errs.Filter()
}

// fingerprint digests every document path and body in traversal order.
func fingerprint(docs []document) string {
	hash := sha256.New()
	for _, doc := range docs {
		sum := sha256.Sum256(doc.data)
		fmt.Fprintf(hash, "%s\x00%d\x00%x\n", doc.path, len(doc.data), sum)
	}
	return hex.EncodeToString(hash.Sum(nil))
}

func isContentDir(entry fs.DirEntry) bool {
	return entry.IsDir() && !strings.HasPrefix(entry.Name(), ".")
}
