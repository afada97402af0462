// Package importer builds document trees from source files. Plain text,
// markdown and HTML are supported; the parsers only find chapters and
// paragraphs, and a shared builder segments paragraphs into sentences and
// tokens.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/textseg"
	"github.com/zjrosen/ezwrite/internal/tracing"
)

// Token styles assigned by the parsers.
const (
	StyleBody    = ""
	StyleHeading = "heading"
	StyleCode    = "code"
)

// Paragraph is one block of source text.
type Paragraph struct {
	Text  string
	Style string
}

// Chapter is a top-level section of a source file. It becomes a Document.
type Chapter struct {
	Name       string
	Paragraphs []Paragraph
}

// Parser splits a source file into chapters.
type Parser interface {
	Parse(r io.Reader) ([]Chapter, error)
}

// ForFile returns the parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupported reports whether ForFile has a parser for filename.
func IsSupported(filename string) bool {
	_, err := ForFile(filename)
	return err == nil
}

// Loader reads files into trees.
type Loader struct {
	tracer   trace.Tracer
	subjects func() document.SubjectAllocator
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTracer traces every import with t.
func WithTracer(t trace.Tracer) LoaderOption {
	return func(l *Loader) {
		l.tracer = t
	}
}

// WithSubjects sets the allocator factory used for every new tree.
func WithSubjects(fn func() document.SubjectAllocator) LoaderOption {
	return func(l *Loader) {
		l.subjects = fn
	}
}

// NewLoader creates a loader. By default trees get urn:uuid subjects and
// imports are not traced.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		tracer:   noop.NewTracerProvider().Tracer("importer"),
		subjects: func() document.SubjectAllocator { return document.UUIDSubjects{} },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*document.Tree, document.ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, document.None, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = f.Close() }()
	return l.Read(ctx, f, filepath.Base(path))
}

// Read parses r as the file filename and builds a new tree from it.
func (l *Loader) Read(ctx context.Context, r io.Reader, filename string) (*document.Tree, document.ID, error) {
	_, span := l.tracer.Start(ctx, tracing.SpanImportFile,
		trace.WithAttributes(attribute.String("import.file", filename)))
	defer span.End()

	tree, root, err := l.read(r, filename)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, document.None, err
	}
	tokens := len(tree.Leaves(root))
	span.SetAttributes(
		attribute.Int("import.documents", tree.Count(root, document.KindDocument)),
		attribute.Int("import.tokens", tokens),
	)
	log.Info(log.CatImport, "imported", "file", filename, "tokens", tokens)
	return tree, root, nil
}

func (l *Loader) read(r io.Reader, filename string) (*document.Tree, document.ID, error) {
	p, err := ForFile(filename)
	if err != nil {
		return nil, document.None, err
	}
	chapters, err := p.Parse(r)
	if err != nil {
		return nil, document.None, fmt.Errorf("parse %s: %w", filename, err)
	}
	tree := document.NewTree(document.WithSubjects(l.subjects()))
	root, err := Build(tree, chapters)
	if err != nil {
		return nil, document.None, err
	}
	return tree, root, nil
}

// Build adds chapters to tree. A single chapter becomes a root Document;
// several become the Documents of a Book.
func Build(tree *document.Tree, chapters []Chapter) (document.ID, error) {
	if len(chapters) <= 1 {
		doc, err := tree.NewRoot(document.KindDocument)
		if err != nil {
			return document.None, err
		}
		for _, c := range chapters {
			if err := addChapter(tree, doc, c); err != nil {
				return document.None, err
			}
		}
		return doc, nil
	}

	book, err := tree.NewRoot(document.KindBook)
	if err != nil {
		return document.None, err
	}
	for _, c := range chapters {
		doc, err := tree.New(document.KindDocument, book)
		if err != nil {
			return document.None, err
		}
		if err := addChapter(tree, doc, c); err != nil {
			return document.None, err
		}
	}
	return book, nil
}

func addChapter(tree *document.Tree, doc document.ID, c Chapter) error {
	log.Debug(log.CatImport, "chapter", "name", c.Name, "paragraphs", len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		if err := addParagraph(tree, doc, p); err != nil {
			return fmt.Errorf("chapter %q: %w", c.Name, err)
		}
	}
	return nil
}

// addParagraph segments p into sentences and tokens. Whitespace is
// normalised to single spaces and the last sentence ends with a newline
// token.
func addParagraph(tree *document.Tree, doc document.ID, p Paragraph) error {
	text := strings.Join(strings.Fields(p.Text), " ")
	if text == "" {
		return nil
	}
	para, err := tree.New(document.KindParagraph, doc)
	if err != nil {
		return err
	}
	sentences := textseg.Sentences(text)
	for i, s := range sentences {
		last := i == len(sentences)-1
		if last {
			s = strings.TrimRightFunc(s, unicode.IsSpace)
		}
		sentence, err := tree.New(document.KindSentence, para)
		if err != nil {
			return err
		}
		for _, tok := range textseg.Tokens(s) {
			if _, err := tree.NewStyledToken(sentence, tok, p.Style); err != nil {
				return err
			}
		}
		if last {
			if _, err := tree.NewStyledToken(sentence, "\n", p.Style); err != nil {
				return err
			}
		}
	}
	return nil
}
