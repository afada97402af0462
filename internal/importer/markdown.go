package importer

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads markdown with goldmark. Every level 1 heading starts a
// chapter; headings are kept as heading-styled paragraphs, list items and
// quoted paragraphs become paragraphs, code blocks become code-styled ones.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader) ([]Chapter, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	b := &chapterBuilder{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(b, n, src)
	}
	return b.chapters, nil
}

func (p *MarkdownParser) block(b *chapterBuilder, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		title := inlineText(node, src)
		if node.Level == 1 {
			b.start(title)
		}
		b.add(Paragraph{Text: title, Style: StyleHeading})
	case *ast.List, *ast.ListItem, *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			p.block(b, c, src)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		b.add(Paragraph{Text: linesText(n, src), Style: StyleCode})
	case *ast.Paragraph, *ast.TextBlock:
		b.add(Paragraph{Text: inlineText(n, src)})
	}
}

// inlineText concatenates the inline text under n. Line breaks become spaces.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.URL(src))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}
