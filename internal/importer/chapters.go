package importer

import "strings"

// chapterBuilder collects paragraphs into chapters as a parser walks a
// source. Paragraphs before the first chapter heading form an unnamed
// chapter of their own.
type chapterBuilder struct {
	chapters []Chapter
}

func (b *chapterBuilder) start(name string) {
	b.chapters = append(b.chapters, Chapter{Name: name})
}

func (b *chapterBuilder) add(p Paragraph) {
	if strings.TrimSpace(p.Text) == "" {
		return
	}
	if len(b.chapters) == 0 {
		b.chapters = append(b.chapters, Chapter{})
	}
	c := &b.chapters[len(b.chapters)-1]
	c.Paragraphs = append(c.Paragraphs, p)
}
