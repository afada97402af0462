package importer

import (
	"bufio"
	"io"
	"strings"
)

// TextParser reads plain text. Paragraphs are separated by blank lines and
// the whole file is one chapter.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) ([]Chapter, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		chapter Chapter
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			chapter.Paragraphs = append(chapter.Paragraphs, Paragraph{Text: current.String()})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(chapter.Paragraphs) == 0 {
		return nil, nil
	}
	return []Chapter{chapter}, nil
}
