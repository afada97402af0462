package importer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser reads HTML. Every <h1> starts a chapter; other headings are
// heading-styled paragraphs, and p, li, blockquote, td and pre elements
// become paragraphs.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader) ([]Chapter, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := &chapterBuilder{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "head":
				return
			case "h1":
				title := textContent(n)
				b.start(title)
				b.add(Paragraph{Text: title, Style: StyleHeading})
				return
			case "h2", "h3", "h4", "h5", "h6":
				b.add(Paragraph{Text: textContent(n), Style: StyleHeading})
				return
			case "pre":
				b.add(Paragraph{Text: textContent(n), Style: StyleCode})
				return
			case "p", "li", "blockquote", "td":
				if !hasBlockChild(n) {
					b.add(Paragraph{Text: textContent(n)})
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.chapters, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// hasBlockChild reports whether n wraps paragraphs of its own, as in
// <li><p>one</p><p>two</p></li>.
func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "p", "ul", "ol", "blockquote", "pre", "table":
				return true
			}
		}
	}
	return false
}
