package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLParser(t *testing.T) {
	input := `<html><head><title>Ignored</title><style>p{}</style></head><body>
<nav><p>menu</p></nav>
<h1>One</h1>
<p>Hello <b>world</b>.</p>
<ul><li>a</li><li><p>b1</p><p>b2</p></li></ul>
<h1>Two</h1>
<h2>Sub</h2>
<p>End.</p>
<script>var x;</script>
</body></html>`

	got, err := (&HTMLParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, []Chapter{
		{Name: "One", Paragraphs: []Paragraph{
			{Text: "One", Style: StyleHeading},
			{Text: "Hello world."},
			{Text: "a"},
			{Text: "b1"},
			{Text: "b2"},
		}},
		{Name: "Two", Paragraphs: []Paragraph{
			{Text: "Two", Style: StyleHeading},
			{Text: "Sub", Style: StyleHeading},
			{Text: "End."},
		}},
	}, got)
}
