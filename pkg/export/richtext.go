package export

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// editorMarkup matches what the report editor emits: line breaks, closing
// tags and character references. A lone "<" or "&" in typed text does not.
var editorMarkup = regexp.MustCompile(`(?i)<br\s*/?>|</[a-z][a-z0-9]*\s*>|&(?:[a-z]+|#[0-9]+|#x[0-9a-f]+);`)

// PlainText strips the inline markup the report editor may leave in a text
// field. Block elements and <br> become line breaks and a blank line stays a
// blank line. Text without editor markup is returned as is.
func PlainText(s string) string {
	if !editorMarkup.MatchString(s) {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p,div,li,h1,h2,h3,h4,tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	var out []string
	gap := false
	for _, l := range strings.Split(doc.Text(), "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			gap = len(out) > 0
			continue
		}
		if gap {
			out = append(out, "")
			gap = false
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
