package probe

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

const maxTitleLen = 200

// ExtractTitle returns the text of the first <title> element, with
// whitespace collapsed, capped at 200 characters. Malformed or
// title-less HTML yields "" — never an error.
func ExtractTitle(r io.Reader) string {
	doc, err := html.Parse(r)
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = sb.String()
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)

	title = strings.Join(strings.Fields(title), " ")
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	return title
}
