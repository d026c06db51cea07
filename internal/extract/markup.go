package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup reduces provider remark text to visible plain text. Some
// feeds embed HTML in description fields; script/style content is
// dropped entirely, element text is joined with single spaces.
func StripMarkup(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsRune(s, '<') {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}
