package extract

import (
	"os"
	"strings"

	"golang.org/x/net/html"
)

func htmlFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return "", err
	}
	return HTMLText(root), nil
}

// HTMLText returns the visible text of a parsed HTML document: script and
// style subtrees are dropped, text nodes are joined with newlines, and blank
// lines are collapsed.
func HTMLText(root *html.Node) string {
	var lines []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				lines = append(lines, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(lines, "\n")
}
