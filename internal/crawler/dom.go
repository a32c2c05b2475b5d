package crawler

import (
	"strings"

	"golang.org/x/net/html"
)

// matcher reports whether a node is wanted.
type matcher func(*html.Node) bool

func element(tag string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func withClass(class string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	}
}

func elementWithClass(tag, class string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag && hasClass(n, class)
	}
}

func withID(id string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && getAttr(n, "id") == id
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// findAll returns the descendants of n that match, in document order.
// n itself is never included.
func findAll(n *html.Node, match matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// findFirst returns the first matching descendant of n, or nil.
func findFirst(n *html.Node, match matcher) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// textContent concatenates every text node under n.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// imageURL returns the lazy-load or plain src of an img, without the
// wiki's /revision suffix.
func imageURL(img *html.Node) string {
	if img == nil {
		return ""
	}
	src := getAttr(img, "data-src")
	if src == "" {
		src = getAttr(img, "src")
	}
	return stripRevision(src)
}

func stripRevision(src string) string {
	before, _, _ := strings.Cut(src, "/revision")
	return before
}
