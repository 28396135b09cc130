package wiki

import (
	"strings"

	"golang.org/x/net/html"
)

// Small DOM helpers over x/net/html. Wiki markup is loose, so everything
// here is lookup-by-example rather than schema-driven.

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// elements returns all descendant elements matching any of the tags, in
// document order.
func elements(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, t := range tags {
				if n.Data == t {
					out = append(out, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the concatenated, whitespace-collapsed text of a subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// nextElementSibling skips text and comment nodes between elements.
func nextElementSibling(n *html.Node) *html.Node {
	for cur := n.NextSibling; cur != nil; cur = cur.NextSibling {
		if cur.Type == html.ElementNode {
			return cur
		}
	}
	return nil
}
