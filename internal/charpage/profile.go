package charpage

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Profile is the human-facing character summary parsed from page markup
// rather than the FlashVars block. Used by verification and the char lookup.
type Profile struct {
	Name    string
	Tagline string
	Level   string
	Class   string
	Faction string
	Guild   string

	CCID           int
	BadgeCount     int
	InventoryCount int
}

var ccidPattern = regexp.MustCompile(`var\s+ccid\s*=\s*(\d+);`)

// ParseProfile extracts the profile card from page HTML: the h1 name, h4
// tagline, and the Level/Class/Faction/Guild labels inside div.card-body.
func ParseProfile(pageHTML string) (*Profile, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPage, err)
	}

	nameNode := findElement(doc, "h1")
	if nameNode == nil {
		if strings.Contains(pageHTML, voidMarker) {
			return nil, fmt.Errorf("%w: inactive or nonexistent", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: no h1 heading", ErrMalformedPage)
	}

	p := &Profile{Name: nodeText(nameNode)}
	if h4 := findElement(doc, "h4"); h4 != nil {
		p.Tagline = nodeText(h4)
	}

	// Label scope: prefer div.card-body, fall back to the whole document for
	// older page layouts.
	scope := findByClass(doc, "div", "card-body")
	if scope == nil {
		scope = doc
	}
	forEachElement(scope, "label", func(label *html.Node) {
		key := strings.TrimSuffix(strings.TrimSpace(nodeText(label)), ":")
		val := labelValue(label)
		if val == "" {
			return
		}
		switch key {
		case "Level":
			p.Level = val
		case "Class":
			p.Class = val
		case "Faction":
			p.Faction = val
		case "Guild":
			p.Guild = val
		}
	})

	if m := ccidPattern.FindStringSubmatch(stripNewlines(pageHTML)); m != nil {
		p.CCID = atoiDefault(m[1], 0)
	}
	return p, nil
}

// LoadProfile fetches the character page and parses the profile card,
// then best-effort decorates it with badge and inventory counts from the
// ccid-keyed JSON endpoints. Endpoint failures are logged, not raised: the
// counts are cosmetic and the upstream API is flaky.
func (c *Client) LoadProfile(ctx context.Context, username string) (*Profile, error) {
	page, err := c.FetchPage(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := ParseProfile(page)
	if err != nil {
		return nil, err
	}
	if p.CCID == 0 {
		return p, nil
	}

	base, err := c.apiBase()
	if err != nil {
		return p, nil
	}
	if n, err := c.countEndpoint(ctx, fmt.Sprintf("%s/CharPage/Badges?ccid=%d", base, p.CCID)); err != nil {
		c.log.Warn("badges endpoint failed", zap.String("username", username), zap.Error(err))
	} else {
		p.BadgeCount = n
	}
	if n, err := c.countEndpoint(ctx, fmt.Sprintf("%s/CharPage/Inventory?ccid=%d", base, p.CCID)); err != nil {
		c.log.Warn("inventory endpoint failed", zap.String("username", username), zap.Error(err))
	} else {
		p.InventoryCount = n
	}
	return p, nil
}

// countEndpoint fetches a JSON array endpoint and returns its length.
func (c *Client) countEndpoint(ctx context.Context, endpoint string) (int, error) {
	body, err := c.fetchJSON(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return 0, fmt.Errorf("unexpected payload: %w", err)
	}
	return len(items), nil
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
}

// ── HTML tree helpers ──────────────────────────────────────────────

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func forEachElement(n *html.Node, tag string, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == tag {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		forEachElement(c, tag, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
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

// labelValue returns the value following a <label>: the first non-empty text
// sibling or the text of a sibling link, stopping at the next label or a
// block break.
func labelValue(label *html.Node) string {
	for cur := label.NextSibling; cur != nil; cur = cur.NextSibling {
		switch cur.Type {
		case html.TextNode:
			if t := strings.TrimSpace(cur.Data); t != "" && t != ":" {
				return t
			}
		case html.ElementNode:
			switch cur.Data {
			case "a":
				if t := nodeText(cur); t != "" {
					return t
				}
			case "label", "br", "div":
				return ""
			default:
				if t := nodeText(cur); t != "" && t != ":" {
					return t
				}
			}
		}
	}
	return ""
}
