package wiki

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RelatedLink is one entry on a disambiguation page.
type RelatedLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ItemPage is the structured view of one item page. Most fields are
// best-effort: wiki editors are not consistent, so empty means "the page
// did not say", never "the item lacks it".
type ItemPage struct {
	Title string `json:"title"`
	URL   string `json:"url"`

	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Level       string `json:"level,omitempty"`
	Damage      string `json:"damage,omitempty"`
	Location    string `json:"location,omitempty"`
	Rarity      string `json:"rarity,omitempty"`
	Price       string `json:"price,omitempty"`
	Sellback    string `json:"sellback,omitempty"`
	Shop        string `json:"shop,omitempty"`
	Quest       string `json:"quest,omitempty"`
	MergeText   string `json:"merge_text,omitempty"`

	Locations    []string `json:"locations,omitempty"`
	Notes        []string `json:"notes,omitempty"`
	Requirements []string `json:"requirements,omitempty"`

	Disambiguation bool          `json:"disambiguation,omitempty"`
	Related        []RelatedLink `json:"related_items,omitempty"`
}

// LookupItem fetches and parses the item page for a display name.
func (c *Client) LookupItem(ctx context.Context, name string) (*ItemPage, error) {
	body, pageURL, err := c.fetch(ctx, Slugify(name))
	if err != nil {
		return nil, err
	}
	return ParseItemPage(body, name, pageURL, c.baseURL)
}

// ParseItemPage parses raw wiki HTML into an ItemPage. baseURL resolves
// the site-relative links on disambiguation pages.
func ParseItemPage(pageHTML, name, pageURL, baseURL string) (*ItemPage, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	content := findByID(doc, "page-content")
	if content == nil {
		return nil, fmt.Errorf("%w: no page content", ErrNotFound)
	}
	contentText := nodeText(content)
	lowerText := strings.ToLower(contentText)
	if strings.Contains(lowerText, "does not exist") || len(contentText) < 50 {
		return nil, fmt.Errorf("%w: placeholder page", ErrNotFound)
	}

	page := &ItemPage{Title: name, URL: pageURL}
	if title := findByID(doc, "page-title"); title != nil {
		if t := nodeText(title); t != "" {
			page.Title = t
		}
	}

	if strings.Contains(lowerText, "refers to") || strings.Contains(lowerText, "disambiguation") {
		parseDisambiguation(content, baseURL, page)
		return page, nil
	}

	fields := collectBoldFields(content)
	page.Locations = collectLocations(content)
	applyFields(fields, page)

	if page.Description == "" {
		page.Description = fallbackDescription(content)
	}
	page.Notes = collectNotes(content)
	return page, nil
}

func parseDisambiguation(content *html.Node, baseURL string, page *ItemPage) {
	page.Disambiguation = true
	if ps := elements(content, "p"); len(ps) > 0 {
		page.Description = nodeText(ps[0])
	}
	for _, a := range elements(content, "a") {
		href := attr(a, "href")
		text := nodeText(a)
		if strings.HasPrefix(href, "/") && len(text) > 3 {
			page.Related = append(page.Related, RelatedLink{
				Name: text,
				URL:  baseURL + href,
			})
		}
	}
}

// labeledValue preserves page order: when the same label repeats, the first
// occurrence wins for description and the mapping stays deterministic.
type labeledValue struct {
	label string
	value string
}

// collectBoldFields reads the "Label: value" convention the wiki uses for
// item stats: a bold label followed by inline text up to the next bold tag
// or line break.
func collectBoldFields(content *html.Node) []labeledValue {
	var fields []labeledValue
	seenDescription := false
	for _, bold := range elements(content, "b", "strong") {
		label := strings.ToLower(strings.TrimSpace(nodeText(bold)))
		label = strings.ReplaceAll(label, ":", "")
		if label == "" {
			continue
		}

		var parts []string
	value:
		for cur := bold.NextSibling; cur != nil; cur = cur.NextSibling {
			switch {
			case cur.Type == html.ElementNode && isFieldBoundary(cur.Data):
				break value
			case cur.Type == html.ElementNode:
				if t := nodeText(cur); t != "" && t != ":" {
					parts = append(parts, t)
				}
			case cur.Type == html.TextNode:
				if t := strings.TrimSpace(cur.Data); t != "" && t != ":" {
					parts = append(parts, t)
				}
			}
		}

		value := strings.TrimSpace(strings.Join(parts, " "))
		if value == "" {
			continue
		}
		if label == "description" {
			if seenDescription {
				continue
			}
			seenDescription = true
		}
		fields = append(fields, labeledValue{label: label, value: value})
	}
	return fields
}

func isFieldBoundary(tag string) bool {
	return tag == "b" || tag == "strong" || tag == "br" || tag == "hr"
}

var titleCaser = cases.Title(language.English)

func applyFields(fields []labeledValue, page *ItemPage) {
	for _, f := range fields {
		lowVal := strings.ToLower(f.value)
		switch {
		case strings.Contains(f.label, "type"):
			page.Type = f.value
		case strings.Contains(f.label, "level"):
			page.Level = f.value
		case strings.Contains(f.label, "damage"):
			page.Damage = f.value
		case strings.Contains(f.label, "location"):
			page.Location = f.value
			if strings.Contains(lowVal, "shop") || strings.Contains(lowVal, "merge") {
				page.Shop = f.value
			}
		case f.label == "or" && strings.Contains(lowVal, "merge"):
			page.MergeText = f.value
		case strings.Contains(f.label, "rarity"):
			page.Rarity = f.value
		case strings.Contains(f.label, "price") && !strings.Contains(f.label, "sell"):
			page.Price = f.value
			if strings.Contains(lowVal, "quest") || strings.Contains(lowVal, "reward") {
				page.Quest = f.value
			}
		case strings.Contains(f.label, "sellback"):
			page.Sellback = f.value
		case strings.Contains(f.label, "description"):
			if page.Description == "" {
				page.Description = f.value
			}
		case strings.Contains(f.label, "require") || strings.Contains(f.label, "needed"):
			req := fmt.Sprintf("%s: %s", titleCaser.String(f.label), f.value)
			if !contains(page.Requirements, req) {
				page.Requirements = append(page.Requirements, req)
			}
		}
	}
}

// collectLocations reads the "Locations:" paragraph and the list or
// paragraphs that follow it.
func collectLocations(content *html.Node) []string {
	var locations []string
	for _, p := range elements(content, "p") {
		if !strings.HasPrefix(nodeText(p), "Locations:") {
			continue
		}
		for sib := nextElementSibling(p); sib != nil; sib = nextElementSibling(sib) {
			switch sib.Data {
			case "ul", "ol":
				for _, li := range elements(sib, "li") {
					if t := nodeText(li); t != "" {
						locations = append(locations, t)
					}
				}
				return locations
			case "p":
				t := nodeText(sib)
				if t != "" && !strings.HasPrefix(t, "Price:") &&
					!strings.HasPrefix(t, "OR:") && !strings.HasPrefix(t, "Reward") {
					locations = append(locations, t)
				}
			default:
				return locations
			}
		}
		break
	}
	return locations
}

// fallbackDescription takes the first substantial early paragraph when no
// explicit description field exists.
func fallbackDescription(content *html.Node) string {
	ps := elements(content, "p")
	if len(ps) > 5 {
		ps = ps[:5]
	}
	for _, p := range ps {
		t := nodeText(p)
		low := strings.ToLower(t)
		if len(t) > 30 && !strings.HasPrefix(low, "this") &&
			!strings.HasPrefix(low, "see also") && !strings.HasPrefix(low, "note") {
			return t
		}
	}
	return ""
}

// collectNotes reads the bullet points and paragraphs under a "Notes"
// heading, stopping at the next heading.
func collectNotes(content *html.Node) []string {
	var heading *html.Node
	for _, h := range elements(content, "h2", "h3") {
		if strings.Contains(strings.ToLower(nodeText(h)), "note") {
			heading = h
			break
		}
	}
	if heading == nil {
		return nil
	}

	var notes []string
	for sib := nextElementSibling(heading); sib != nil; sib = nextElementSibling(sib) {
		switch sib.Data {
		case "h1", "h2", "h3":
			return notes
		case "ul":
			for _, li := range elements(sib, "li") {
				if t := nodeText(li); len(t) > 5 {
					notes = append(notes, t)
				}
			}
		case "p":
			if t := nodeText(sib); len(t) > 5 {
				notes = append(notes, t)
			}
		}
	}
	return notes
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
