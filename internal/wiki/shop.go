package wiki

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ShopItem is one sellable row from a shop page table.
type ShopItem struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Price string `json:"price,omitempty"`
}

// ShopPage is the parsed inventory of one shop page.
type ShopPage struct {
	Title string     `json:"title"`
	URL   string     `json:"url"`
	Items []ShopItem `json:"items"`
}

// LookupShop fetches and parses the shop page for a display name. A page
// with no recognizable item table counts as not found.
func (c *Client) LookupShop(ctx context.Context, name string) (*ShopPage, error) {
	body, pageURL, err := c.fetch(ctx, Slugify(name))
	if err != nil {
		return nil, err
	}
	return ParseShopPage(body, name, pageURL, c.baseURL)
}

// ParseShopPage extracts items from every table whose header row carries a
// "name" column. Price is taken from a "price" column when present.
func ParseShopPage(pageHTML, name, pageURL, baseURL string) (*ShopPage, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	content := findByID(doc, "page-content")
	if content == nil {
		return nil, fmt.Errorf("%w: no page content", ErrNotFound)
	}
	contentText := nodeText(content)
	if strings.Contains(strings.ToLower(contentText), "does not exist") || len(contentText) < 50 {
		return nil, fmt.Errorf("%w: placeholder page", ErrNotFound)
	}

	page := &ShopPage{Title: name, URL: pageURL}
	if title := findByID(doc, "page-title"); title != nil {
		if t := nodeText(title); t != "" {
			page.Title = t
		}
	}

	for _, table := range elements(content, "table") {
		rows := elements(table, "tr")
		if len(rows) == 0 {
			continue
		}

		nameIdx, priceIdx := -1, -1
		for i, cell := range elements(rows[0], "th", "td") {
			switch strings.ToLower(nodeText(cell)) {
			case "name":
				nameIdx = i
			case "price":
				priceIdx = i
			}
		}
		if nameIdx < 0 {
			continue
		}

		for _, row := range rows[1:] {
			cells := elements(row, "td")
			if len(cells) < 2 || nameIdx >= len(cells) {
				continue
			}

			itemName := nodeText(cells[nameIdx])
			if itemName == "" {
				continue
			}
			item := ShopItem{Name: itemName}
			for _, a := range elements(cells[nameIdx], "a") {
				if href := attr(a, "href"); strings.HasPrefix(href, "/") {
					item.URL = baseURL + href
					break
				}
			}
			if priceIdx >= 0 && priceIdx < len(cells) {
				item.Price = nodeText(cells[priceIdx])
			}
			page.Items = append(page.Items, item)
		}
	}

	if len(page.Items) == 0 {
		return nil, fmt.Errorf("%w: no item tables on page", ErrNotFound)
	}
	return page, nil
}
