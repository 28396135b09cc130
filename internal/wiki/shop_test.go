package wiki

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopPageHTML = `<html><body>
<div id="page-title">Battleon Swords Shop</div>
<div id="page-content">
<p>The weapon shop in the middle of town, run by a suspiciously cheerful moglin.</p>
<table>
<tr><th>Name</th><th>Price</th><th>Sellback</th></tr>
<tr><td><a href="/iron-sword">Iron Sword</a></td><td>1,000 Gold</td><td>250 Gold</td></tr>
<tr><td><a href="/steel-sword">Steel Sword</a></td><td>5,000 Gold</td><td>1,250 Gold</td></tr>
<tr><td>Plain Dagger</td><td>100 Gold</td><td>25 Gold</td></tr>
</table>
<table>
<tr><th>Unrelated</th><th>Columns</th></tr>
<tr><td>ignored</td><td>ignored</td></tr>
</table>
</div>
</body></html>`

func TestParseShopPage(t *testing.T) {
	page, err := ParseShopPage(shopPageHTML, "Battleon Swords",
		"http://wiki.example/battleon-swords", "http://wiki.example")
	require.NoError(t, err)

	assert.Equal(t, "Battleon Swords Shop", page.Title)
	require.Len(t, page.Items, 3)

	assert.Equal(t, "Iron Sword", page.Items[0].Name)
	assert.Equal(t, "http://wiki.example/iron-sword", page.Items[0].URL)
	assert.Equal(t, "1,000 Gold", page.Items[0].Price)

	assert.Equal(t, "Plain Dagger", page.Items[2].Name)
	assert.Empty(t, page.Items[2].URL)
	assert.Equal(t, "100 Gold", page.Items[2].Price)
}

func TestParseShopPageNoItemTable(t *testing.T) {
	page := `<html><body><div id="page-content">
<p>A perfectly ordinary article page with plenty of words but no tables at all.</p>
</div></body></html>`

	_, err := ParseShopPage(page, "x", "http://wiki.example/x", "http://wiki.example")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupShop(t *testing.T) {
	c := testWikiClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/battleon-swords-shop", r.URL.Path)
		w.Write([]byte(shopPageHTML))
	})

	page, err := c.LookupShop(context.Background(), "Battleon Swords Shop")
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}
