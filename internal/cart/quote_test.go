package cart

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/pricing"
)

func TestQuoteMessage(t *testing.T) {
	f := pricing.NewFormatter(950)

	c := New()
	p := product("p1", 12990, intPtr(5))
	p.Name = "Anillo Luna"
	p.Variants = []entity.Variant{{Name: "Plata", Price: 12990, Stock: 5}}

	require.NoError(t, c.AddItem(p, &p.Variants[0]))
	require.NoError(t, c.AddItem(p, &p.Variants[0]))

	msg := QuoteMessage(c, f)
	assert.Contains(t, msg, "2x Anillo Luna (Plata)")
	assert.Contains(t, msg, "$25.980")
	assert.True(t, strings.HasSuffix(msg, "Total: $25.980"))
}

func TestQuoteLinkEscapesMessage(t *testing.T) {
	f := pricing.NewFormatter(950)

	c := New()
	p := product("p1", 9990, intPtr(5))
	p.Name = "Aros Gota"
	require.NoError(t, c.AddItem(p, nil))

	link := QuoteLink("56912345678", c, f)
	require.True(t, strings.HasPrefix(link, "https://wa.me/56912345678?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, QuoteMessage(c, f), u.Query().Get("text"))
}
