package cart

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/varmina/backend/internal/pricing"
)

// QuoteMessage renders the cart as the WhatsApp quote text the storefront
// sends when the shopper checks out.
func QuoteMessage(c *Cart, f *pricing.Formatter) string {
	var b strings.Builder
	b.WriteString("¡Hola! Quiero cotizar los siguientes productos:\n")

	for _, line := range c.Lines() {
		name := line.Product.Name
		if line.Variant != nil {
			name = fmt.Sprintf("%s (%s)", name, line.Variant.Name)
		}
		fmt.Fprintf(&b, "- %dx %s — %s\n", line.Quantity, name, f.Format(line.Subtotal(), pricing.CLP))
	}

	fmt.Fprintf(&b, "Total: %s", f.Format(c.TotalPrice(), pricing.CLP))
	return b.String()
}

// QuoteLink builds a wa.me link with the quote message pre-filled. The phone
// number is expected in international format without the leading plus.
func QuoteLink(phone string, c *Cart, f *pricing.Formatter) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(QuoteMessage(c, f)))
}
