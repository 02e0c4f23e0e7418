package catalog

import (
	"fmt"
	"strings"

	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
)

// DefaultMaxCatalogLines bounds the catalog block so the prompt payload
// stays small
const DefaultMaxCatalogLines = 250

// Placeholders for feed entries missing a type or a price
const (
	defaultProductType   = "Skincare/Haircare"
	priceUnlistedMessage = "Price unlisted"
)

// StaticCatalogBlock is the hardcoded catalog substituted whenever the live
// feed is unreachable or yields no usable entries. The parser only depends
// on the shape the model was told to answer in, not on real-time content.
const StaticCatalogBlock = `- Winter Glow Gift Box (Deep hydration pack) | https://bio-valley.com/products/winter-glow-gift-box | ₹1,299
- Sugar Strawberry Face Wash (Gentle exfoliation) | https://bio-valley.com/products/sugar-strawberry-facewash | ₹375
- Calendula Mimosa Body Lotion (Soothing for dry skin) | https://bio-valley.com/products/calendula-mimosa-body-lotion | ₹399
- Kiwi Refresh Body Lotion (Oily/combination skin hydration) | https://bio-valley.com/products/kiwi-refresh-body-lotion | ₹249
- Argan Oil Shampoo (Nourishes & strengthens hair) | https://bio-valley.com/products/argan-oil-shampoo | ₹891
- Cedarwood Shampoo (Purifies and balances scalp) | https://bio-valley.com/products/cedarwood-shampoo | ₹891
- Dead Sea Shampoo (Mineral-rich for flaky scalp) | https://bio-valley.com/products/dead-sea-shampoo | ₹843
- Keratin Shampoo (Repairs & smoothens damage) | https://bio-valley.com/products/keratin-shampoo | ₹843`

// BuildCatalogBlock flattens the product feed into the newline-delimited
// catalog text embedded in the model prompt, one line per product:
//
//	- {title} ({type}) | {store}/products/{handle} | {price}
//
// Products without a title or handle are skipped; output is truncated to
// maxLines entries.
func BuildCatalogBlock(products []domain.ShopifyProduct, storeURL string, maxLines int) string {
	if storeURL == "" {
		storeURL = DefaultStoreURL
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxCatalogLines
	}

	var lines []string
	for _, product := range products {
		if len(lines) >= maxLines {
			break
		}
		if product.Title == "" || product.Handle == "" {
			continue
		}

		lines = append(lines, formatCatalogLine(product, storeURL))
	}

	return strings.Join(lines, "\n")
}

// formatCatalogLine renders a single product descriptor as one catalog line
func formatCatalogLine(product domain.ShopifyProduct, storeURL string) string {
	productType := product.ProductType
	if productType == "" {
		productType = defaultProductType
	}

	productURL := fmt.Sprintf("%s/products/%s", storeURL, product.Handle)

	price := priceUnlistedMessage
	if len(product.Variants) > 0 && product.Variants[0].Price != "" {
		price = "₹" + product.Variants[0].Price
	}

	return fmt.Sprintf("- %s (%s) | %s | %s", product.Title, productType, productURL, price)
}
