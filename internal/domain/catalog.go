package domain

// ShopifyVariant is a single purchasable variant of a catalog product.
// Only the price of the first variant is consumed.
type ShopifyVariant struct {
	Price string `json:"price"`
}

// ShopifyProduct represents one product descriptor from the store's
// products.json feed.
type ShopifyProduct struct {
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	ProductType string           `json:"product_type,omitempty"`
	Variants    []ShopifyVariant `json:"variants"`
}

// ShopifyFeed represents the response from the store's products.json endpoint
type ShopifyFeed struct {
	Products []ShopifyProduct `json:"products"`
}
