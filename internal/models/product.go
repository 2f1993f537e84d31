package models

// Product is a catalog entry. Price keeps the display form the catalog is
// authored in ("Php1,250"); use catalog.ParsePrice to get a number.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Description string   `json:"description,omitempty"`
	Options     []string `json:"options,omitempty"`
	Image       string   `json:"image,omitempty"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
