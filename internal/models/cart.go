package models

// CartItem is one line of a cart. Name, Price and Description are copied from
// the product when the line is created and are display-only; totals always
// resolve the product again.
type CartItem struct {
	ID          string `json:"id"`
	Quantity    int    `json:"quantity"`
	Option      string `json:"option,omitempty"`
	Name        string `json:"name,omitempty"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total string     `json:"total"`
	Count int        `json:"count"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Option    string `json:"option,omitempty" validate:"omitempty,max=100"`
}
