package models

import "github.com/google/uuid"

// CheckoutSummary is the client-facing view of a checkout session.
type CheckoutSummary struct {
	SessionID         uuid.UUID      `json:"session_id"`
	Step              string         `json:"step"`
	Addresses         []Address      `json:"addresses"`
	SelectedAddressID string         `json:"selected_address_id,omitempty"`
	DeliveryMethod    DeliveryMethod `json:"delivery_method"`
	Review            *OrderReview   `json:"review,omitempty"`
	Order             *Order         `json:"order,omitempty"`
}

type ReviewLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type OrderReview struct {
	Lines          []ReviewLine   `json:"lines"`
	Total          string         `json:"total"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Address        string         `json:"address"`
}

type AddAddressRequest struct {
	Address string `json:"address" validate:"required,max=500"`
}

type SelectAddressRequest struct {
	AddressID string `json:"address_id" validate:"required"`
}

type SelectDeliveryRequest struct {
	DeliveryMethod DeliveryMethod `json:"delivery_method" validate:"required"`
}
