package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
)

// DeliveryMethod doubles as the payment method of an order.
type DeliveryMethod string

const (
	DeliveryCashOnDelivery DeliveryMethod = "Cash on Delivery"
	DeliveryEWallet        DeliveryMethod = "E-Wallet (Gcash)"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryCashOnDelivery || m == DeliveryEWallet
}

// OrderItem records what was bought. Prices are not captured on purpose:
// Total is the only monetary figure stored with an order.
type OrderItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID            uuid.UUID      `json:"id"`
	Items         []OrderItem    `json:"items"`
	Total         string         `json:"total"`
	Delivery      DeliveryMethod `json:"delivery"`
	PaymentMethod DeliveryMethod `json:"paymentMethod"`
	Address       string         `json:"address"`
	UserID        uuid.UUID      `json:"userId"`
	CreatedAt     time.Time      `json:"createdAt"`
	Status        OrderStatus    `json:"status"`
}

// OrderPlacedEvent is published once an order document has been written.
type OrderPlacedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
