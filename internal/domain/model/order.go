package model

import (
	"time"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

type Order struct {
	ID            string    `json:"id"`
	MealID        string    `json:"meal_id"`
	UserEmail     string    `json:"user_email"`
	ChefID        string    `json:"chef_id"`
	Quantity      int       `json:"quantity"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderPreparing, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
