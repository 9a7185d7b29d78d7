package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Date       time.Time   `json:"date"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

const (
	OrderStatusDraft     = "Draft"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusShipped   = "Shipped"
)

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusShipped:
		return true
	}
	return false
}
