package models

import "time"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusFailed         OrderStatus = "FAILED"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery,
		StatusDelivered, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further status change is expected
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

// OrderLine is a purchased item captured at order time
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// DeliveryPartner is the courier assigned to an order
type DeliveryPartner struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Order represents a placed order
type Order struct {
	ID                string           `json:"id"`
	Status            OrderStatus      `json:"status"`
	RestaurantName    string           `json:"restaurantName"`
	Items             []OrderLine      `json:"items"`
	Subtotal          float64          `json:"subtotal"`
	DeliveryFee       float64          `json:"deliveryFee"`
	Tax               float64          `json:"tax"`
	Total             float64          `json:"total"`
	EstimatedDelivery string           `json:"estimatedDelivery,omitempty"`
	DeliveryPartner   *DeliveryPartner `json:"deliveryPartner,omitempty"`
	PaymentMethod     string           `json:"paymentMethod,omitempty"`
	CustomerName      string           `json:"customerName,omitempty"`
	DeliveryAddress   string           `json:"deliveryAddress,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// UpdateStatusRequest is the payload for changing an order's status
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}
