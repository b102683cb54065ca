package domain

import "time"

type OrderCreatedEvent struct {
	EventID         string        `json:"eventId"`
	OrderID         uint64        `json:"orderId"`
	UserID          uint64        `json:"userId"`
	TotalOrderPrice float64       `json:"totalOrderPrice"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	IsPaid          bool          `json:"isPaid"`
	CreatedAt       time.Time     `json:"createdAt"`
}
