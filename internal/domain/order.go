package domain

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Order is the immutable record of a committed checkout. Items and the
// total are snapshotted from the cart at commit time; only the payment
// fields change afterwards.
type Order struct {
	ID              uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64        `json:"userId" gorm:"not null;index"`
	Items           []OrderItem   `json:"cartItem" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalOrderPrice float64       `json:"totalOrderPrice" gorm:"not null"`
	ShippingAddress string        `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" gorm:"type:enum('cash','card');default:'cash'"`
	IsPaid          bool          `json:"isPaid" gorm:"default:false"`
	PaidAt          *time.Time    `json:"paidAt"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

type OrderItem struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64  `json:"orderId" gorm:"not null;index"`
	ProductID uint64  `json:"productId" gorm:"not null"`
	Quantity  int64   `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
}
