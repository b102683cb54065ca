package services

import (
	"time"

	"shop-service/internal/domain"
)

const (
	TestCartID    = uint64(10)
	TestUserID    = uint64(7)
	TestProductID = uint64(1)
	TestUserEmail = "buyer@example.com"
)

func CreateTestCart(id, userID uint64, totalPrice float64, discounted *float64) *domain.Cart {
	return &domain.Cart{
		ID:     id,
		UserID: userID,
		Items: []domain.CartItem{
			{ID: 1, CartID: id, ProductID: TestProductID, Quantity: 2, Price: totalPrice / 2},
		},
		TotalPrice:              totalPrice,
		TotalPriceAfterDiscount: discounted,
		CreatedAt:               time.Now(),
	}
}

func CreateTestUser(id uint64, email string, role domain.Role) *domain.User {
	return &domain.User{
		ID:        id,
		Name:      "Test Buyer",
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

func CreateTestProduct(id uint64, price float64, quantity int64) *domain.Product {
	return &domain.Product{
		ID:       id,
		Title:    "Test Product",
		Slug:     "test-product",
		Price:    price,
		Quantity: quantity,
	}
}

func FloatPtr(v float64) *float64 {
	return &v
}
