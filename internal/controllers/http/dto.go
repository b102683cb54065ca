package http

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type ProductRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	Price              float64  `json:"price" binding:"required,gt=0"`
	PriceAfterDiscount *float64 `json:"priceAfterDiscount" binding:"omitempty,gt=0"`
	Quantity           int64    `json:"quantity" binding:"min=0"`
	CategoryID         uint64   `json:"categoryId" binding:"required"`
	BrandID            *uint64  `json:"brandId"`
}

type UpdateProductRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price" binding:"omitempty,gt=0"`
	PriceAfterDiscount *float64 `json:"priceAfterDiscount" binding:"omitempty,gt=0"`
	Quantity           int64    `json:"quantity" binding:"omitempty,min=0"`
	CategoryID         uint64   `json:"categoryId"`
	BrandID            *uint64  `json:"brandId"`
}

type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

type CouponRequest struct {
	Code      string  `json:"code"`
	Discount  float64 `json:"discount" binding:"required,gt=0,lte=100"`
	ExpiresAt string  `json:"expires" binding:"required"`
}

type UpdateCouponRequest struct {
	Discount  float64 `json:"discount" binding:"omitempty,gt=0,lte=100"`
	ExpiresAt string  `json:"expires"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text"`
}

type UpdateReviewRequest struct {
	Rating int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Text   string `json:"text"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type ShippingAddressRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
}
