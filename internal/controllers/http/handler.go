package http

import (
	"errors"
	"net/http"

	"shop-service/internal/domain"
	"shop-service/internal/infra/payment"
	"shop-service/internal/metrics"
	"shop-service/internal/middleware"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth       *services.AuthService
	users      *services.UserService
	products   *services.ProductService
	categories *services.CategoryService
	brands     *services.BrandService
	coupons    *services.CouponService
	reviews    *services.ReviewService
	carts      *services.CartService
	orders     *services.OrderService
}

func NewHandler(
	auth *services.AuthService,
	users *services.UserService,
	products *services.ProductService,
	categories *services.CategoryService,
	brands *services.BrandService,
	coupons *services.CouponService,
	reviews *services.ReviewService,
	carts *services.CartService,
	orders *services.OrderService,
) *Handler {
	return &Handler{
		auth:       auth,
		users:      users,
		products:   products,
		categories: categories,
		brands:     brands,
		coupons:    coupons,
		reviews:    reviews,
		carts:      carts,
		orders:     orders,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, m *metrics.ServerMetrics) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Raw body required for signature verification, so the webhook
	// lives outside the JSON-bound API group.
	r.POST("/webhook", h.HandlePaymentWebhook)

	api := r.Group("/api/v1")
	if m != nil {
		api.Use(middleware.Metrics(m))
	}

	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/signin", h.SignIn)

	authed := api.Group("", middleware.RequireAuth(h.auth))
	admin := authed.Group("", middleware.RequireRoles(domain.RoleAdmin))
	shopper := authed.Group("", middleware.RequireRoles(domain.RoleUser))

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/reviews", h.ListProductReviews)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	api.GET("/categories", h.ListCategories)
	api.GET("/categories/:id", h.GetCategory)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)

	api.GET("/brands", h.ListBrands)
	api.GET("/brands/:id", h.GetBrand)
	admin.POST("/brands", h.CreateBrand)
	admin.PUT("/brands/:id", h.UpdateBrand)
	admin.DELETE("/brands/:id", h.DeleteBrand)

	admin.GET("/coupons", h.ListCoupons)
	admin.GET("/coupons/:id", h.GetCoupon)
	admin.POST("/coupons", h.CreateCoupon)
	admin.PUT("/coupons/:id", h.UpdateCoupon)
	admin.DELETE("/coupons/:id", h.DeleteCoupon)

	admin.POST("/users", h.CreateUser)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.PUT("/users/:id/password", h.ChangeUserPassword)
	admin.DELETE("/users/:id", h.DeleteUser)

	shopper.POST("/products/:id/reviews", h.CreateReview)
	shopper.PUT("/reviews/:id", h.UpdateReview)
	shopper.DELETE("/reviews/:id", h.DeleteReview)

	shopper.POST("/cart", h.AddToCart)
	shopper.GET("/cart", h.GetCart)
	shopper.POST("/cart/apply-coupon", h.ApplyCoupon)
	shopper.PUT("/cart/:productId", h.UpdateCartQuantity)
	shopper.DELETE("/cart/:productId", h.RemoveCartItem)

	shopper.POST("/orders/:cartId", h.CreateCashOrder)
	shopper.GET("/orders", h.GetUserOrders)
	shopper.GET("/orders/:id", h.GetOrder)
	shopper.POST("/checkout/:cartId", h.CreateCheckoutSession)
	// The :id wildcard above rules out a static /orders/all sibling.
	admin.GET("/admin/orders", h.GetAllOrders)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps service errors onto HTTP statuses. Internal errors
// are never echoed back to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrBrandNotFound),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotReviewOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCouponExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, payment.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook signature verification failed"})
	case errors.Is(err, payment.ErrMalformedPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
