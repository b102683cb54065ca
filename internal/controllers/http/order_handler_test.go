package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-service/internal/config"
	"shop-service/internal/domain"
	"shop-service/internal/infra/payment"
	"shop-service/internal/mocks"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testWebhookSecret = "whsec_handler_test"

type webhookFixture struct {
	router    *gin.Engine
	orderRepo *mocks.MockOrderRepository
	cartRepo  *mocks.MockCartRepository
	userRepo  *mocks.MockUserRepository
	publisher *mocks.MockPublisher
}

func newWebhookFixture() *webhookFixture {
	orderRepo := new(mocks.MockOrderRepository)
	cartRepo := new(mocks.MockCartRepository)
	userRepo := new(mocks.MockUserRepository)
	productRepo := new(mocks.MockProductRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	brandRepo := new(mocks.MockBrandRepository)
	couponRepo := new(mocks.MockCouponRepository)
	reviewRepo := new(mocks.MockReviewRepository)
	checkout := new(mocks.MockCheckoutClient)
	publisher := new(mocks.MockPublisher)

	couponService := services.NewCouponService(couponRepo)
	handler := NewHandler(
		services.NewAuthService(userRepo, "test-secret"),
		services.NewUserService(userRepo),
		services.NewProductService(productRepo),
		services.NewCategoryService(categoryRepo),
		services.NewBrandService(brandRepo),
		couponService,
		services.NewReviewService(reviewRepo, productRepo),
		services.NewCartService(cartRepo, productRepo, couponService),
		services.NewOrderService(orderRepo, cartRepo, userRepo, checkout, publisher, config.PaymentConfig{
			WebhookSecret: testWebhookSecret,
			Currency:      "egp",
		}),
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.RegisterRoutes(r, nil)

	return &webhookFixture{
		router:    r,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeaderName, signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func completedEventPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"type": payment.EventCheckoutCompleted,
		"data": map[string]any{
			"object": map[string]any{
				"client_reference_id": "10",
				"customer_email":      "buyer@example.com",
				"amount_total":        5000,
				"metadata":            map[string]string{"shippingAddress": "12 Nile St, Cairo"},
			},
		},
	})
	assert.NoError(t, err)
	return payload
}

func TestHandlePaymentWebhook(t *testing.T) {
	t.Run("completed checkout returns 201 with the order", func(t *testing.T) {
		f := newWebhookFixture()

		cart := &domain.Cart{
			ID:     10,
			UserID: 7,
			Items: []domain.CartItem{
				{ID: 1, CartID: 10, ProductID: 1, Quantity: 2, Price: 25},
			},
			TotalPrice: 50,
		}
		user := &domain.User{ID: 7, Name: "Test Buyer", Email: "buyer@example.com", Role: domain.RoleUser}

		f.cartRepo.On("FindByID", mock.Anything, uint64(10)).Return(cart, nil)
		f.userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)
		f.orderRepo.On("CommitCheckout", mock.Anything, uint64(10), mock.AnythingOfType("*domain.Order")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Order).ID = 1
		})
		f.publisher.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()

		payload := completedEventPayload(t)
		w := postWebhook(f.router, payload, payment.SignatureHeader(time.Now(), payload, testWebhookSecret))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Message string       `json:"message"`
			Order   domain.Order `json:"order"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Message)
		assert.Equal(t, float64(50), resp.Order.TotalOrderPrice)
		assert.Equal(t, domain.PaymentCard, resp.Order.PaymentMethod)
		assert.True(t, resp.Order.IsPaid)

		time.Sleep(50 * time.Millisecond)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("bad signature returns 400 and touches nothing", func(t *testing.T) {
		f := newWebhookFixture()

		payload := completedEventPayload(t)
		w := postWebhook(f.router, payload, payment.SignatureHeader(time.Now(), payload, "forged-secret"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.cartRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		f.orderRepo.AssertNotCalled(t, "CommitCheckout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing signature header returns 400", func(t *testing.T) {
		f := newWebhookFixture()

		w := postWebhook(f.router, completedEventPayload(t), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("signed but unparseable body returns 400", func(t *testing.T) {
		f := newWebhookFixture()

		body := []byte("not-json")
		w := postWebhook(f.router, body, payment.SignatureHeader(time.Now(), body, testWebhookSecret))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.orderRepo.AssertNotCalled(t, "CommitCheckout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other event types are acknowledged with 200", func(t *testing.T) {
		f := newWebhookFixture()

		payload, err := json.Marshal(map[string]any{"type": "invoice.paid", "data": map[string]any{"object": map[string]any{}}})
		assert.NoError(t, err)

		w := postWebhook(f.router, payload, payment.SignatureHeader(time.Now(), payload, testWebhookSecret))

		assert.Equal(t, http.StatusOK, w.Code)
		f.orderRepo.AssertNotCalled(t, "CommitCheckout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing cart returns 404", func(t *testing.T) {
		f := newWebhookFixture()

		f.cartRepo.On("FindByID", mock.Anything, uint64(10)).Return(nil, nil)

		payload := completedEventPayload(t)
		w := postWebhook(f.router, payload, payment.SignatureHeader(time.Now(), payload, testWebhookSecret))

		assert.Equal(t, http.StatusNotFound, w.Code)
		f.orderRepo.AssertNotCalled(t, "CommitCheckout", mock.Anything, mock.Anything, mock.Anything)
	})
}
