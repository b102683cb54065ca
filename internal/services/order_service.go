package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"shop-service/internal/config"
	"shop-service/internal/domain"
	"shop-service/internal/infra/payment"
	rabbit "shop-service/internal/infra/rabbitmq"
	"shop-service/internal/metrics"
	"shop-service/internal/repository"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	users     repository.UserRepository
	checkout  payment.CheckoutClientInterface
	publisher rabbit.PublisherInterface
	payCfg    config.PaymentConfig
	metrics   *metrics.ServerMetrics
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	users repository.UserRepository,
	checkout payment.CheckoutClientInterface,
	publisher rabbit.PublisherInterface,
	payCfg config.PaymentConfig,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		users:     users,
		checkout:  checkout,
		publisher: publisher,
		payCfg:    payCfg,
	}
}

func (s *OrderService) SetMetrics(m *metrics.ServerMetrics) {
	s.metrics = m
}

// CreateCashOrder converts the cart into an immutable order, adjusts
// inventory and retires the cart, all committed atomically. The total
// is the cart's discounted total when one applies, else the base total.
func (s *OrderService) CreateCashOrder(ctx context.Context, cartID, userID uint64, shippingAddress string) (*domain.Order, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	order := &domain.Order{
		UserID:          userID,
		Items:           orderItemsFromCart(cart),
		TotalOrderPrice: cart.ResolvedTotal(),
		ShippingAddress: shippingAddress,
		PaymentMethod:   domain.PaymentCash,
	}

	if err := s.orders.CommitCheckout(ctx, cart.ID, order); err != nil {
		s.recordCheckout(domain.PaymentCash, "error")
		if errors.Is(err, repository.ErrCartConverted) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	s.recordCheckout(domain.PaymentCash, "success")
	go s.publishOrderCreated(context.Background(), order)
	return order, nil
}

// CreateCheckoutSession initiates a provider-hosted payment page for
// the cart. The cart id rides along as the correlation token and comes
// back in the payment event.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, cartID uint64, user *domain.User, shippingAddress string) (*payment.CheckoutSession, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	// Prices are floats; rounding keeps amounts like 19.99 from losing
	// a cent to truncation.
	session, err := s.checkout.CreateCheckoutSession(ctx, payment.SessionParams{
		AmountMinor:     int64(math.Round(cart.ResolvedTotal() * 100)),
		Currency:        s.payCfg.Currency,
		ProductName:     user.Name,
		CustomerEmail:   user.Email,
		ClientReference: strconv.FormatUint(cart.ID, 10),
		ShippingAddress: shippingAddress,
		SuccessURL:      s.payCfg.SuccessURL,
		CancelURL:       s.payCfg.CancelURL,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// HandlePaymentEvent authenticates an inbound provider event and, for a
// completed checkout, runs the same commit as the cash path. The payer
// is resolved by email because the event arrives server-to-server with
// no session attached. Unknown event types are acknowledged and
// ignored.
func (s *OrderService) HandlePaymentEvent(ctx context.Context, body []byte, sigHeader string) (*domain.Order, error) {
	event, err := payment.ConstructEvent(body, sigHeader, s.payCfg.WebhookSecret, payment.DefaultTolerance, time.Now())
	if err != nil {
		return nil, err
	}

	if event.Type != payment.EventCheckoutCompleted {
		log.Printf("ignoring payment event type %q", event.Type)
		return nil, nil
	}

	obj := event.Data.Object
	cartID, err := strconv.ParseUint(obj.ClientReferenceID, 10, 64)
	if err != nil {
		return nil, ErrCartNotFound
	}

	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	user, err := s.users.FindByEmail(ctx, obj.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	order := &domain.Order{
		UserID:          user.ID,
		Items:           orderItemsFromCart(cart),
		TotalOrderPrice: float64(obj.AmountTotal) / 100,
		ShippingAddress: obj.Metadata["shippingAddress"],
		PaymentMethod:   domain.PaymentCard,
		IsPaid:          true,
		PaidAt:          &now,
	}

	if err := s.orders.CommitCheckout(ctx, cart.ID, order); err != nil {
		s.recordCheckout(domain.PaymentCard, "error")
		if errors.Is(err, repository.ErrCartConverted) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	s.recordCheckout(domain.PaymentCard, "success")
	go s.publishOrderCreated(context.Background(), order)
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll(ctx)
}

// GetOrder reads one order for its owner. Another user's order id is
// indistinguishable from a nonexistent one.
func (s *OrderService) GetOrder(ctx context.Context, id, userID uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func orderItemsFromCart(cart *domain.Cart) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return items
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		EventID:         uuid.NewString(),
		OrderID:         order.ID,
		UserID:          order.UserID,
		TotalOrderPrice: order.TotalOrderPrice,
		PaymentMethod:   order.PaymentMethod,
		IsPaid:          order.IsPaid,
		CreatedAt:       order.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("failed to publish order.created for order %d: %v", order.ID, err)
	}
}

func (s *OrderService) recordCheckout(method domain.PaymentMethod, outcome string) {
	if s.metrics != nil {
		s.metrics.Checkouts.WithLabelValues(string(method), outcome).Inc()
	}
}
