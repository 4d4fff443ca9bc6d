package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/Lixing-Zhang/foodie-storefront/internal/cart"
	"github.com/Lixing-Zhang/foodie-storefront/internal/events"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
	"github.com/Lixing-Zhang/foodie-storefront/internal/tracking"
)

const (
	deliveryWindowStart = 30 * time.Minute
	deliveryWindowEnd   = 45 * time.Minute
	qrCodeSize          = 256
)

// OrderService handles order placement and tracking
type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartStore
	publisher events.Publisher
	baseURL   string
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service. baseURL prefixes the
// tracking links encoded in QR codes.
func NewOrderService(orders repository.OrderRepository, carts repository.CartStore, publisher events.Publisher, baseURL string, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		publisher: publisher,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
		now:       time.Now,
	}
}

// GetOrder returns an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

// PlaceOrder turns the visitor's cart into a confirmed order and empties
// the cart. The form is expected to be validated already.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, form models.CheckoutForm) (*models.Order, error) {
	c, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := s.now().UTC()
	totals := c.Totals().Summary()

	order := &models.Order{
		ID:                generateOrderID(),
		Status:            models.StatusConfirmed,
		RestaurantName:    restaurantNames(c),
		Items:             orderLines(c),
		Subtotal:          totals.Subtotal,
		DeliveryFee:       totals.DeliveryFee,
		Tax:               totals.Tax,
		Total:             totals.Total,
		EstimatedDelivery: deliveryWindow(s.now()),
		PaymentMethod:     form.PaymentMethod,
		CustomerName:      form.FullName,
		DeliveryAddress:   fmt.Sprintf("%s, %s %s, %s", form.Address, form.City, form.ZipCode, form.Country),
		CreatedAt:         now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.Delete(ctx, cartID); err != nil {
		s.logger.Warn("failed to clear cart after order", "cart_id", cartID, "order_id", order.ID, "error", err)
	}

	s.publish(ctx, events.OrderEvent{
		Type:       events.TypeOrderPlaced,
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: now,
	})

	s.logger.Info("order placed", "order_id", order.ID, "items_count", len(order.Items), "total", order.Total)
	return order, nil
}

// UpdateStatus moves an order to a new status. Terminal orders and
// backwards moves are rejected, and so is a change racing another one.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := order.Status
	if prev.Terminal() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrTerminalStatus, id, prev)
	}
	if !tracking.CanTransition(prev, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, prev, status)
	}

	// the write only lands if nobody moved the order since it was read
	err = s.orders.UpdateStatus(ctx, id, prev, status)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	case errors.Is(err, repository.ErrStatusConflict):
		return nil, fmt.Errorf("%w: order %s is no longer %s", ErrStatusConflict, id, prev)
	case err != nil:
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	order.Status = status

	s.publish(ctx, events.OrderEvent{
		Type:       events.TypeOrderStatusChanged,
		OrderID:    id,
		Status:     status,
		PrevStatus: prev,
		OccurredAt: s.now().UTC(),
	})

	s.logger.Info("order status changed", "order_id", id, "from", prev, "to", status)
	return order, nil
}

// TrackingURL returns the public tracking page link for an order
func (s *OrderService) TrackingURL(id string) string {
	return s.baseURL + "/order-tracking/" + id
}

// QRCode renders a PNG QR code linking to the order's tracking page
func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.TrackingURL(id), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code for order %s: %w", id, err)
	}
	return png, nil
}

// publish failures are logged; the order change itself already succeeded
func (s *OrderService) publish(ctx context.Context, event events.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish order event", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}

func orderLines(c *cart.Cart) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, models.OrderLine{Name: l.Name, Quantity: l.Quantity, Price: l.UnitPrice})
	}
	return lines
}

// restaurantNames lists the distinct restaurants in cart order
func restaurantNames(c *cart.Cart) string {
	seen := make(map[string]bool)
	var names []string
	for _, l := range c.Lines {
		if l.Restaurant == "" || seen[l.Restaurant] {
			continue
		}
		seen[l.Restaurant] = true
		names = append(names, l.Restaurant)
	}
	return strings.Join(names, ", ")
}

func deliveryWindow(placed time.Time) string {
	const layout = "3:04 PM"
	return placed.Add(deliveryWindowStart).Format(layout) + " - " + placed.Add(deliveryWindowEnd).Format(layout)
}
