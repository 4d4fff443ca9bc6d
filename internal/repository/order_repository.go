package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order already exists")
	// ErrStatusConflict means the order no longer has the expected status
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// PlaceholderOrderID identifies the sample order shown when tracking is
// opened without an order ID
const PlaceholderOrderID = "ORD12345XYZ"

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	// UpdateStatus moves an order from one status to another. It fails with
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error
}

// InMemoryOrderRepository implements OrderRepository with a guarded map
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewInMemoryOrderRepository creates a repository holding the placeholder order
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	placeholder := PlaceholderOrder(time.Now().UTC())
	return &InMemoryOrderRepository{
		orders: map[string]models.Order{placeholder.ID: placeholder},
	}
}

// PlaceholderOrder returns the sample order in the preparing state
func PlaceholderOrder(createdAt time.Time) models.Order {
	return models.Order{
		ID:             PlaceholderOrderID,
		Status:         models.StatusPreparing,
		RestaurantName: "Pizza Heaven",
		Items: []models.OrderLine{
			{Name: "Margherita Pizza", Quantity: 1, Price: 12.99},
			{Name: "Coke", Quantity: 2, Price: 1.50},
		},
		Subtotal:          15.99,
		Total:             15.99,
		EstimatedDelivery: "4:30 PM - 4:45 PM",
		DeliveryPartner:   &models.DeliveryPartner{Name: "John Rider", Phone: "555-1234"},
		CreatedAt:         createdAt,
	}
}

// Get returns a copy of the order
func (r *InMemoryOrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	order.Items = append([]models.OrderLine(nil), order.Items...)
	return &order, nil
}

// Create stores a new order
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return ErrOrderExists
	}
	stored := *order
	stored.Items = append([]models.OrderLine(nil), order.Items...)
	r.orders[order.ID] = stored
	return nil
}

// UpdateStatus compares and swaps the status of an existing order
func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return ErrOrderNotFound
	}
	if order.Status != from {
		return ErrStatusConflict
	}
	order.Status = to
	r.orders[id] = order
	return nil
}
