package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/foodie-storefront/internal/cart"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
)

// CartService manages visitor carts. Every mutation is applied through the
// store's atomic Update, so concurrent changes to one cart are not lost.
type CartService struct {
	store       repository.CartStore
	restaurants repository.RestaurantRepository
}

// NewCartService creates a new cart service
func NewCartService(store repository.CartStore, restaurants repository.RestaurantRepository) *CartService {
	return &CartService{
		store:       store,
		restaurants: restaurants,
	}
}

// Get returns the visitor's cart, empty when none was saved
func (s *CartService) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

// AddItem puts a menu item in the cart. Quantity defaults to one.
func (s *CartService) AddItem(ctx context.Context, cartID string, req models.AddToCartRequest) (*cart.Cart, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	restaurant, err := s.restaurants.GetByID(ctx, req.RestaurantID)
	if errors.Is(err, repository.ErrRestaurantNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, req.RestaurantID)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", req.RestaurantID, err)
	}

	item, ok := restaurant.FindMenuItem(req.ItemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, req.ItemID)
	}
	if item.OutOfStock {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, item.Name)
	}

	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.Add(models.CartLine{
			ID:         item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   quantity,
			ImageURL:   item.ImageURL,
			Restaurant: restaurant.Name,
		})
	})
}

// UpdateQuantity sets a line's quantity; below one removes the line
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.UpdateQuantity(itemID, quantity)
	})
}

// Increment adds one unit of an item already in the cart
func (s *CartService) Increment(ctx context.Context, cartID, itemID string) (*cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.Increment(itemID)
	})
}

// Decrement removes one unit, dropping the line at zero
func (s *CartService) Decrement(ctx context.Context, cartID, itemID string) (*cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.Decrement(itemID)
	})
}

// RemoveItem drops a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (*cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) error {
		return c.Remove(itemID)
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if err := s.store.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *CartService) mutate(ctx context.Context, cartID string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	c, err := s.store.Update(ctx, cartID, fn)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, cart.ErrLineNotFound):
		return nil, ErrLineNotFound
	case errors.Is(err, cart.ErrInvalidQuantity):
		return nil, ErrInvalidQuantity
	}
	return nil, fmt.Errorf("update cart: %w", err)
}
