package service

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrOutOfStock         = errors.New("menu item is out of stock")
	ErrLineNotFound       = errors.New("item is not in the cart")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrTerminalStatus     = errors.New("order status can no longer change")
	ErrStatusConflict     = errors.New("order status was changed by another request")
)
