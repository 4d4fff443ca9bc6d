package models

// CartLine is one distinct product entry in a cart.
// Quantity is always >= 1; lines are removed rather than stored at zero.
type CartLine struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Restaurant string  `json:"restaurant,omitempty"`
}

// AddToCartRequest is the payload for adding a menu item to the cart
type AddToCartRequest struct {
	RestaurantID string `json:"restaurantId"`
	ItemID       string `json:"itemId"`
	Quantity     int    `json:"quantity,omitempty"`
}

// UpdateQuantityRequest is the payload for setting a cart line quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
