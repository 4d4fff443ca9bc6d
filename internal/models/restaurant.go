package models

// RestaurantSummary is the card-level view of a restaurant used for
// discovery and search
type RestaurantSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	CuisineTypes []string `json:"cuisineTypes"`
	Rating       *float64 `json:"rating,omitempty"` // 0-5
	DeliveryTime string   `json:"deliveryTime,omitempty"`
}

// Restaurant is the full restaurant record including its menu
type Restaurant struct {
	RestaurantSummary
	LogoURL string         `json:"logoUrl,omitempty"`
	Address string         `json:"address,omitempty"`
	Tags    []string       `json:"tags,omitempty"`
	Menu    []MenuCategory `json:"menu"`
}

// Summary returns the card-level view of the restaurant
func (r Restaurant) Summary() RestaurantSummary {
	return r.RestaurantSummary
}

// FindMenuItem looks up a menu item by ID across all categories
func (r Restaurant) FindMenuItem(id string) (MenuItem, bool) {
	for _, c := range r.Menu {
		for _, item := range c.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}
