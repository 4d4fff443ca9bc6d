package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// RestaurantRepository defines the interface for restaurant data access
type RestaurantRepository interface {
	List(ctx context.Context) ([]models.RestaurantSummary, error)
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
}

// InMemoryRestaurantRepository implements RestaurantRepository with static placeholder data
type InMemoryRestaurantRepository struct {
	order       []string
	restaurants map[string]models.Restaurant
}

// NewInMemoryRestaurantRepository creates a repository seeded with the placeholder restaurants
func NewInMemoryRestaurantRepository() *InMemoryRestaurantRepository {
	return NewInMemoryRestaurantRepositoryWith(seedRestaurants())
}

// NewInMemoryRestaurantRepositoryWith creates a repository holding restaurants in the given order
func NewInMemoryRestaurantRepositoryWith(restaurants []models.Restaurant) *InMemoryRestaurantRepository {
	repo := &InMemoryRestaurantRepository{
		order:       make([]string, 0, len(restaurants)),
		restaurants: make(map[string]models.Restaurant, len(restaurants)),
	}
	for _, r := range restaurants {
		repo.order = append(repo.order, r.ID)
		repo.restaurants[r.ID] = r
	}
	return repo
}

// List returns every restaurant summary in catalogue order
func (r *InMemoryRestaurantRepository) List(ctx context.Context) ([]models.RestaurantSummary, error) {
	summaries := make([]models.RestaurantSummary, 0, len(r.order))
	for _, id := range r.order {
		summaries = append(summaries, r.restaurants[id].Summary())
	}
	return summaries, nil
}

// GetByID returns a restaurant with its menu
func (r *InMemoryRestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant, exists := r.restaurants[id]
	if !exists {
		return nil, ErrRestaurantNotFound
	}
	return &restaurant, nil
}

func rating(v float64) *float64 { return &v }

func seedRestaurants() []models.Restaurant {
	const img = "https://images.unsplash.com/"

	return []models.Restaurant{
		{
			RestaurantSummary: models.RestaurantSummary{
				ID:           "1",
				Name:         "Pizza Heaven",
				ImageURL:     img + "photo-1513104890138-7c749659a591?auto=format&fit=crop&w=300&q=60",
				CuisineTypes: []string{"Italian", "Pizza"},
				Rating:       rating(4.5),
				DeliveryTime: "25-30 min",
			},
			LogoURL: "https://cdn-icons-png.flaticon.com/128/3135/3135715.png",
			Address: "123 Pizza St, Flavor Town, USA",
			Tags:    []string{"Italian", "Pizza", "Top Rated"},
			Menu: []models.MenuCategory{
				{Key: "appetizers", Items: []models.MenuItem{
					{ID: "a1", Name: "Garlic Bread", Description: "Crusty bread with garlic butter and herbs.", Price: 5.99,
						ImageURL: img + "photo-1589647390010-DA86DP93Af96?auto=format&fit=crop&w=200&q=60", Tags: []string{"Vegetarian"}},
					{ID: "a2", Name: "Bruschetta", Description: "Toasted bread with fresh tomatoes, basil, and balsamic glaze.", Price: 7.50,
						ImageURL: img + "photo-1505253716362-af242227bc47?auto=format&fit=crop&w=200&q=60", Tags: []string{"Vegetarian", "Popular"}},
				}},
				{Key: "mainCourses", Items: []models.MenuItem{
					{ID: "m1", Name: "Margherita Pizza", Description: "Classic cheese and tomato pizza with basil.", Price: 12.99,
						ImageURL: img + "photo-1593560704563-f176a2eb61db?auto=format&fit=crop&w=200&q=60", Tags: []string{"Vegetarian", "Best Seller"}},
					{ID: "m2", Name: "Pepperoni Pizza", Description: "Pizza topped with delicious pepperoni slices.", Price: 14.50,
						ImageURL: img + "photo-1528137871618-79d2761e3fd5?auto=format&fit=crop&w=200&q=60"},
					{ID: "m3", Name: "Spaghetti Carbonara", Description: "Creamy pasta with pancetta and pecorino cheese.", Price: 15.00,
						ImageURL: img + "photo-1588013273468-315080664211?auto=format&fit=crop&w=200&q=60", Tags: []string{"Popular"}, OutOfStock: true},
				}},
				{Key: "desserts", Items: []models.MenuItem{
					{ID: "d1", Name: "Tiramisu", Description: "Classic Italian coffee-flavored dessert.", Price: 6.50,
						ImageURL: img + "photo-1571877275904-68eb1101614e?auto=format&fit=crop&w=200&q=60", Tags: []string{"Vegetarian"}},
				}},
				{Key: "drinks", Items: []models.MenuItem{
					{ID: "k1", Name: "Coke", Price: 1.50},
				}},
			},
		},
		{
			RestaurantSummary: models.RestaurantSummary{
				ID:           "2",
				Name:         "Burger Joint",
				ImageURL:     img + "photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=300&q=60",
				CuisineTypes: []string{"American", "Burgers"},
				Rating:       rating(4.2),
				DeliveryTime: "20-25 min",
			},
			Address: "45 Grill Ave, Flavor Town, USA",
			Tags:    []string{"American", "Burgers"},
			Menu: []models.MenuCategory{
				{Key: "mainCourses", Items: []models.MenuItem{
					{ID: "b1", Name: "Classic Burger", Description: "Beef patty, cheddar, lettuce, tomato.", Price: 13.99},
					{ID: "b2", Name: "Veggie Burger", Description: "Black bean patty with avocado.", Price: 12.49, Tags: []string{"Vegetarian"}},
				}},
				{Key: "sides", Items: []models.MenuItem{
					{ID: "b3", Name: "Fries", Price: 3.99, Tags: []string{"Vegan"}},
				}},
			},
		},
		{
			RestaurantSummary: models.RestaurantSummary{
				ID:           "3",
				Name:         "Sushi World",
				ImageURL:     img + "photo-1579871494447-9811cf80d66c?auto=format&fit=crop&w=300&q=60",
				CuisineTypes: []string{"Japanese", "Sushi"},
				Rating:       rating(4.8),
				DeliveryTime: "30-40 min",
			},
			Address: "8 Harbor Rd, Flavor Town, USA",
			Tags:    []string{"Japanese", "Sushi", "Top Rated"},
			Menu: []models.MenuCategory{
				{Key: "rolls", Items: []models.MenuItem{
					{ID: "s1", Name: "California Roll", Description: "Crab, avocado, cucumber.", Price: 8.50},
					{ID: "s2", Name: "Spicy Tuna Roll", Description: "Tuna with spicy mayo.", Price: 9.50, Tags: []string{"Spicy"}},
				}},
			},
		},
		{
			RestaurantSummary: models.RestaurantSummary{
				ID:           "4",
				Name:         "Curry House",
				ImageURL:     img + "photo-1589302168068-964664d93dc0?auto=format&fit=crop&w=300&q=60",
				CuisineTypes: []string{"Indian", "Curry"},
				Rating:       rating(4.6),
				DeliveryTime: "35-45 min",
			},
			Address: "77 Spice Ln, Flavor Town, USA",
			Tags:    []string{"Indian", "Curry"},
			Menu: []models.MenuCategory{
				{Key: "mainCourses", Items: []models.MenuItem{
					{ID: "c1", Name: "Butter Chicken", Description: "Chicken in a creamy tomato sauce.", Price: 14.99, Tags: []string{"Popular"}},
					{ID: "c2", Name: "Chana Masala", Description: "Spiced chickpea curry.", Price: 11.99, Tags: []string{"Vegan"}},
				}},
				{Key: "breads", Items: []models.MenuItem{
					{ID: "c3", Name: "Garlic Naan", Price: 2.99, Tags: []string{"Vegetarian"}},
				}},
			},
		},
	}
}
