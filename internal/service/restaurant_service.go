package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
)

// RestaurantService handles restaurant discovery and menus
type RestaurantService struct {
	repo repository.RestaurantRepository
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(repo repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{
		repo: repo,
	}
}

// ListRestaurants returns every restaurant in catalogue order
func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]models.RestaurantSummary, error) {
	return s.repo.List(ctx)
}

// Search returns the restaurants matching query, see FilterRestaurants
func (s *RestaurantService) Search(ctx context.Context, query string) ([]models.RestaurantSummary, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRestaurants(all, query), nil
}

// GetRestaurant returns a restaurant with its menu
func (s *RestaurantService) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrRestaurantNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	return restaurant, nil
}

// GetMenu returns the menu categories of a restaurant
func (s *RestaurantService) GetMenu(ctx context.Context, id string) ([]models.MenuCategory, error) {
	restaurant, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	return restaurant.Menu, nil
}

// FilterRestaurants keeps the restaurants whose name or any cuisine type
// contains query, ignoring case. Input order is preserved and an empty
// query keeps everything.
func FilterRestaurants(restaurants []models.RestaurantSummary, query string) []models.RestaurantSummary {
	q := strings.ToLower(query)
	out := make([]models.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.RestaurantSummary, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, c := range r.CuisineTypes {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

// FilterByCuisine keeps restaurants tagged with cuisine, ignoring case.
// An empty cuisine or "all" keeps everything.
func FilterByCuisine(restaurants []models.RestaurantSummary, cuisine string) []models.RestaurantSummary {
	if cuisine == "" || strings.EqualFold(cuisine, "all") {
		return restaurants
	}
	out := make([]models.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		for _, c := range r.CuisineTypes {
			if strings.EqualFold(c, cuisine) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterByMinRating keeps restaurants rated at least minRating. Unrated
// restaurants are dropped unless minRating is zero.
func FilterByMinRating(restaurants []models.RestaurantSummary, minRating float64) []models.RestaurantSummary {
	if minRating <= 0 {
		return restaurants
	}
	out := make([]models.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		if r.Rating != nil && *r.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out
}
