package service

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
)

func names(list []models.RestaurantSummary) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Name
	}
	return out
}

func TestRestaurantService_Search(t *testing.T) {
	svc := NewRestaurantService(repository.NewInMemoryRestaurantRepository())
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "", want: []string{"Pizza Heaven", "Burger Joint", "Sushi World", "Curry House"}},
		{name: "cuisine match ignores case", query: "italian", want: []string{"Pizza Heaven"}},
		{name: "name match", query: "Joint", want: []string{"Burger Joint"}},
		{name: "matches name or cuisine", query: "u", want: []string{"Burger Joint", "Sushi World", "Curry House"}},
		{name: "no match", query: "xyz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

// The result must be the subsequence of the input that matches, for any query.
func TestFilterRestaurants_Subsequence(t *testing.T) {
	all, err := repository.NewInMemoryRestaurantRepository().List(context.Background())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ ")

	for i := 0; i < 500; i++ {
		q := make([]rune, rng.Intn(4))
		for j := range q {
			q[j] = alphabet[rng.Intn(len(alphabet))]
		}
		query := string(q)

		got := FilterRestaurants(all, query)

		var want []models.RestaurantSummary
		for _, r := range all {
			hay := append([]string{r.Name}, r.CuisineTypes...)
			for _, h := range hay {
				if strings.Contains(strings.ToLower(h), strings.ToLower(query)) {
					want = append(want, r)
					break
				}
			}
		}
		assert.Equal(t, names(want), names(got), "query %q", query)
	}
}

func TestRestaurantService_GetMenu(t *testing.T) {
	svc := NewRestaurantService(repository.NewInMemoryRestaurantRepository())
	ctx := context.Background()

	menu, err := svc.GetMenu(ctx, "1")
	require.NoError(t, err)
	require.Len(t, menu, 4)
	assert.Equal(t, "Main Courses", menu[1].Name())

	_, err = svc.GetMenu(ctx, "404")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestFilterByCuisineAndRating(t *testing.T) {
	all, err := repository.NewInMemoryRestaurantRepository().List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, names(all), names(FilterByCuisine(all, "all")))
	assert.Equal(t, names(all), names(FilterByCuisine(all, "")))
	assert.Equal(t, []string{"Curry House"}, names(FilterByCuisine(all, "indian")))
	assert.Empty(t, FilterByCuisine(all, "mexican"))

	assert.Equal(t, names(all), names(FilterByMinRating(all, 0)))
	assert.Equal(t, []string{"Pizza Heaven", "Sushi World", "Curry House"}, names(FilterByMinRating(all, 4.5)))

	unrated := []models.RestaurantSummary{{ID: "9", Name: "New Place"}}
	assert.Empty(t, FilterByMinRating(unrated, 3))
}
