package catalog

import (
	"strings"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/govalues/decimal"
)

// Catalog is the static restaurant table of the demo. There is no state
// beyond it and no I/O.
type Catalog struct {
	restaurants []domain.Restaurant
}

func New() *Catalog {
	return &Catalog{restaurants: buildTable()}
}

func buildTable() []domain.Restaurant {
	type dish struct {
		name  string
		price string
	}
	def := []struct {
		name     string
		cuisine  string
		rating   float64
		eta      int
		location string
		menu     []dish
	}{
		{"Pizza Italiana Deluxe", "italian", 4.5, 30, "Center", []dish{
			{"Margherita Pizza", "11.90"},
			{"Pasta Carbonara", "9.50"},
			{"Lasagna", "12.40"},
		}},
		{"Wok Express", "chinese", 4.0, 25, "North", []dish{
			{"Fried Rice", "7.20"},
			{"Sweet and Sour Chicken", "8.60"},
			{"Chow Mein", "7.90"},
		}},
		{"Tacos El Mariachi", "mexican", 4.3, 20, "South", []dish{
			{"Tacos al Pastor", "6.50"},
			{"Quesadillas", "5.80"},
			{"Burritos", "7.10"},
		}},
		{"Green Garden", "vegetarian", 4.7, 35, "Center", []dish{
			{"Buddha Bowl", "10.20"},
			{"Vegan Caesar Salad", "8.90"},
			{"Quinoa Burger", "9.80"},
		}},
		{"Sushi Zen", "japanese", 4.8, 40, "North", []dish{
			{"Assorted Sushi", "16.90"},
			{"Ramen", "12.50"},
			{"Tempura", "11.30"},
		}},
	}

	restaurants := make([]domain.Restaurant, 0, len(def))
	for _, d := range def {
		r := domain.Restaurant{
			Name:       d.name,
			Cuisine:    d.cuisine,
			Rating:     d.rating,
			ETAMinutes: d.eta,
			Location:   d.location,
		}
		for _, dish := range d.menu {
			r.Menu = append(r.Menu, domain.MenuItem{
				Restaurant: d.name,
				Name:       dish.name,
				Cuisine:    d.cuisine,
				Price:      decimal.MustParse(dish.price),
				ETAMinutes: d.eta,
				Rating:     d.rating,
			})
		}
		restaurants = append(restaurants, r)
	}
	return restaurants
}

func (c *Catalog) Restaurants() []domain.Restaurant {
	out := make([]domain.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Catalog) Menu(restaurant string) ([]domain.MenuItem, error) {
	for _, r := range c.restaurants {
		if strings.EqualFold(r.Name, restaurant) {
			return append([]domain.MenuItem(nil), r.Menu...), nil
		}
	}
	return nil, domain.ErrDataNotFound
}

// Find scores every menu item against the query: one point per item-name
// word present in the text plus one for a cuisine mention. Best score wins,
// rating breaks ties.
func (c *Catalog) Find(query string, restaurant string) (*domain.MenuItem, error) {
	query = strings.ToLower(query)
	restaurant = strings.ToLower(restaurant)

	var best *domain.MenuItem
	bestScore := 0

	for i := range c.restaurants {
		r := &c.restaurants[i]
		if restaurant != "" && !strings.Contains(strings.ToLower(r.Name), restaurant) {
			continue
		}
		for j := range r.Menu {
			item := &r.Menu[j]
			score := scoreItem(item, query)
			if score > bestScore || (score == bestScore && score > 0 && item.Rating > best.Rating) {
				bestScore = score
				best = item
			}
		}
	}

	if best == nil {
		return nil, domain.ErrItemNotFound
	}
	cp := *best
	return &cp, nil
}

func scoreItem(item *domain.MenuItem, query string) int {
	score := 0
	for _, word := range strings.Fields(strings.ToLower(item.Name)) {
		if len(word) < 4 {
			continue
		}
		if strings.Contains(query, word) {
			score++
		}
	}
	if strings.Contains(query, item.Cuisine) {
		score++
	}
	return score
}
