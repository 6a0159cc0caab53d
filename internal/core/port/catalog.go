package port

import (
	"github.com/dsemenov/delivbot/internal/core/domain"
)

//go:generate mockgen -source=catalog.go -destination=mock/catalog.go -package=mock

type Catalog interface {
	// Find matches free text against the menu table. The restaurant filter
	// is optional; an empty string searches everywhere.
	Find(query string, restaurant string) (*domain.MenuItem, error)
	Restaurants() []domain.Restaurant
	Menu(restaurant string) ([]domain.MenuItem, error)
}
