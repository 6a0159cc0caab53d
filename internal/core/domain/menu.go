package domain

import "github.com/govalues/decimal"

type MenuItem struct {
	Restaurant string
	Name       string
	Cuisine    string
	Price      decimal.Decimal
	ETAMinutes int
	Rating     float64
}

type Restaurant struct {
	Name       string
	Cuisine    string
	Rating     float64
	ETAMinutes int
	Location   string
	Menu       []MenuItem
}
