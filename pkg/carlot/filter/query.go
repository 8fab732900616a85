package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// All is the sentinel that disables the brand, price or body predicate.
const All = "all"

// Query holds the storefront filter criteria.
type Query struct {
	Search string
	Brand  string
	Price  string
	Body   string
}

// NewQuery returns a query that matches every record.
func NewQuery() Query {
	return Query{Brand: All, Price: All, Body: All}
}

// IsZero reports whether q matches everything.
func (q Query) IsZero() bool {
	return q.Search == "" && q.isAll(q.Brand) && q.isAll(q.Price) && q.isAll(q.Body)
}

func (q Query) isAll(v string) bool {
	return v == All || v == ""
}

// ceiling parses the price ceiling. An unparsable or non-finite ceiling is
// NaN, which no price satisfies.
func (q Query) ceiling() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(q.Price), 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

func haystack(car dal.Car) string {
	return strings.ToLower(car.Brand + " " + car.Model + " " + car.Description)
}

func matchSearch(car dal.Car, needle string) bool {
	return strings.Contains(haystack(car), needle)
}

func matchBrand(car dal.Car, brand string) bool {
	return car.Brand == brand
}

func matchPrice(car dal.Car, ceiling float64) bool {
	return car.Price.Float() <= ceiling
}

func matchBody(car dal.Car, body string) bool {
	return string(DeriveBodyStyle(car.Description)) == body
}

// Matches reports whether car passes every predicate of q.
func (q Query) Matches(car dal.Car) bool {
	if q.Search != "" && !matchSearch(car, strings.ToLower(q.Search)) {
		return false
	}
	if !q.isAll(q.Brand) && !matchBrand(car, q.Brand) {
		return false
	}
	if !q.isAll(q.Price) && !matchPrice(car, q.ceiling()) {
		return false
	}
	if !q.isAll(q.Body) && !matchBody(car, q.Body) {
		return false
	}
	return true
}
