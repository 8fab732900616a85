// Package render projects car records into display units. It owns no state
// and performs no I/O.
package render

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/filter"
)

// ActionKind names what a card button does.
type ActionKind string

const (
	Reserve ActionKind = "reserve"
	View    ActionKind = "view"
	Edit    ActionKind = "edit"
	Delete  ActionKind = "delete"
)

// Action is an affordance bound to one car.
type Action struct {
	Kind  ActionKind
	CarID string
	Label string
	Href  string
}

// Card is the display unit for one car.
type Card struct {
	CarID       string
	ImageURL    string
	ImageAlt    string
	Title       string
	Year        int
	Price       string
	Description string
	BodyStyle   filter.BodyStyle
	Mileage     string
	Actions     []Action
}

// Listing is a projected sequence of cards.
type Listing struct {
	Cards      []Card
	Count      int
	CountLabel string
	Empty      bool
}

// Layout carries the page-specific placeholders and actions.
type Layout struct {
	ImagePlaceholder       string
	DescriptionPlaceholder string
	Actions                func(carID string) []Action
}

// Storefront is the public inventory layout.
var Storefront = Layout{
	ImagePlaceholder:       "/assets/cars/hero.jpg",
	DescriptionPlaceholder: "Discover more in person.",
	Actions: func(carID string) []Action {
		return []Action{
			{Kind: Reserve, CarID: carID, Label: "Reserve viewing", Href: "/reserve/" + url.PathEscape(carID)},
		}
	},
}

// Console is the admin inventory layout.
var Console = Layout{
	ImagePlaceholder:       "https://placehold.co/600x400",
	DescriptionPlaceholder: "No description provided.",
	Actions: func(carID string) []Action {
		id := url.QueryEscape(carID)
		return []Action{
			{Kind: View, CarID: carID, Label: "View Details", Href: "/admin/details?id=" + id},
			{Kind: Edit, CarID: carID, Label: "Edit", Href: "/admin/edit?id=" + id},
			{Kind: Delete, CarID: carID, Label: "Delete", Href: "/admin/cars/" + url.PathEscape(carID) + "/delete"},
		}
	},
}

const (
	detailImagePlaceholder = "https://placehold.co/800x600?text=No+Image"
	// EditImagePlaceholder is shown on the edit form when a car has no image.
	EditImagePlaceholder = "https://placehold.co/600x400?text=No+Image"
)

// Project renders cars with layout. The card order matches cars.
func Project(cars []dal.Car, layout Layout) Listing {
	cards := make([]Card, 0, len(cars))
	for _, car := range cars {
		cards = append(cards, NewCard(car, layout))
	}
	return Listing{
		Cards:      cards,
		Count:      len(cards),
		CountLabel: CountLabel(len(cards)),
		Empty:      len(cards) == 0,
	}
}

// NewCard renders a single car.
func NewCard(car dal.Car, layout Layout) Card {
	card := Card{
		CarID:       car.CarID,
		ImageURL:    fallback(car.Image(), layout.ImagePlaceholder),
		ImageAlt:    car.Title(),
		Title:       car.Title(),
		Year:        car.Year.Int(),
		Price:       FormatPrice(car.Price.Float()),
		Description: fallback(car.Description, layout.DescriptionPlaceholder),
		BodyStyle:   filter.DeriveBodyStyle(car.Description),
		Mileage:     FormatMileage(car.Mileage.Float()),
	}
	if layout.Actions != nil {
		card.Actions = layout.Actions(car.CarID)
	}
	return card
}

// CountLabel returns "1 vehicle" or "N vehicles".
func CountLabel(n int) string {
	if n == 1 {
		return "1 vehicle"
	}
	return fmt.Sprintf("%d vehicles", n)
}

// Detail is the single-car view.
type Detail struct {
	CarID       string
	Title       string
	Brand       string
	Model       string
	Year        int
	Price       string
	Mileage     string
	Description string
	ImageURL    string
	BodyStyle   filter.BodyStyle
	EditHref    string
}

// NewDetail renders car for the details page.
func NewDetail(car dal.Car) Detail {
	return Detail{
		CarID:       car.CarID,
		Title:       car.Title(),
		Brand:       car.Brand,
		Model:       car.Model,
		Year:        car.Year.Int(),
		Price:       FormatPrice(car.Price.Float()),
		Mileage:     FormatMileage(car.Mileage.Float()),
		Description: fallback(car.Description, Console.DescriptionPlaceholder),
		ImageURL:    fallback(car.Image(), detailImagePlaceholder),
		BodyStyle:   filter.DeriveBodyStyle(car.Description),
		EditHref:    "/admin/edit?id=" + url.QueryEscape(car.CarID),
	}
}

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// BrandSelect returns the "all" option followed by brands.
func BrandSelect(brands []string, selected string) []Option {
	opts := make([]Option, 0, len(brands)+1)
	opts = append(opts, Option{Value: filter.All, Label: "All brands", Selected: isAll(selected)})
	for _, b := range brands {
		opts = append(opts, Option{Value: b, Label: b, Selected: b == selected})
	}
	return opts
}

// PriceSelect returns the "all" option followed by one option per ceiling.
func PriceSelect(ceilings []float64, selected string) []Option {
	opts := make([]Option, 0, len(ceilings)+1)
	opts = append(opts, Option{Value: filter.All, Label: "Any price", Selected: isAll(selected)})
	for _, c := range ceilings {
		v := strconv.FormatFloat(c, 'f', -1, 64)
		opts = append(opts, Option{Value: v, Label: "Up to " + FormatPrice(c), Selected: v == selected})
	}
	return opts
}

// BodySelect returns the "all" option followed by every body style.
func BodySelect(selected string) []Option {
	opts := make([]Option, 0, len(filter.BodyStyles)+1)
	opts = append(opts, Option{Value: filter.All, Label: "Any body style", Selected: isAll(selected)})
	for _, s := range filter.BodyStyles {
		opts = append(opts, Option{Value: string(s), Label: string(s), Selected: string(s) == selected})
	}
	return opts
}

func isAll(v string) bool {
	return v == "" || v == filter.All
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
