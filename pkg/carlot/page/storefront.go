package page

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/filter"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/render"
)

// DefaultPriceCeilings are the storefront price filter choices.
var DefaultPriceCeilings = []float64{20000, 30000, 40000, 60000, 80000}

// Storefront is the public inventory page.
type Storefront struct {
	api      Lister
	engine   *filter.Engine
	ceilings []float64
	logger   *log.Logger
}

// StorefrontView is everything the storefront shows.
type StorefrontView struct {
	Query   filter.Query
	Listing render.Listing
	Brands  []render.Option
	Prices  []render.Option
	Bodies  []render.Option
}

// NewStorefront returns a storefront with an empty inventory.
func NewStorefront(api Lister, logger *log.Logger) *Storefront {
	return &Storefront{
		api:      api,
		engine:   filter.NewEngine(),
		ceilings: DefaultPriceCeilings,
		logger:   orDiscard(logger),
	}
}

// Load fetches the inventory. On failure the previous inventory is kept.
func (s *Storefront) Load(ctx context.Context) error {
	cars, err := s.api.ListCars(ctx)
	if err != nil {
		s.logger.Error("inventory load failed", "err", err)
		return fmt.Errorf("load inventory: %w", err)
	}
	if err := s.engine.SetRecords(ctx, cars); err != nil {
		return fmt.Errorf("filter inventory: %w", err)
	}
	s.logger.Debug("inventory loaded", "cars", len(cars), "brands", len(s.engine.Brands()))
	return nil
}

// Search sets the free-text query.
func (s *Storefront) Search(ctx context.Context, text string) error {
	return s.engine.Update(ctx, func(q *filter.Query) { q.Search = text })
}

// FilterBrand sets the brand predicate; filter.All disables it.
func (s *Storefront) FilterBrand(ctx context.Context, brand string) error {
	return s.engine.Update(ctx, func(q *filter.Query) { q.Brand = brand })
}

// FilterPrice sets the price ceiling; filter.All disables it.
func (s *Storefront) FilterPrice(ctx context.Context, price string) error {
	return s.engine.Update(ctx, func(q *filter.Query) { q.Price = price })
}

// FilterBody sets the body style predicate; filter.All disables it.
func (s *Storefront) FilterBody(ctx context.Context, body string) error {
	return s.engine.Update(ctx, func(q *filter.Query) { q.Body = body })
}

// ApplyQuery replaces every predicate at once.
func (s *Storefront) ApplyQuery(ctx context.Context, q filter.Query) error {
	return s.engine.SetQuery(ctx, q)
}

// ClearFilters resets the query to match everything.
func (s *Storefront) ClearFilters(ctx context.Context) error {
	return s.engine.Reset(ctx)
}

// View projects the current filtered inventory.
func (s *Storefront) View() StorefrontView {
	q := s.engine.Query()
	return StorefrontView{
		Query:   q,
		Listing: render.Project(s.engine.View(), render.Storefront),
		Brands:  render.BrandSelect(s.engine.Brands(), q.Brand),
		Prices:  render.PriceSelect(s.ceilings, q.Price),
		Bodies:  render.BodySelect(q.Body),
	}
}

// Reserve acknowledges a viewing reservation for a fetched car.
func (s *Storefront) Reserve(carID string) (string, error) {
	car, ok := s.engine.Find(carID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCar, carID)
	}
	ref := strings.ToUpper(uuid.NewString()[:8])
	s.logger.Info("viewing reserved", "carId", carID, "ref", ref)
	return fmt.Sprintf("Reserved %s! We'll reach out shortly. Reference %s.", car.Title(), ref), nil
}

// RequestTestDrive records a test drive request. Only the field names are
// logged; the values are customer contact details.
func (s *Storefront) RequestTestDrive(form map[string]string) string {
	s.logger.Info("test drive request", "fields", fieldNames(form))
	return "Thanks! Our concierge will confirm shortly."
}

// SendContact records a contact message. Only the field names are logged.
func (s *Storefront) SendContact(form map[string]string) string {
	s.logger.Info("contact request", "fields", fieldNames(form))
	return "Message received! Expect a reply within 24 hours."
}

func fieldNames(form map[string]string) string {
	names := make([]string, 0, len(form))
	for name := range form {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
