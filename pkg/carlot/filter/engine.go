package filter

import (
	"context"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// Engine owns a fetched record set and the current query. The view is
// recomputed in full on every change. It is not safe for concurrent use.
type Engine struct {
	records []dal.Car
	brands  []string
	query   Query
	view    []dal.Car
}

// NewEngine returns an empty engine with a match-all query.
func NewEngine() *Engine {
	return &Engine{query: NewQuery()}
}

// SetRecords replaces the record set, recomputes brand options and the view.
// On error the engine is left unchanged.
func (e *Engine) SetRecords(ctx context.Context, records []dal.Car) error {
	view, err := Apply(ctx, records, e.query)
	if err != nil {
		return err
	}
	e.records = records
	e.brands = BrandOptions(records)
	e.view = view
	return nil
}

// SetQuery replaces the query and recomputes the view. On error the previous
// query and view are kept.
func (e *Engine) SetQuery(ctx context.Context, q Query) error {
	view, err := Apply(ctx, e.records, q)
	if err != nil {
		return err
	}
	e.query = q
	e.view = view
	return nil
}

// Update applies fn to a copy of the query and recomputes the view.
func (e *Engine) Update(ctx context.Context, fn func(*Query)) error {
	q := e.query
	fn(&q)
	return e.SetQuery(ctx, q)
}

// Reset restores the match-all query.
func (e *Engine) Reset(ctx context.Context) error {
	return e.SetQuery(ctx, NewQuery())
}

// Query returns the current query.
func (e *Engine) Query() Query { return e.query }

// Records returns the full record set.
func (e *Engine) Records() []dal.Car { return e.records }

// View returns the filtered records.
func (e *Engine) View() []dal.Car { return e.view }

// Brands returns the brand options computed at the last SetRecords.
func (e *Engine) Brands() []string { return e.brands }

// Find returns the record with carID.
func (e *Engine) Find(carID string) (dal.Car, bool) {
	for _, car := range e.records {
		if car.CarID == carID {
			return car, true
		}
	}
	return dal.Car{}, false
}
