package page

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/render"
)

// Inventory is the admin listing page.
type Inventory struct {
	api    Catalog
	cars   []dal.Car
	logger *log.Logger
}

// NewInventory returns an empty admin listing.
func NewInventory(api Catalog, logger *log.Logger) *Inventory {
	return &Inventory{api: api, logger: orDiscard(logger)}
}

// Load fetches every car.
func (p *Inventory) Load(ctx context.Context) error {
	cars, err := p.api.ListCars(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	p.cars = cars
	return nil
}

// Delete removes a car and refetches the listing. A failed delete leaves the
// listing as it was.
func (p *Inventory) Delete(ctx context.Context, carID string) error {
	if carID == "" {
		return ErrMissingCarID
	}
	if err := p.api.DeleteCar(ctx, carID); err != nil {
		return fmt.Errorf("delete car %s: %w", carID, err)
	}
	p.logger.Info("car deleted", "carId", carID)
	return p.Load(ctx)
}

// View projects the listing.
func (p *Inventory) View() render.Listing {
	return render.Project(p.cars, render.Console)
}
