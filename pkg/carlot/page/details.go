package page

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/render"
)

// Details is the single car page.
type Details struct {
	api    Catalog
	car    *dal.Car
	logger *log.Logger
}

// NewDetails returns a details page with nothing loaded.
func NewDetails(api Catalog, logger *log.Logger) *Details {
	return &Details{api: api, logger: orDiscard(logger)}
}

// Open fetches carID.
func (p *Details) Open(ctx context.Context, carID string) error {
	if carID == "" {
		return ErrMissingCarID
	}
	car, err := p.api.GetCar(ctx, carID)
	if err != nil {
		return fmt.Errorf("get car %s: %w", carID, err)
	}
	p.car = car
	return nil
}

// Delete removes the opened car.
func (p *Details) Delete(ctx context.Context) error {
	if p.car == nil {
		return ErrNotLoaded
	}
	if err := p.api.DeleteCar(ctx, p.car.CarID); err != nil {
		return fmt.Errorf("delete car %s: %w", p.car.CarID, err)
	}
	p.logger.Info("car deleted", "carId", p.car.CarID)
	p.car = nil
	return nil
}

// View renders the opened car.
func (p *Details) View() (render.Detail, error) {
	if p.car == nil {
		return render.Detail{}, ErrNotLoaded
	}
	return render.NewDetail(*p.car), nil
}
