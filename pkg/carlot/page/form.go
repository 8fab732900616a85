package page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// CarForm holds the raw values of the add and edit forms.
type CarForm struct {
	Brand       string
	Model       string
	Year        string
	Price       string
	Mileage     string
	Description string
}

// FormFromCar prefills a form from a stored record.
func FormFromCar(car dal.Car) CarForm {
	return CarForm{
		Brand:       car.Brand,
		Model:       car.Model,
		Year:        formatField(car.Year),
		Price:       formatField(car.Price),
		Mileage:     formatField(car.Mileage),
		Description: car.Description,
	}
}

// Payload converts the form into an API payload. Brand and model are
// required; blank numerics are zero.
func (f CarForm) Payload(imageURL string) (dal.CarPayload, error) {
	p := dal.CarPayload{
		Brand:       strings.TrimSpace(f.Brand),
		Model:       strings.TrimSpace(f.Model),
		Description: f.Description,
		ImageURL:    dal.StringPtr(imageURL),
	}
	if p.Brand == "" {
		return dal.CarPayload{}, fmt.Errorf("%w: brand is required", ErrInvalidField)
	}
	if p.Model == "" {
		return dal.CarPayload{}, fmt.Errorf("%w: model is required", ErrInvalidField)
	}

	for _, field := range []struct {
		name string
		raw  string
		dst  *dal.Number
	}{
		{"year", f.Year, &p.Year},
		{"price", f.Price, &p.Price},
		{"mileage", f.Mileage, &p.Mileage},
	} {
		n, err := dal.ParseNumber(field.raw)
		if err != nil {
			return dal.CarPayload{}, fmt.Errorf("%w: %s: %v", ErrInvalidField, field.name, err)
		}
		*field.dst = n
	}
	return p, nil
}

func formatField(n dal.Number) string {
	return strconv.FormatFloat(n.Float(), 'f', -1, 64)
}
