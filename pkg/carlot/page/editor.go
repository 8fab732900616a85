package page

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/render"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/upload"
)

// AddCar is the create form. An image is uploaded as soon as it is selected;
// the resulting URL is attached on submit.
type AddCar struct {
	api      Catalog
	uploader Uploader
	imageURL string
	logger   *log.Logger
}

// NewAddCar returns an empty create form.
func NewAddCar(api Catalog, uploader Uploader, logger *log.Logger) *AddCar {
	return &AddCar{api: api, uploader: uploader, logger: orDiscard(logger)}
}

// SelectImage uploads f. Selecting nothing or a failed upload clears the
// pending image.
func (p *AddCar) SelectImage(ctx context.Context, f *upload.File) error {
	p.imageURL = ""
	if f == nil {
		return nil
	}
	objectURL, err := p.uploader.Upload(ctx, f)
	if err != nil {
		return err
	}
	p.imageURL = objectURL
	return nil
}

// ImageURL returns the uploaded image waiting to be attached.
func (p *AddCar) ImageURL() string { return p.imageURL }

// Submit creates the car and resets the pending image.
func (p *AddCar) Submit(ctx context.Context, form CarForm) (*dal.Car, error) {
	payload, err := form.Payload(p.imageURL)
	if err != nil {
		return nil, err
	}
	car, err := p.api.CreateCar(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	p.logger.Info("car created", "carId", car.CarID, "brand", payload.Brand, "model", payload.Model)
	p.imageURL = ""
	return car, nil
}

// EditCar is the update form for one car.
type EditCar struct {
	api         Catalog
	uploader    Uploader
	carID       string
	form        CarForm
	existing    string
	replacement string
	logger      *log.Logger
}

// NewEditCar returns an edit form with nothing loaded.
func NewEditCar(api Catalog, uploader Uploader, logger *log.Logger) *EditCar {
	return &EditCar{api: api, uploader: uploader, logger: orDiscard(logger)}
}

// Open fetches carID and prefills the form.
func (p *EditCar) Open(ctx context.Context, carID string) error {
	if carID == "" {
		return ErrMissingCarID
	}
	car, err := p.api.GetCar(ctx, carID)
	if err != nil {
		return fmt.Errorf("get car %s: %w", carID, err)
	}
	p.carID = carID
	p.form = FormFromCar(*car)
	p.existing = car.Image()
	p.replacement = ""
	return nil
}

// CarID returns the car being edited.
func (p *EditCar) CarID() string { return p.carID }

// Form returns the prefilled values.
func (p *EditCar) Form() CarForm { return p.form }

// SelectImage uploads a replacement image. Selecting nothing or a failed
// upload falls back to the existing image.
func (p *EditCar) SelectImage(ctx context.Context, f *upload.File) error {
	p.replacement = ""
	if f == nil {
		return nil
	}
	objectURL, err := p.uploader.Upload(ctx, f)
	if err != nil {
		return err
	}
	p.replacement = objectURL
	return nil
}

// Preview returns the image the car will have after submit.
func (p *EditCar) Preview() string {
	if img := p.imageURL(); img != "" {
		return img
	}
	return render.EditImagePlaceholder
}

func (p *EditCar) imageURL() string {
	if p.replacement != "" {
		return p.replacement
	}
	return p.existing
}

// Submit writes form over the car. There is no version check: the last
// write wins.
func (p *EditCar) Submit(ctx context.Context, form CarForm) (*dal.Car, error) {
	if p.carID == "" {
		return nil, ErrNotLoaded
	}
	payload, err := form.Payload(p.imageURL())
	if err != nil {
		return nil, err
	}
	car, err := p.api.UpdateCar(ctx, p.carID, payload)
	if err != nil {
		return nil, fmt.Errorf("update car %s: %w", p.carID, err)
	}
	p.logger.Info("car updated", "carId", p.carID)
	p.form = form
	return car, nil
}
