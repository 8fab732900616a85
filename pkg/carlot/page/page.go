// Package page holds one controller per screen. Each controller owns its
// state explicitly and exposes user actions as named methods, so any
// presentation layer (web handlers, CLI) can drive it.
package page

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/upload"
)

var (
	// ErrMissingCarID is returned when a details or edit page has no id.
	ErrMissingCarID = errors.New("missing car id")
	// ErrInvalidField is returned when a form value does not parse.
	ErrInvalidField = errors.New("invalid field")
	// ErrUnknownCar is returned for actions on ids not in the fetched set.
	ErrUnknownCar = errors.New("car not found")
	// ErrNotLoaded is returned for actions that need a fetched record first.
	ErrNotLoaded = errors.New("car not loaded")
)

// Lister fetches the full inventory.
type Lister interface {
	ListCars(ctx context.Context) ([]dal.Car, error)
}

// Catalog is the full set of record operations.
type Catalog interface {
	Lister
	GetCar(ctx context.Context, carID string) (*dal.Car, error)
	CreateCar(ctx context.Context, payload dal.CarPayload) (*dal.Car, error)
	UpdateCar(ctx context.Context, carID string, payload dal.CarPayload) (*dal.Car, error)
	DeleteCar(ctx context.Context, carID string) error
}

// Uploader runs the image upload handshake.
type Uploader interface {
	Upload(ctx context.Context, f *upload.File) (string, error)
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
