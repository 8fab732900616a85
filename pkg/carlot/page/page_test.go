package page

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/api"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/catalog"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/filter"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/upload"
)

var seed = []dal.Car{
	{CarID: "f1", Brand: "Ford", Model: "F-150", Year: 2021, Price: 42000, Description: "Work truck"},
	{CarID: "h1", Brand: "Honda", Model: "Civic", Year: 2019, Price: 18500},
	{CarID: "t1", Brand: "Toyota", Model: "RAV4", Year: 2022, Price: 29000, Description: "Family SUV"},
}

func newCatalog(t *testing.T, cars ...dal.Car) (*api.Client, *upload.Uploader) {
	t.Helper()
	ts := httptest.NewServer(catalog.NewHandler("", nil, cars...))
	t.Cleanup(ts.Close)
	client := api.NewClient(ts.URL, api.WithHTTPClient(ts.Client()))
	return client, upload.NewUploader(client, ts.Client(), nil)
}

func TestStorefrontBrandScenario(t *testing.T) {
	ctx := context.Background()
	client, _ := newCatalog(t, seed...)
	s := NewStorefront(client, nil)

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.ApplyQuery(ctx, filter.Query{Brand: "Honda", Price: filter.All, Body: filter.All}); err != nil {
		t.Fatalf("ApplyQuery: %v", err)
	}

	v := s.View()
	if v.Listing.Count != 1 || v.Listing.Cards[0].CarID != "h1" {
		t.Fatalf("Expected only the Honda, Got: %+v", v.Listing.Cards)
	}

	var brands []string
	for _, o := range v.Brands {
		brands = append(brands, o.Value)
	}
	if strings.Join(brands, ",") != "all,Ford,Honda,Toyota" {
		t.Errorf("unexpected brand options: %v", brands)
	}
	if !v.Brands[2].Selected {
		t.Error("Honda option should be selected")
	}
}

func TestStorefrontCommands(t *testing.T) {
	ctx := context.Background()
	client, _ := newCatalog(t, seed...)
	s := NewStorefront(client, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}

	must(t, s.FilterBody(ctx, "suv"))
	if got := s.View().Listing; got.Count != 1 || got.Cards[0].CarID != "t1" {
		t.Errorf("body filter: %+v", got.Cards)
	}

	must(t, s.FilterBody(ctx, filter.All))
	must(t, s.FilterPrice(ctx, "29000"))
	if got := s.View().Listing.Count; got != 2 {
		t.Errorf("price filter: Expected 2, Got: %d", got)
	}

	must(t, s.Search(ctx, "CIVIC"))
	if got := s.View().Listing.Count; got != 1 {
		t.Errorf("search: Expected 1, Got: %d", got)
	}

	must(t, s.FilterBrand(ctx, "Ford"))
	if v := s.View(); !v.Listing.Empty || v.Listing.CountLabel != "0 vehicles" {
		t.Errorf("Expected empty state, Got: %+v", v.Listing)
	}

	must(t, s.ClearFilters(ctx))
	if got := s.View().Listing.Count; got != 3 {
		t.Errorf("clear: Expected 3, Got: %d", got)
	}

	msg, err := s.Reserve("h1")
	if err != nil || !strings.HasPrefix(msg, "Reserved Honda Civic!") {
		t.Errorf("Reserve: %q, %v", msg, err)
	}
	if _, err := s.Reserve("nope"); !errors.Is(err, ErrUnknownCar) {
		t.Errorf("Expected ErrUnknownCar, Got: %v", err)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestStorefrontFormsLogFieldNamesOnly(t *testing.T) {
	var buf bytes.Buffer
	s := NewStorefront(nil, log.New(&buf))

	form := map[string]string{"name": "Ann Lee", "email": "ann@example.com", "phone": "555-0100"}
	if msg := s.RequestTestDrive(form); msg == "" {
		t.Error("Expected an acknowledgement")
	}
	if msg := s.SendContact(form); msg == "" {
		t.Error("Expected an acknowledgement")
	}

	out := buf.String()
	for _, value := range form {
		if strings.Contains(out, value) {
			t.Errorf("log contains submitted value %q:\n%s", value, out)
		}
	}
	if !strings.Contains(out, "email,name,phone") {
		t.Errorf("log missing field names:\n%s", out)
	}
}

func TestStorefrontCancelledFilterKeepsView(t *testing.T) {
	client, _ := newCatalog(t, seed...)
	s := NewStorefront(client, nil)
	must(t, s.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.FilterBrand(ctx, "Honda"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, Got: %v", err)
	}
	if v := s.View(); v.Listing.Count != 3 || v.Query.Brand != filter.All {
		t.Errorf("cancelled filter changed the view: %d cars, brand %q", v.Listing.Count, v.Query.Brand)
	}
}

func TestStorefrontLoadFailureKeepsInventory(t *testing.T) {
	ctx := context.Background()
	var failing atomic.Bool
	catalogHandler := catalog.NewHandler("", nil, seed...)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		catalogHandler.ServeHTTP(w, r)
	}))
	defer ts.Close()

	s := NewStorefront(api.NewClient(ts.URL), nil)
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	failing.Store(true)
	err := s.Load(ctx)
	var se *api.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("Expected StatusError 503, Got: %v", err)
	}
	if got := s.View().Listing.Count; got != 3 {
		t.Errorf("Expected previous inventory, Got: %d cars", got)
	}
}

func TestAddCarWithImage(t *testing.T) {
	ctx := context.Background()
	client, uploader := newCatalog(t)
	p := NewAddCar(client, uploader, nil)

	err := p.SelectImage(ctx, &upload.File{Name: "civic.jpg", Body: strings.NewReader("JPEG")})
	if err != nil {
		t.Fatalf("SelectImage: %v", err)
	}
	if p.ImageURL() == "" {
		t.Fatal("expected an uploaded image url")
	}
	imageURL := p.ImageURL()

	car, err := p.Submit(ctx, CarForm{Brand: "Honda", Model: "Civic", Year: "2019", Price: "18500", Mileage: "42000"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if car.CarID == "" || car.Image() != imageURL {
		t.Errorf("unexpected car: %+v", car)
	}
	if p.ImageURL() != "" {
		t.Error("pending image must reset after submit")
	}

	resp, err := http.Get(imageURL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("uploaded object not served: %d", resp.StatusCode)
	}
}

type failingUploader struct{}

func (failingUploader) Upload(context.Context, *upload.File) (string, error) {
	return "", upload.ErrUploadFailed
}

func TestAddCarFailedUploadClearsImage(t *testing.T) {
	ctx := context.Background()
	client, uploader := newCatalog(t)
	p := NewAddCar(client, uploader, nil)
	if err := p.SelectImage(ctx, &upload.File{Name: "a.jpg", Body: strings.NewReader("x")}); err != nil {
		t.Fatal(err)
	}

	p.uploader = failingUploader{}
	if err := p.SelectImage(ctx, &upload.File{Name: "b.jpg", Body: strings.NewReader("y")}); !errors.Is(err, upload.ErrUploadFailed) {
		t.Fatalf("Expected ErrUploadFailed, Got: %v", err)
	}
	car, err := p.Submit(ctx, CarForm{Brand: "Kia", Model: "Soul"})
	if err != nil {
		t.Fatal(err)
	}
	if car.ImageURL != nil {
		t.Errorf("Expected no image after failed upload, Got: %s", car.Image())
	}
}

func TestCarFormValidation(t *testing.T) {
	tests := []struct {
		name string
		form CarForm
	}{
		{"MissingBrand", CarForm{Model: "Civic"}},
		{"MissingModel", CarForm{Brand: "Honda"}},
		{"BadPrice", CarForm{Brand: "Honda", Model: "Civic", Price: "cheap"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.form.Payload(""); !errors.Is(err, ErrInvalidField) {
				t.Errorf("Expected ErrInvalidField, Got: %v", err)
			}
		})
	}
}

func TestDetailsAndEdit(t *testing.T) {
	ctx := context.Background()
	img := "https://cdn.example/old.jpg"
	cars := append([]dal.Car(nil), seed...)
	cars[1].ImageURL = &img
	client, uploader := newCatalog(t, cars...)

	d := NewDetails(client, nil)
	if err := d.Open(ctx, ""); !errors.Is(err, ErrMissingCarID) {
		t.Errorf("Expected ErrMissingCarID, Got: %v", err)
	}
	if err := d.Open(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	view, err := d.View()
	if err != nil || view.Title != "Honda Civic" || view.ImageURL != img {
		t.Errorf("unexpected detail: %+v %v", view, err)
	}

	e := NewEditCar(client, uploader, nil)
	if err := e.Open(ctx, ""); !errors.Is(err, ErrMissingCarID) {
		t.Errorf("Expected ErrMissingCarID, Got: %v", err)
	}
	if err := e.Open(ctx, "h1"); err != nil {
		t.Fatal(err)
	}
	form := e.Form()
	if form.Price != "18500" || form.Year != "2019" || e.Preview() != img {
		t.Errorf("unexpected prefill: %+v preview=%s", form, e.Preview())
	}

	form.Price = "17000"
	updated, err := e.Submit(ctx, form)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Price.Float() != 17000 || updated.Image() != img {
		t.Errorf("existing image must survive an edit without replacement: %+v", updated)
	}

	if err := e.SelectImage(ctx, &upload.File{Name: "new.png", Body: strings.NewReader("PNG")}); err != nil {
		t.Fatal(err)
	}
	updated, err = e.Submit(ctx, form)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Image() == img || updated.Image() == "" {
		t.Errorf("replacement image not applied: %s", updated.Image())
	}

	if err := d.Delete(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Open(ctx, "h1"); err == nil {
		t.Error("expected error opening a deleted car")
	}
}

func TestInventoryDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := newCatalog(t, seed...)
	inv := NewInventory(client, nil)
	if err := inv.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := inv.Delete(ctx, "f1"); err != nil {
		t.Fatal(err)
	}
	v := inv.View()
	if v.Count != 2 || v.Cards[0].CarID != "h1" {
		t.Errorf("unexpected listing after delete: %+v", v.Cards)
	}
	if err := inv.Delete(ctx, "f1"); err == nil {
		t.Error("expected error deleting a missing car")
	}
	if got := inv.View().Count; got != 2 {
		t.Errorf("failed delete must not change the listing, Got: %d", got)
	}
}
