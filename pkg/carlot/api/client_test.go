package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

func newTestClient(t *testing.T, r *mux.Router) *Client {
	t.Helper()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", WithHTTPClient(ts.Client()))
}

func TestClientCRUD(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/cars", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `[{"carId":"a","brand":"Honda","model":"Civic","year":"2019","price":"18500","mileage":42000}]`)
	}).Methods(http.MethodGet)
	r.HandleFunc("/cars", func(w http.ResponseWriter, req *http.Request) {
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			http.Error(w, "bad content type "+ct, http.StatusBadRequest)
			return
		}
		var p dal.CarPayload
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dal.Car{CarID: "new", Brand: p.Brand, Model: p.Model, Year: p.Year})
	}).Methods(http.MethodPost)
	r.HandleFunc("/cars/{carId}", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(dal.Car{CarID: mux.Vars(req)["carId"], Brand: "Ford"})
	}).Methods(http.MethodGet, http.MethodPut)
	r.HandleFunc("/cars/{carId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	c := newTestClient(t, r)
	ctx := context.Background()

	cars, err := c.ListCars(ctx)
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(cars) != 1 || cars[0].Price.Float() != 18500 || cars[0].Year.Int() != 2019 {
		t.Errorf("unexpected list: %+v", cars)
	}

	created, err := c.CreateCar(ctx, dal.CarPayload{Brand: "Kia", Model: "Soul", Year: 2020})
	if err != nil {
		t.Fatalf("CreateCar: %v", err)
	}
	if created.CarID != "new" || created.Brand != "Kia" {
		t.Errorf("unexpected created car: %+v", created)
	}

	got, err := c.GetCar(ctx, "abc")
	if err != nil {
		t.Fatalf("GetCar: %v", err)
	}
	if got.CarID != "abc" {
		t.Errorf("Expected: abc, Got: %s", got.CarID)
	}

	if _, err := c.UpdateCar(ctx, "abc", dal.CarPayload{Brand: "Ford"}); err != nil {
		t.Fatalf("UpdateCar: %v", err)
	}

	if err := c.DeleteCar(ctx, "abc"); err != nil {
		t.Fatalf("DeleteCar: %v", err)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "StatusWithBody",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"error": "Car not found"}`)
			},
			check: func(t *testing.T, err error) {
				var se *StatusError
				if !errors.As(err, &se) {
					t.Fatalf("expected StatusError, got %v", err)
				}
				if se.StatusCode != http.StatusNotFound || se.Message != `{"error": "Car not found"}` {
					t.Errorf("unexpected status error: %+v", se)
				}
			},
		},
		{
			name: "StatusEmptyBody",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				if err == nil || err.Error() != "request failed: 500" {
					t.Errorf("Expected generic message, Got: %v", err)
				}
			},
		},
		{
			name: "MalformedBody",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, `{"carId":`)
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrDecode) {
					t.Errorf("Expected ErrDecode, Got: %v", err)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/cars/{carId}", tc.handler)
			c := newTestClient(t, r)
			_, err := c.GetCar(context.Background(), "x")
			tc.check(t, err)
		})
	}
}

func TestClientDeleteRequiresJSONUnlessNoContent(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/cars/ok", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"message":"Deleted"}`)
	})
	r.HandleFunc("/cars/bad", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `Deleted`)
	})
	c := newTestClient(t, r)

	if err := c.DeleteCar(context.Background(), "ok"); err != nil {
		t.Errorf("Expected nil, Got: %v", err)
	}
	if err := c.DeleteCar(context.Background(), "bad"); !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, Got: %v", err)
	}
}

func TestClientTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c := NewClient(base)
	if _, err := c.ListCars(context.Background()); !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport, Got: %v", err)
	}
}

func TestRequestUpload(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/cars/upload", func(w http.ResponseWriter, req *http.Request) {
		var in dal.UploadRequest
		json.NewDecoder(req.Body).Decode(&in)
		json.NewEncoder(w).Encode(dal.UploadTicket{
			UploadURL: "https://bucket/put/" + in.Filename,
			ObjectURL: "https://bucket/" + in.Filename,
		})
	}).Methods(http.MethodPost)
	c := newTestClient(t, r)

	ticket, err := c.RequestUpload(context.Background(), dal.UploadRequest{Filename: "1-car.jpg"})
	if err != nil {
		t.Fatalf("RequestUpload: %v", err)
	}
	if ticket.ObjectURL != "https://bucket/1-car.jpg" || ticket.UploadURL != "https://bucket/put/1-car.jpg" {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
}
