package dal

import (
	"encoding/json"
	"testing"
)

func TestCarDecodesStringNumerics(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		year    int
		price   float64
		mileage float64
		image   string
	}{
		{
			name:    "Numbers",
			body:    `{"carId":"1","brand":"Honda","model":"Civic","year":2019,"price":18500,"mileage":42000}`,
			year:    2019,
			price:   18500,
			mileage: 42000,
		},
		{
			name:    "Strings",
			body:    `{"carId":"2","brand":"Ford","model":"F-150","year":"2021","price":"39999.5","mileage":"","imageUrl":"https://cdn/x.jpg"}`,
			year:    2021,
			price:   39999.5,
			mileage: 0,
			image:   "https://cdn/x.jpg",
		},
		{
			name: "Nulls",
			body: `{"carId":"3","brand":"Kia","model":"Soul","year":null,"price":null,"mileage":null,"imageUrl":null}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var car Car
			if err := json.Unmarshal([]byte(tc.body), &car); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if car.Year.Int() != tc.year || car.Price.Float() != tc.price || car.Mileage.Float() != tc.mileage {
				t.Errorf("Expected: %d/%v/%v, Got: %d/%v/%v", tc.year, tc.price, tc.mileage, car.Year.Int(), car.Price, car.Mileage)
			}
			if car.Image() != tc.image {
				t.Errorf("Expected image %q, Got %q", tc.image, car.Image())
			}
		})
	}
}

func TestNumberRejectsGarbage(t *testing.T) {
	var car Car
	if err := json.Unmarshal([]byte(`{"price":"cheap"}`), &car); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestPayloadEncodesNullImage(t *testing.T) {
	b, err := json.Marshal(CarPayload{Brand: "Honda", Model: "Civic", Year: 2019})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"brand":"Honda","model":"Civic","year":2019,"price":0,"mileage":0,"description":"","imageUrl":null}`
	if string(b) != want {
		t.Errorf("Expected: %s, Got: %s", want, b)
	}
}
