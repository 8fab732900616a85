package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

const defaultContentType = "image/jpeg"

// ListCars defines a GET handler returning every car
func (h *httpServer) ListCars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.list())
}

// GetCar defines a GET handler for a single car
func (h *httpServer) GetCar(w http.ResponseWriter, r *http.Request) {
	car, ok := h.store.get(mux.Vars(r)["carId"])
	if !ok {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	writeJSON(w, http.StatusOK, car)
}

// CreateCar defines a POST handler that assigns an id and stores the car
func (h *httpServer) CreateCar(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		h.log.Warn("create decode failed", "err", err)
		return
	}

	var car dal.Car
	if err := applyFields(w, &car, fields); err != nil {
		h.log.Warn("create validation failed", "err", err)
		return
	}
	if car.Brand == "" || car.Model == "" {
		writeError(w, http.StatusBadRequest, "brand and model are required")
		return
	}

	now := timestamp()
	car.CarID = uuid.NewString()
	car.CreatedAt = now
	car.UpdatedAt = now
	h.store.put(car)

	h.log.Info("car created", "carId", car.CarID, "brand", car.Brand, "model", car.Model)
	writeJSON(w, http.StatusCreated, car)
}

// UpdateCar defines a PUT handler that sets only the fields present in the body
func (h *httpServer) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["carId"]
	fields, err := decodeFields(w, r)
	if err != nil {
		h.log.Warn("update decode failed", "err", err)
		return
	}

	var patch dal.Car
	if err := applyFields(w, &patch, fields); err != nil {
		h.log.Warn("update validation failed", "err", err)
		return
	}

	car, ok := h.store.update(id, func(c *dal.Car) {
		if _, ok := fields["brand"]; ok {
			c.Brand = patch.Brand
		}
		if _, ok := fields["model"]; ok {
			c.Model = patch.Model
		}
		if _, ok := fields["year"]; ok {
			c.Year = patch.Year
		}
		if _, ok := fields["price"]; ok {
			c.Price = patch.Price
		}
		if _, ok := fields["mileage"]; ok {
			c.Mileage = patch.Mileage
		}
		if _, ok := fields["description"]; ok {
			c.Description = patch.Description
		}
		if _, ok := fields["imageUrl"]; ok {
			c.ImageURL = patch.ImageURL
		}
		c.UpdatedAt = timestamp()
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	}

	h.log.Info("car updated", "carId", id)
	writeJSON(w, http.StatusOK, car)
}

// DeleteCar defines a DELETE handler
func (h *httpServer) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["carId"]
	if !h.store.delete(id) {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	h.log.Info("car deleted", "carId", id)
	w.WriteHeader(http.StatusNoContent)
}

// IssueUpload defines a POST handler returning a one-shot upload URL
func (h *httpServer) IssueUpload(w http.ResponseWriter, r *http.Request) {
	var req dal.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ext := strings.TrimPrefix(path.Ext(req.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	key := uuid.NewString() + "." + ext
	token := uuid.NewString()
	h.store.expect(key, pendingUpload{token: token, contentType: contentType})

	base := h.baseURL(r)
	writeJSON(w, http.StatusOK, dal.UploadTicket{
		UploadURL: fmt.Sprintf("%s/uploads/%s?token=%s", base, key, token),
		ObjectURL: fmt.Sprintf("%s/objects/%s", base, key),
	})
}

// ReceiveObject defines the PUT target of a presigned upload URL
func (h *httpServer) ReceiveObject(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.store.accept(key, r.URL.Query().Get("token"), r.Header.Get("Content-Type"), data) {
		h.log.Warn("upload signature mismatch", "key", key)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("SignatureDoesNotMatch"))
		return
	}
	h.log.Info("object stored", "key", key, "bytes", len(data))
	w.WriteHeader(http.StatusOK)
}

// ServeObject defines a GET handler for uploaded objects
func (h *httpServer) ServeObject(w http.ResponseWriter, r *http.Request) {
	o, ok := h.store.object(mux.Vars(r)["key"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", o.contentType)
	w.Write(o.data)
}

func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, err
	}
	return fields, nil
}

// applyFields decodes the known fields into car, validating numerics.
func applyFields(w http.ResponseWriter, car *dal.Car, fields map[string]json.RawMessage) error {
	for name, dst := range map[string]any{
		"brand":       &car.Brand,
		"model":       &car.Model,
		"description": &car.Description,
		"imageUrl":    &car.ImageURL,
	} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
			return err
		}
	}

	var err error
	if car.Year, err = validateNonNegative(w, fields, "year"); err != nil {
		return err
	}
	if car.Price, err = validateNonNegative(w, fields, "price"); err != nil {
		return err
	}
	if car.Mileage, err = validateNonNegative(w, fields, "mileage"); err != nil {
		return err
	}
	if car.ImageURL != nil && *car.ImageURL == "" {
		car.ImageURL = nil
	}
	return nil
}

func validateNonNegative(w http.ResponseWriter, fields map[string]json.RawMessage, name string) (dal.Number, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, nil
	}
	var n dal.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, err
	}
	if n < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a positive number: %v", name, n.Float()))
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.Write([]byte(err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
