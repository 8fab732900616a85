package server

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/filter"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/page"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/upload"
)

const (
	maxUploadMemory = 32 << 20

	loadFailedMessage = "Unable to load inventory right now."
	missingIDMessage  = "Missing car id"
)

// Health reports liveness.
func (h *httpServer) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// GetStorefront defines a GET handler rendering the filtered public inventory
func (h *httpServer) GetStorefront(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()

	price, err := validatePrice(w, vars)
	if err != nil {
		h.log.Warn("price validation failed", "err", err)
		return
	}

	body, err := validateBody(w, vars)
	if err != nil {
		h.log.Warn("body validation failed", "err", err)
		return
	}

	query := filter.Query{
		Search: vars.Get("search"),
		Brand:  orAll(vars.Get("brand")),
		Price:  price,
		Body:   body,
	}

	store := page.NewStorefront(h.api, h.log)
	flash := flashFrom(r)
	if err := store.Load(r.Context()); err != nil {
		flash = &FlashMessage{Type: "error", Message: loadFailedMessage}
	}
	if err := store.ApplyQuery(r.Context(), query); err != nil {
		h.log.Warn("storefront filter aborted", "err", err)
		return
	}

	h.renderPage(w, r, http.StatusOK, "storefront.html", PageData{
		Title: "Inventory",
		Page:  "storefront",
		Flash: flash,
		Data:  store.View(),
	})
}

// Reserve defines a POST handler acknowledging a viewing reservation
func (h *httpServer) Reserve(w http.ResponseWriter, r *http.Request) {
	store := page.NewStorefront(h.api, h.log)
	if err := store.Load(r.Context()); err != nil {
		redirectError(w, r, "/", err)
		return
	}
	msg, err := store.Reserve(mux.Vars(r)["carId"])
	if err != nil {
		redirectError(w, r, "/", err)
		return
	}
	redirectNotice(w, r, "/", msg)
}

// TestDrive defines a POST handler for test drive requests
func (h *httpServer) TestDrive(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	redirectNotice(w, r, "/", page.NewStorefront(h.api, h.log).RequestTestDrive(form))
}

// Contact defines a POST handler for contact messages
func (h *httpServer) Contact(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	redirectNotice(w, r, "/", page.NewStorefront(h.api, h.log).SendContact(form))
}

// GetInventory defines a GET handler for the admin listing
func (h *httpServer) GetInventory(w http.ResponseWriter, r *http.Request) {
	inv := page.NewInventory(h.api, h.log)
	flash := flashFrom(r)
	if err := inv.Load(r.Context()); err != nil {
		h.log.Error("inventory load failed", "err", err)
		flash = &FlashMessage{Type: "error", Message: err.Error()}
	}
	h.renderPage(w, r, http.StatusOK, "inventory.html", PageData{
		Title: "Inventory",
		Page:  "list",
		Flash: flash,
		Data:  inv.View(),
	})
}

// DeleteFromInventory defines a POST handler deleting a car from the listing
func (h *httpServer) DeleteFromInventory(w http.ResponseWriter, r *http.Request) {
	inv := page.NewInventory(h.api, h.log)
	if err := inv.Delete(r.Context(), mux.Vars(r)["carId"]); err != nil {
		redirectError(w, r, "/admin", err)
		return
	}
	redirectNotice(w, r, "/admin", "Car deleted")
}

type formView struct {
	CarID   string
	Action  string
	Preview string
	Form    page.CarForm
}

// GetAddForm defines a GET handler for the create form
func (h *httpServer) GetAddForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "form.html", PageData{
		Title: "Add car",
		Page:  "add",
		Flash: flashFrom(r),
		Data:  formView{Action: "/admin/add"},
	})
}

// PostAddForm defines a POST handler uploading the image, then creating the car
func (h *httpServer) PostAddForm(w http.ResponseWriter, r *http.Request) {
	form, file, err := carForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.close()
	}

	add := page.NewAddCar(h.api, h.uploader, h.log)
	renderError := func(err error) {
		h.log.Error("create car failed", "err", err)
		h.renderPage(w, r, statusFor(err), "form.html", PageData{
			Title: "Add car",
			Page:  "add",
			Flash: &FlashMessage{Type: "error", Message: err.Error()},
			Data:  formView{Action: "/admin/add", Form: form},
		})
	}

	if err := add.SelectImage(r.Context(), file.upload()); err != nil {
		renderError(err)
		return
	}
	if _, err := add.Submit(r.Context(), form); err != nil {
		renderError(err)
		return
	}
	redirectNotice(w, r, "/admin/add", "Car created")
}

// GetDetails defines a GET handler for a single car
func (h *httpServer) GetDetails(w http.ResponseWriter, r *http.Request) {
	details := page.NewDetails(h.api, h.log)
	if err := details.Open(r.Context(), r.URL.Query().Get("id")); err != nil {
		redirectError(w, r, "/admin", err)
		return
	}
	view, err := details.View()
	if err != nil {
		redirectError(w, r, "/admin", err)
		return
	}
	h.renderPage(w, r, http.StatusOK, "details.html", PageData{
		Title: view.Title,
		Page:  "details",
		Flash: flashFrom(r),
		Data:  view,
	})
}

// DeleteFromDetails defines a POST handler deleting the car shown on the details page
func (h *httpServer) DeleteFromDetails(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	details := page.NewDetails(h.api, h.log)
	if err := details.Open(r.Context(), id); err != nil {
		redirectError(w, r, "/admin", err)
		return
	}
	if err := details.Delete(r.Context()); err != nil {
		redirectError(w, r, "/admin/details?id="+url.QueryEscape(id), err)
		return
	}
	redirectNotice(w, r, "/admin", "Car deleted")
}

// GetEditForm defines a GET handler for the prefilled edit form
func (h *httpServer) GetEditForm(w http.ResponseWriter, r *http.Request) {
	edit := page.NewEditCar(h.api, h.uploader, h.log)
	if err := edit.Open(r.Context(), r.URL.Query().Get("id")); err != nil {
		redirectError(w, r, "/admin", err)
		return
	}
	h.renderPage(w, r, http.StatusOK, "form.html", PageData{
		Title: "Edit car",
		Page:  "edit",
		Flash: flashFrom(r),
		Data:  editView(edit, edit.Form()),
	})
}

// PostEditForm defines a POST handler that uploads a replacement image, if any,
// then updates the car
func (h *httpServer) PostEditForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	edit := page.NewEditCar(h.api, h.uploader, h.log)
	if err := edit.Open(r.Context(), id); err != nil {
		redirectError(w, r, "/admin", err)
		return
	}

	form, file, err := carForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.close()
	}

	renderError := func(err error) {
		h.log.Error("update car failed", "carId", id, "err", err)
		h.renderPage(w, r, statusFor(err), "form.html", PageData{
			Title: "Edit car",
			Page:  "edit",
			Flash: &FlashMessage{Type: "error", Message: err.Error()},
			Data:  editView(edit, form),
		})
	}

	if err := edit.SelectImage(r.Context(), file.upload()); err != nil {
		renderError(err)
		return
	}
	if _, err := edit.Submit(r.Context(), form); err != nil {
		renderError(err)
		return
	}
	redirectNotice(w, r, "/admin/details?id="+url.QueryEscape(id), "Car updated")
}

func editView(edit *page.EditCar, form page.CarForm) formView {
	return formView{
		CarID:   edit.CarID(),
		Action:  "/admin/edit?id=" + url.QueryEscape(edit.CarID()),
		Preview: edit.Preview(),
		Form:    form,
	}
}

func (h *httpServer) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data PageData) {
	if err := h.pages.render(w, status, name, data); err != nil {
		h.log.Error("render failed", "page", name, "path", r.URL.Path, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func validatePrice(w http.ResponseWriter, vars url.Values) (string, error) {
	price := orAll(vars.Get("price"))
	if price == filter.All {
		return price, nil
	}
	ceiling, err := strconv.ParseFloat(price, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return "", err
	}
	if math.IsNaN(ceiling) || math.IsInf(ceiling, 0) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(fmt.Sprintf("price must be a finite number: %s", price)))
		return "", errors.New("price must be a finite number")
	}
	if ceiling < 0 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(fmt.Sprintf("price must be a positive number: %v", ceiling)))
		return "", errors.New("price must be a positive number")
	}
	return price, nil
}

func validateBody(w http.ResponseWriter, vars url.Values) (string, error) {
	body := orAll(vars.Get("body"))
	if body == filter.All {
		return body, nil
	}
	if _, ok := filter.ParseBodyStyle(body); !ok {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(fmt.Sprintf("unknown body style: %s", body)))
		return "", fmt.Errorf("unknown body style %q", body)
	}
	return body, nil
}

func orAll(v string) string {
	if v == "" {
		return filter.All
	}
	return v
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, page.ErrInvalidField):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func redirectNotice(w http.ResponseWriter, r *http.Request, to, msg string) {
	http.Redirect(w, r, withParam(to, "notice", msg), http.StatusSeeOther)
}

func redirectError(w http.ResponseWriter, r *http.Request, to string, err error) {
	msg := err.Error()
	if errors.Is(err, page.ErrMissingCarID) {
		msg = missingIDMessage
	}
	http.Redirect(w, r, withParam(to, "error", msg), http.StatusSeeOther)
}

func withParam(to, key, value string) string {
	u, err := url.Parse(to)
	if err != nil {
		return to
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

func formValues(r *http.Request) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		values[k] = r.PostForm.Get(k)
	}
	return values, nil
}

type formFile struct {
	file   multipart.File
	header *multipart.FileHeader
}

func (f *formFile) upload() *upload.File {
	if f == nil {
		return nil
	}
	contentType := f.header.Header.Get("Content-Type")
	if contentType == "application/octet-stream" {
		contentType = ""
	}
	return &upload.File{
		Name:        f.header.Filename,
		ContentType: contentType,
		Size:        f.header.Size,
		Body:        f.file,
	}
}

func (f *formFile) close() {
	f.file.Close()
}

// carForm reads the add/edit form and the optional image part.
func carForm(r *http.Request) (page.CarForm, *formFile, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return page.CarForm{}, nil, err
	}
	form := page.CarForm{
		Brand:       r.FormValue("brand"),
		Model:       r.FormValue("model"),
		Year:        r.FormValue("year"),
		Price:       r.FormValue("price"),
		Mileage:     r.FormValue("mileage"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form, nil, nil
	case err != nil:
		return form, nil, err
	}
	if header.Filename == "" || header.Size == 0 {
		file.Close()
		return form, nil, nil
	}
	return form, &formFile{file: file, header: header}, nil
}
