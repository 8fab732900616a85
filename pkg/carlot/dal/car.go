package dal

// Car defines a car listing as stored by the catalog API
type Car struct {
	CarID       string  `json:"carId"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        Number  `json:"year"`
	Price       Number  `json:"price"`
	Mileage     Number  `json:"mileage"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Image returns the image URL or an empty string when no upload has completed.
func (c Car) Image() string {
	if c.ImageURL == nil {
		return ""
	}
	return *c.ImageURL
}

// Title is brand and model joined by a space.
func (c Car) Title() string {
	return c.Brand + " " + c.Model
}

// CarPayload defines the body of create and update calls
type CarPayload struct {
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        Number  `json:"year"`
	Price       Number  `json:"price"`
	Mileage     Number  `json:"mileage"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// Payload returns the writable fields of c.
func (c Car) Payload() CarPayload {
	return CarPayload{
		Brand:       c.Brand,
		Model:       c.Model,
		Year:        c.Year,
		Price:       c.Price,
		Mileage:     c.Mileage,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

// UploadRequest defines the body sent to obtain a presigned upload URL
type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
}

// UploadTicket defines the presigned write URL and the public object URL
// that becomes valid once the write succeeds
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectURL string `json:"objectUrl"`
}

// StringPtr returns nil for an empty string and &s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
