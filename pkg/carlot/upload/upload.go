// Package upload performs the two-phase image upload: obtain a presigned
// write URL from the catalog API, then PUT the bytes straight to storage.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

const defaultContentType = "image/jpeg"

// ErrUploadFailed is returned when the transfer phase does not succeed.
var ErrUploadFailed = errors.New("image upload failed")

// Ticketer issues presigned upload URLs.
type Ticketer interface {
	RequestUpload(ctx context.Context, req dal.UploadRequest) (*dal.UploadTicket, error)
}

// File is a selected image.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader runs the handshake.
type Uploader struct {
	tickets    Ticketer
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// NewUploader returns an Uploader that requests tickets from t and transfers
// with hc.
func NewUploader(t Ticketer, hc *http.Client, logger *log.Logger) *Uploader {
	if hc == nil {
		hc = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Uploader{
		tickets:    t,
		httpClient: hc,
		logger:     logger,
		now:        time.Now,
	}
}

// Filename prefixes name with the upload time in milliseconds.
func Filename(now time.Time, name string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}

// Upload sends f and returns the public object URL. The object URL is only
// returned when both phases succeed. A nil file yields "" and no error.
func (u *Uploader) Upload(ctx context.Context, f *File) (string, error) {
	if f == nil {
		return "", nil
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(f.Name))
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	filename := Filename(u.now(), f.Name)
	ticket, err := u.tickets.RequestUpload(ctx, dal.UploadRequest{
		Filename:    filename,
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("request upload url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ticket.UploadURL, f.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	if f.Size > 0 {
		req.ContentLength = f.Size
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.logger.Error("image transfer failed", "file", filename, "err", err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		u.logger.Error("image transfer rejected", "file", filename, "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	u.logger.Info("image uploaded", "file", filename, "object", ticket.ObjectURL)
	return ticket.ObjectURL, nil
}
