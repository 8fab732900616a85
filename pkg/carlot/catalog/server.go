// Package catalog serves an in-memory catalog API with the same wire contract
// as the remote service, including presigned image uploads.
package catalog

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// NewHTTPServer returns a new HTTP server for the catalog API. Presigned URLs
// are issued under publicURL; when empty the request host is used.
func NewHTTPServer(addr, publicURL string, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: NewHandler(publicURL, logger),
	}
}

// NewHandler returns the catalog API router.
func NewHandler(publicURL string, logger *log.Logger, seed ...dal.Car) http.Handler {
	server := newHTTPServer(publicURL, logger)
	for _, car := range seed {
		server.store.put(car)
	}
	r := mux.NewRouter()
	r.HandleFunc("/cars", server.ListCars).Methods(http.MethodGet)
	r.HandleFunc("/cars", server.CreateCar).Methods(http.MethodPost)
	r.HandleFunc("/cars/upload", server.IssueUpload).Methods(http.MethodPost)
	r.HandleFunc("/cars/{carId}", server.GetCar).Methods(http.MethodGet)
	r.HandleFunc("/cars/{carId}", server.UpdateCar).Methods(http.MethodPut)
	r.HandleFunc("/cars/{carId}", server.DeleteCar).Methods(http.MethodDelete)
	r.HandleFunc("/uploads/{key}", server.ReceiveObject).Methods(http.MethodPut)
	r.HandleFunc("/objects/{key}", server.ServeObject).Methods(http.MethodGet)
	return r
}

type httpServer struct {
	log       *log.Logger
	store     *store
	publicURL string
}

func newHTTPServer(publicURL string, logger *log.Logger) *httpServer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &httpServer{
		log:       logger.WithPrefix("catalog"),
		store:     newStore(),
		publicURL: publicURL,
	}
}

func (h *httpServer) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	return "http://" + r.Host
}
