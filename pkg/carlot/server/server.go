// Package server serves the storefront and the admin console as HTML pages
// backed by the page controllers.
package server

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/page"
)

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(addr string, api page.Catalog, uploader page.Uploader, logger *log.Logger) (*http.Server, error) {
	handler, err := NewHandler(api, uploader, logger)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}, nil
}

// NewHandler returns the router with per-route logging, panic recovery and
// tracing. Static files are served from the embedded assets directory.
func NewHandler(api page.Catalog, uploader page.Uploader, logger *log.Logger) (http.Handler, error) {
	server, err := newHTTPServer(api, uploader, logger)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(RequestLogger(server.log))
	r.NotFoundHandler = RequestLogger(server.log)(http.NotFoundHandler())

	r.HandleFunc("/healthz", server.Health).Methods(http.MethodGet)
	r.PathPrefix("/assets/").Handler(http.FileServer(http.FS(assetsFS))).Methods(http.MethodGet)

	r.HandleFunc("/", server.GetStorefront).Methods(http.MethodGet)
	r.HandleFunc("/reserve/{carId}", server.Reserve).Methods(http.MethodPost)
	r.HandleFunc("/test-drive", server.TestDrive).Methods(http.MethodPost)
	r.HandleFunc("/contact", server.Contact).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("", server.GetInventory).Methods(http.MethodGet)
	admin.HandleFunc("/", server.GetInventory).Methods(http.MethodGet)
	admin.HandleFunc("/cars/{carId}/delete", server.DeleteFromInventory).Methods(http.MethodPost)
	admin.HandleFunc("/add", server.GetAddForm).Methods(http.MethodGet)
	admin.HandleFunc("/add", server.PostAddForm).Methods(http.MethodPost)
	admin.HandleFunc("/details", server.GetDetails).Methods(http.MethodGet)
	admin.HandleFunc("/details/delete", server.DeleteFromDetails).Methods(http.MethodPost)
	admin.HandleFunc("/edit", server.GetEditForm).Methods(http.MethodGet)
	admin.HandleFunc("/edit", server.PostEditForm).Methods(http.MethodPost)

	return Chain(r,
		Recover(server.log),
		OTel("carlot"),
	), nil
}

type httpServer struct {
	log      *log.Logger
	api      page.Catalog
	uploader page.Uploader
	pages    *renderer
}

func newHTTPServer(api page.Catalog, uploader page.Uploader, logger *log.Logger) (*httpServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &httpServer{
		log:      logger,
		api:      api,
		uploader: uploader,
		pages:    pages,
	}, nil
}
