package httpserver

import (
	"net/http"
	"time"
)

// WriteTimeout leaves room for the simulated submit latency on top of
// ordinary request handling.
const WriteTimeout = 30 * time.Second

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
}
