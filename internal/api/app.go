package api

import (
	"context"
	"errors"
	"fmt"
	"intranet/internal/ports"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// RunServerInterruptible runs the API server in the background in a Go routine and immediately returns a chan to
// the caller. The caller can then send a signal to the chan to gracefully shutdown the server.
// It's up to the caller to wait for in the main Go routine to keep the server running.
func RunServerInterruptible(port int, clientStore ports.ClientStore) (stop chan<- struct{}, done <-chan error) {
	h := NewHandler(clientStore, nil)
	return ServeInterruptible(fmt.Sprintf(":%d", port), h.Router())
}

// ServeInterruptible serves any handler with the same stop/done protocol as
// RunServerInterruptible. The form server uses it too.
func ServeInterruptible(addr string, handler http.Handler) (stop chan<- struct{}, done <-chan error) {
	srv := newServer(addr, handler)

	// one-shot channels for control & completion
	stopCh := make(chan struct{})
	doneCh := make(chan error, 1) // buffered so goroutines can finish without blocking

	go func() {
		log.Printf("listening on %s\n", srv.Addr)
		err := srv.ListenAndServe()
		// http.ErrServerClosed is returned on Shutdown; treat that as clean exit
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneCh <- err
			return
		}
		doneCh <- nil
	}()

	go func() {
		<-stopCh
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx) // graceful; in-flight requests get time to finish
	}()
	return stopCh, doneCh
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
