// Command catalogd serves the sample product catalog over the content API
// endpoints, for local development and the end-to-end tests.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/catalog/fixture"
)

// shutdownTimeout bounds how long in-flight requests may take to drain
const shutdownTimeout = 5 * time.Second

func main() {
	var (
		addr    string
		prefix  string
		latency time.Duration
		failing bool
	)
	flag.StringVar(&addr, "addr", "127.0.0.1:8088", "Address to listen on")
	flag.StringVar(&prefix, "prefix", "/api", "Path prefix of the content API")
	flag.DurationVar(&latency, "latency", 0, "Artificial delay added to every response")
	flag.BoolVar(&failing, "failing", false, "Answer product requests with success=false")
	flag.Parse()

	srv := fixture.New(fixture.WithLatency(latency))
	srv.SetFailing(failing)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogd: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("catalogd listening on http://%s%s", ln.Addr(), prefix)
	if err := serve(ctx, ln, srv.Handler(prefix)); err != nil {
		log.Printf("catalogd: %v", err)
		stop()
		os.Exit(1)
	}
	log.Println("catalogd stopped")
}

// serve answers requests on ln until ctx is done, then shuts down and waits
// for in-flight requests to drain before returning
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	httpServer := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down catalogd...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
