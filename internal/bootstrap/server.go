package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/ratelimit"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerFile = "flightbooking.swagger.json"

type Snapshotter interface {
	Snapshot() registry.Snapshot
}

// Deps is everything the HTTP server serves.
type Deps struct {
	Registry  Snapshotter
	Store     repository.SnapshotStore
	Flights   flights.FlightUseCase
	Bookings  booking.BookingUseCase
	Customers customers.CustomerUseCase
	Fleet     fleet.FleetUseCase
	Verifier  *auth.Verifier
	Tokens    *auth.TokenManager
}

// Run starts the HTTP server (REST + swagger) and blocks until context is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, deps),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", cfg.HTTP.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		IdleTimeout:       cfg.RateLimit.IdleTimeout(),
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerDir != "" {
		r.StaticFile("/swagger/doc.json", filepath.Join(cfg.HTTP.SwaggerDir, swaggerFile))
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	authz := api.NewAuthorizer(deps.Tokens)

	v1 := r.Group("/api/v1")
	v1.Use(limiter.Middleware())
	api.NewAuthHandler(deps.Verifier, deps.Tokens).Register(v1)

	// Every successful write below is persisted before its response is sent.
	data := v1.Group("")
	if deps.Store != nil {
		data.Use(newPersister(deps.Registry, deps.Store).middleware())
	}
	api.NewAirlineHandler(deps.Fleet, authz).Register(data.Group("/airlines"))
	api.NewPlaneHandler(deps.Fleet, authz).Register(data.Group("/planes"))
	api.NewFlightHandler(deps.Flights, authz).Register(data.Group("/flights"))
	api.NewCustomerHandler(deps.Customers, authz).Register(data.Group("/customers"))
	api.NewBookingHandler(deps.Bookings, authz).Register(data.Group("/bookings"))

	return r
}

type persister struct {
	mu       sync.Mutex
	registry Snapshotter
	store    repository.SnapshotStore
}

func newPersister(reg Snapshotter, store repository.SnapshotStore) *persister {
	return &persister{registry: reg, store: store}
}

// middleware holds back the response of a write until its snapshot is
// stored. A failed save answers 500.
func (p *persister) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		orig := c.Writer
		buf := &bufferedWriter{ResponseWriter: orig, status: http.StatusOK}
		c.Writer = buf
		c.Next()
		c.Writer = orig

		if buf.status < http.StatusBadRequest {
			if err := p.persist(c.Request.Context()); err != nil {
				log.Printf("WARNING: failed to persist snapshot after %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "change applied but could not be saved: " + err.Error()})
				return
			}
		}
		buf.flush()
	}
}

// persist serializes writers so an older snapshot never overwrites a newer one.
func (p *persister) persist(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Store(ctx, p.registry.Snapshot())
}

// bufferedWriter keeps status and body in memory until flush.
type bufferedWriter struct {
	gin.ResponseWriter
	status  int
	written bool
	body    bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
		w.written = true
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() == 0 {
		w.ResponseWriter.WriteHeaderNow()
		return
	}
	if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
		log.Printf("WARNING: failed to write response: %v", err)
	}
}
