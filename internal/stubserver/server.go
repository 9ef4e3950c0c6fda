// Package stubserver is an in-memory implementation of the inventory
// service REST contract. It backs local development and the end-to-end tests
// of the API clients.
package stubserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/jwtutil"
	"github.com/suteetoe/stockmobile/pkg/logger"
	"github.com/suteetoe/stockmobile/prometheus"
)

// Options configures the stub server
type Options struct {
	Signer  *jwtutil.Signer
	Store   *Store
	Logger  *zap.Logger
	Metrics *prometheus.ServerMetrics
	// MetricsHandler, when set, is served on /metrics
	MetricsHandler http.Handler
}

// Server wires the echo routes to the in-memory store
type Server struct {
	echo    *echo.Echo
	store   *Store
	signer  *jwtutil.Signer
	logger  *zap.Logger
	metrics *prometheus.ServerMetrics
}

func New(opts Options) *Server {
	store := opts.Store
	if store == nil {
		store = NewStore()
	}

	s := &Server{
		echo:    echo.New(),
		store:   store,
		signer:  opts.Signer,
		logger:  logger.OrNop(opts.Logger),
		metrics: opts.Metrics,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.routes()
	if opts.MetricsHandler != nil {
		s.echo.GET("/metrics", echo.WrapHandler(opts.MetricsHandler))
	}
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.Use(middleware.Recover())
	e.Use(s.requestID)
	e.Use(s.metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := e.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)

	products := e.Group("/produtos", s.authenticate)
	products.POST("/save", s.createProduct)
	products.GET("/listAll", s.listProducts)
	products.GET("/findByNameOrCategory", s.findProducts)
	products.GET("/findById/:id", s.getProduct)
	products.PUT("/atualizar/:id", s.updateProduct)
	products.DELETE("/delete/:id", s.deleteProduct)
	products.POST("/uploadImage", s.uploadImage)

	images := e.Group("/api/images", s.authenticate)
	images.GET("/:name", s.getImage)
}

// Store exposes the backing store, mainly for seeding in tests
func (s *Server) Store() *Store {
	return s.store
}

// ServeHTTP makes the server usable with httptest and http.Server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on address until the server fails
func (s *Server) Start(address string) error {
	s.logger.Info("Starting stub server", zap.String("address", address))
	return s.echo.Start(address)
}
