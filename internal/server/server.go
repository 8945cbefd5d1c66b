package server

import (
	nethttp "net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/socraticlabs/council/backend/internal/config"
	"github.com/socraticlabs/council/backend/internal/events"
	"github.com/socraticlabs/council/backend/internal/http"
	"github.com/socraticlabs/council/backend/internal/logging"
	"github.com/socraticlabs/council/backend/internal/middleware"
	"github.com/socraticlabs/council/backend/internal/monitoring"
	"github.com/socraticlabs/council/backend/internal/providers/dialog"
	"github.com/socraticlabs/council/backend/internal/providers/filesystem"
	"github.com/socraticlabs/council/backend/internal/providers/store"
	"github.com/socraticlabs/council/backend/internal/relay"
	"github.com/socraticlabs/council/backend/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	hub      *events.Hub
	registry *service.Registry
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, log *logging.Logger) (*Server, error) {
	if !cfg.Server.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	promReg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(promReg)

	hub := events.NewHub(log)

	// The relay sees the hub through the generic sink interface; the
	// wrapper keeps the chunk counter without touching relay code.
	sink := events.SinkFunc(func(event string, payload interface{}) error {
		if event == relay.EventStreamChunk {
			metrics.RelayChunks.Inc()
		}
		return hub.Emit(event, payload)
	})

	rly := relay.NewWithTimeout(log, sink, cfg.Relay.DefaultTimeout)

	registry := service.NewRegistry()
	registerPlugins(registry, cfg, sink, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := http.NewHandlers(rly, registry, hub, metrics, log)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Invoke surface
	router.POST("/invoke/http_request", handlers.HTTPRequest)
	router.POST("/invoke/http_request_stream", handlers.HTTPRequestStream)

	// Plugin surface
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Event bus
	router.GET("/stream", func(c *gin.Context) {
		metrics.WSConnections.Inc()
		defer metrics.WSConnections.Dec()
		hub.HandleConnection(c)
	})

	// Observability
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	// Debug inspector, development builds only
	if cfg.Server.Development {
		registerInspector(router)
		log.Info("debug inspector enabled at /debug/pprof")
	}

	return &Server{
		router:   router,
		hub:      hub,
		registry: registry,
		metrics:  metrics,
		log:      log.Named("server"),
	}, nil
}

// Run starts the server
func (s *Server) Run(addr string) error {
	s.log.Info("starting backend", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the router for tests.
func (s *Server) Router() nethttp.Handler {
	return s.router
}

// Close cleans up resources
func (s *Server) Close() error {
	return s.log.Sync()
}

func registerPlugins(registry *service.Registry, cfg *config.Config, sink events.Sink, log *logging.Logger) {
	plugins := []service.Provider{
		store.New(cfg.Storage.DataDir),
		filesystem.New(cfg.Storage.DataDir),
		dialog.New(sink),
	}

	for _, plugin := range plugins {
		def := plugin.Definition()
		if err := registry.Register(plugin); err != nil {
			log.Warn("failed to register plugin",
				zap.String("plugin", def.ID), zap.Error(err))
			continue
		}
		log.Info("registered plugin", zap.String("plugin", def.ID))
	}
}

func registerInspector(router *gin.Engine) {
	group := router.Group("/debug/pprof")
	group.GET("/", gin.WrapF(pprof.Index))
	group.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	group.GET("/profile", gin.WrapF(pprof.Profile))
	group.GET("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/trace", gin.WrapF(pprof.Trace))
	group.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	group.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
	group.GET("/block", gin.WrapH(pprof.Handler("block")))
	group.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
}
