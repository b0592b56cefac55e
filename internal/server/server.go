package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/perfkit/eventforest/internal/api/http"
	"github.com/perfkit/eventforest/internal/api/middleware"
	"github.com/perfkit/eventforest/internal/forest"
	"github.com/perfkit/eventforest/internal/infrastructure/config"
	"github.com/perfkit/eventforest/internal/infrastructure/logging"
	"github.com/perfkit/eventforest/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	rules   *forest.RuleSet
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	rules, err := forest.LoadRuleSet(cfg.Engine.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	logger.Info("Rule set loaded",
		zap.String("path", cfg.Engine.RulesPath),
		zap.Int("rules", len(rules.Rules)),
		zap.Int("root_kinds", len(rules.RootKinds)))

	metrics := monitoring.NewMetrics()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handler := apihttp.NewHandler(logger, metrics, rules, cfg.Engine.MaxBodyBytes)
	router.POST("/v1/traces/group", handler.Group)
	router.GET("/v1/rules", handler.Rules)
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		router:  router,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		rules:   rules,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Starting grouping service", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close flushes the logger
func (s *Server) Close() error {
	return s.logger.Sync()
}
