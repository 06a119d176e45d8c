package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"agentdesk/internal/config"
	"agentdesk/internal/infrastructure"
	"agentdesk/internal/infrastructure/auth"
	middleware "agentdesk/internal/interfaces/httpserver/middlewares"
	v1 "agentdesk/internal/interfaces/httpserver/routes/v1"

	_ "agentdesk/docs/swagger"
)

type HTTPServer struct {
	engine  *gin.Engine
	infra   *infrastructure.Infrastructure
	v1Route *v1.V1Route
	tokens  *auth.TokenIssuer
	config  *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	tokens *auth.TokenIssuer,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		tokens,
		cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.MetricsMiddleware())

	// Root health checks for orchestrators
	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/readyz", server.readyz)

	if cfg.EnableSwagger {
		server.bindSwagger()
	}
	return &server
}

func (s *HTTPServer) bindSwagger() {
	s.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// readyz reports ready only when the document store answers a ping.
func (s *HTTPServer) readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.infra.Mongo.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	public := httpServer.engine.Group("/")

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(middleware.AuthMiddleware(httpServer.tokens, httpServer.infra.Logger))

	httpServer.v1Route.RegisterPublicRouter(public)
	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
