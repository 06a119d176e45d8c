package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agentdesk/internal/config"
	"agentdesk/internal/interfaces/httpserver/routes/auth"
	"agentdesk/internal/interfaces/httpserver/routes/v1/conversations"
	"agentdesk/internal/interfaces/httpserver/routes/v1/gpts"
	"agentdesk/internal/interfaces/httpserver/routes/v1/team"
)

type V1Route struct {
	auth          *auth.AuthRoute
	gpts          *gpts.GPTRoute
	conversations *conversations.ConversationRoute
	team          *team.TeamRoute
}

func NewV1Route(
	auth *auth.AuthRoute,
	gpts *gpts.GPTRoute,
	conversations *conversations.ConversationRoute,
	team *team.TeamRoute,
) *V1Route {
	return &V1Route{
		auth,
		gpts,
		conversations,
		team,
	}
}

// RegisterRouter mounts the endpoints that require a bearer token. The
// caller applies the auth middleware to the router group.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.auth.RegisterRouter(v1Router)
	v1Route.gpts.RegisterRouter(v1Router)
	v1Route.conversations.RegisterRouter(v1Router)
	v1Route.team.RegisterRouter(v1Router)
}

// RegisterPublicRouter mounts the endpoints that do not require authentication.
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)

	v1Route.auth.RegisterPublicRouter(v1Router)
	v1Route.team.RegisterPublicRouter(v1Router)
}

func GetVersion(c *gin.Context) {
	reloadedAt := ""
	if cfg := config.GetGlobal(); cfg != nil {
		reloadedAt = cfg.EnvReloadedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": reloadedAt,
	})
}

// GetHealthz godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API server.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Health status OK"
// @Router /v1/healthz [get]
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz godoc
// @Summary Readiness check endpoint
// @Description Returns the readiness status of the API server.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Readiness status ready"
// @Router /v1/readyz [get]
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
