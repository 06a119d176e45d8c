package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentdesk/internal/infrastructure/metrics"
	"agentdesk/internal/interfaces/httpserver/handlers/authhandler"
	"agentdesk/internal/interfaces/httpserver/middlewares"
	"agentdesk/internal/interfaces/httpserver/requests/authreq"
	"agentdesk/internal/interfaces/httpserver/responses"
	"agentdesk/internal/utils/platformerrors"
)

type AuthRoute struct {
	handler *authhandler.AuthHandler
}

func NewAuthRoute(handler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{handler: handler}
}

// RegisterPublicRouter mounts the endpoints that need no bearer token.
func (route *AuthRoute) RegisterPublicRouter(router gin.IRouter) {
	authGroup := router.Group("/auth")
	authGroup.POST("/register", route.register)
	authGroup.POST("/login", route.login)
}

// RegisterRouter mounts the profile endpoints behind authentication.
func (route *AuthRoute) RegisterRouter(router gin.IRouter) {
	authGroup := router.Group("/auth")
	authGroup.GET("/me", route.me)
	authGroup.PUT("/me", route.updateProfile)
	authGroup.PUT("/me/password", route.changePassword)
	authGroup.PUT("/me/api-key", route.setAPIKey)
	authGroup.DELETE("/me/api-key/:provider", route.removeAPIKey)
}

// register godoc
// @Summary Register an account
// @Description Create a member account and return a bearer token for it.
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authreq.RegisterRequest true "Registration payload"
// @Success 201 {object} userres.LoginResponse "Account created"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /v1/auth/register [post]
func (route *AuthRoute) register(reqCtx *gin.Context) {
	var req authreq.RegisterRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid registration payload", "79d3b83a-af1c-476a-b849-113de86c4f40")
		return
	}

	resp, err := route.handler.Register(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to register")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// login godoc
// @Summary Log in
// @Description Exchange email and password for a bearer token.
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authreq.LoginRequest true "Credentials"
// @Success 200 {object} userres.LoginResponse "Authenticated"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /v1/auth/login [post]
func (route *AuthRoute) login(reqCtx *gin.Context) {
	var req authreq.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid login payload", "9a94ebbf-e256-4292-be74-aef3704a1a03")
		return
	}

	resp, err := route.handler.Login(reqCtx.Request.Context(), req)
	if err != nil {
		metrics.RecordAuthAttempt("password", "failure")
		responses.HandleError(reqCtx, err, "Failed to log in")
		return
	}

	metrics.RecordAuthAttempt("password", "success")
	reqCtx.JSON(http.StatusOK, resp)
}

// me godoc
// @Summary Get own profile
// @Tags Auth API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} userres.UserResponse "Profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/auth/me [get]
func (route *AuthRoute) me(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "ff6233a9-f583-43ff-8b03-b635c7053779")
		return
	}

	resp, err := route.handler.Me(reqCtx.Request.Context(), principal)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to load profile")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// updateProfile godoc
// @Summary Update own profile
// @Tags Auth API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body authreq.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} userres.UserResponse "Updated profile"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/auth/me [put]
func (route *AuthRoute) updateProfile(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "67204a77-66c7-4de7-8d8c-240bdbade5b5")
		return
	}

	var req authreq.UpdateProfileRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid profile payload", "554b3ab3-389d-4d61-a42a-797b90fd3544")
		return
	}

	resp, err := route.handler.UpdateProfile(reqCtx.Request.Context(), principal, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update profile")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// changePassword godoc
// @Summary Change own password
// @Tags Auth API
// @Security BearerAuth
// @Accept json
// @Param request body authreq.ChangePasswordRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Current password incorrect"
// @Router /v1/auth/me/password [put]
func (route *AuthRoute) changePassword(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "f435b16c-e46b-4fd7-b6b2-8a43c1dccfb2")
		return
	}

	var req authreq.ChangePasswordRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid password payload", "b93c3998-c1a7-4e2f-b7e4-6f41c891f7b5")
		return
	}

	if err := route.handler.ChangePassword(reqCtx.Request.Context(), principal, req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to change password")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// setAPIKey godoc
// @Summary Store an upstream API key
// @Description Save the caller's model-provider API key. The key is encrypted at rest.
// @Tags Auth API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body authreq.SetAPIKeyRequest true "API key"
// @Success 200 {object} userres.UserResponse "Updated profile"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/auth/me/api-key [put]
func (route *AuthRoute) setAPIKey(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "41a93e32-48d2-48d7-ab99-6c4c7bf99d2b")
		return
	}

	var req authreq.SetAPIKeyRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid API key payload", "63ccfca1-58b0-442c-b42c-085e075e4abf")
		return
	}

	resp, err := route.handler.SetAPIKey(reqCtx.Request.Context(), principal, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to store API key")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// removeAPIKey godoc
// @Summary Remove a stored API key
// @Description Delete the caller's API key for the given model provider.
// @Tags Auth API
// @Security BearerAuth
// @Produce json
// @Param provider path string true "Model provider name"
// @Success 200 {object} userres.UserResponse "Updated profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/auth/me/api-key/{provider} [delete]
func (route *AuthRoute) removeAPIKey(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "5f4261cb-1537-4ed6-a5d3-9162d9dce8d2")
		return
	}

	resp, err := route.handler.RemoveAPIKey(reqCtx.Request.Context(), principal, reqCtx.Param("provider"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to remove API key")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
