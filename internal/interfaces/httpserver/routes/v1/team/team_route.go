package team

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentdesk/internal/interfaces/httpserver/handlers/invitationhandler"
	"agentdesk/internal/interfaces/httpserver/handlers/teamhandler"
	"agentdesk/internal/interfaces/httpserver/middlewares"
	"agentdesk/internal/interfaces/httpserver/requests"
	"agentdesk/internal/interfaces/httpserver/requests/teamreq"
	"agentdesk/internal/interfaces/httpserver/responses"
	"agentdesk/internal/utils/platformerrors"
)

type TeamRoute struct {
	handler           *teamhandler.TeamHandler
	invitationHandler *invitationhandler.InvitationHandler
}

func NewTeamRoute(
	handler *teamhandler.TeamHandler,
	invitationHandler *invitationhandler.InvitationHandler,
) *TeamRoute {
	return &TeamRoute{
		handler:           handler,
		invitationHandler: invitationHandler,
	}
}

// RegisterRouter mounts the member and invitation management endpoints.
// Everything here requires the admin role.
func (route *TeamRoute) RegisterRouter(router gin.IRouter) {
	teamGroup := router.Group("/team", middlewares.RequireAdmin())
	teamGroup.GET("/members", route.listMembers)
	teamGroup.GET("/members/:user_id", route.getMember)
	teamGroup.PUT("/members/:user_id/role", route.changeRole)
	teamGroup.DELETE("/members/:user_id", route.deactivateMember)

	teamGroup.GET("/invitations", route.listInvitations)
	teamGroup.POST("/invitations", route.invite)
	teamGroup.DELETE("/invitations/:invitation_id", route.revokeInvitation)
}

// RegisterPublicRouter mounts the unauthenticated invitation redemption endpoint.
func (route *TeamRoute) RegisterPublicRouter(router gin.IRouter) {
	router.POST("/invitations/accept", route.acceptInvitation)
}

// listMembers godoc
// @Summary List workspace members
// @Tags Team API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of items to return"
// @Param offset query int false "Number of items to skip"
// @Success 200 {object} userres.UserListResponse "Members"
// @Failure 403 {object} responses.ErrorResponse "Admin role required"
// @Router /v1/team/members [get]
func (route *TeamRoute) listMembers(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid pagination")
		return
	}

	resp, err := route.handler.List(reqCtx.Request.Context(), pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list members")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// getMember godoc
// @Summary Get a workspace member
// @Tags Team API
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "Member ID"
// @Success 200 {object} userres.UserResponse "Member"
// @Failure 404 {object} responses.ErrorResponse "Member not found"
// @Router /v1/team/members/{user_id} [get]
func (route *TeamRoute) getMember(reqCtx *gin.Context) {
	resp, err := route.handler.Get(reqCtx.Request.Context(), reqCtx.Param("user_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get member")
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// changeRole godoc
// @Summary Change a member's role
// @Tags Team API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user_id path string true "Member ID"
// @Param request body teamreq.ChangeRoleRequest true "New role"
// @Success 200 {object} userres.UserResponse "Updated member"
// @Failure 400 {object} responses.ErrorResponse "Invalid role or self-demotion"
// @Failure 404 {object} responses.ErrorResponse "Member not found"
// @Router /v1/team/members/{user_id}/role [put]
func (route *TeamRoute) changeRole(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "03cf825e-ec5a-4d43-b69c-20cf3dd269f2")
		return
	}

	var req teamreq.ChangeRoleRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid role payload", "2c6753c8-a504-4f6f-b06f-5d607b6a7ed2")
		return
	}

	resp, err := route.handler.ChangeRole(reqCtx.Request.Context(), principal, reqCtx.Param("user_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to change role")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deactivateMember godoc
// @Summary Deactivate a workspace member
// @Tags Team API
// @Security BearerAuth
// @Param user_id path string true "Member ID"
// @Success 204 "Member deactivated"
// @Failure 400 {object} responses.ErrorResponse "Self-removal rejected"
// @Failure 404 {object} responses.ErrorResponse "Member not found"
// @Router /v1/team/members/{user_id} [delete]
func (route *TeamRoute) deactivateMember(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "5d180eb4-c6e6-4c91-95bc-3335085b6539")
		return
	}

	if err := route.handler.Deactivate(reqCtx.Request.Context(), principal, reqCtx.Param("user_id")); err != nil {
		responses.HandleError(reqCtx, err, "Failed to deactivate member")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// invite godoc
// @Summary Invite a member
// @Description Create an invitation and return its one-time token. The token is never shown again.
// @Tags Team API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body teamreq.InviteRequest true "Invitee email and role"
// @Success 201 {object} invres.InvitationCreatedResponse "Invitation with one-time token"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 409 {object} responses.ErrorResponse "Already a member or already invited"
// @Router /v1/team/invitations [post]
func (route *TeamRoute) invite(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "94273c25-e92d-4f68-981f-afc5928b66fc")
		return
	}

	var req teamreq.InviteRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid invitation payload", "318d11a1-76a5-4be6-93c4-3edd6d515912")
		return
	}

	resp, err := route.invitationHandler.Invite(reqCtx.Request.Context(), principal, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create invitation")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// listInvitations godoc
// @Summary List invitations
// @Tags Team API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of items to return"
// @Param offset query int false "Number of items to skip"
// @Success 200 {object} invres.InvitationListResponse "Invitations"
// @Failure 403 {object} responses.ErrorResponse "Admin role required"
// @Router /v1/team/invitations [get]
func (route *TeamRoute) listInvitations(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid pagination")
		return
	}

	resp, err := route.invitationHandler.List(reqCtx.Request.Context(), pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list invitations")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// revokeInvitation godoc
// @Summary Revoke a pending invitation
// @Tags Team API
// @Security BearerAuth
// @Param invitation_id path string true "Invitation ID"
// @Success 204 "Invitation revoked"
// @Failure 404 {object} responses.ErrorResponse "Invitation not found"
// @Failure 409 {object} responses.ErrorResponse "Invitation no longer pending"
// @Router /v1/team/invitations/{invitation_id} [delete]
func (route *TeamRoute) revokeInvitation(reqCtx *gin.Context) {
	if err := route.invitationHandler.Revoke(reqCtx.Request.Context(), reqCtx.Param("invitation_id")); err != nil {
		responses.HandleError(reqCtx, err, "Failed to revoke invitation")
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// acceptInvitation godoc
// @Summary Accept an invitation
// @Description Redeem a one-time invitation token and create the member account.
// @Tags Team API
// @Accept json
// @Produce json
// @Param request body teamreq.AcceptInvitationRequest true "Token and account details"
// @Success 201 {object} userres.UserResponse "Account created"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 404 {object} responses.ErrorResponse "Invitation invalid or expired"
// @Router /v1/invitations/accept [post]
func (route *TeamRoute) acceptInvitation(reqCtx *gin.Context) {
	var req teamreq.AcceptInvitationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid acceptance payload", "400a002b-27f6-43ae-bfae-621487618f9f")
		return
	}

	resp, err := route.invitationHandler.Accept(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to accept invitation")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}
