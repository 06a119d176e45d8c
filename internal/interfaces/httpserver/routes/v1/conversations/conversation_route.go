package conversations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentdesk/internal/interfaces/httpserver/handlers/conversationhandler"
	"agentdesk/internal/interfaces/httpserver/middlewares"
	"agentdesk/internal/interfaces/httpserver/requests"
	"agentdesk/internal/interfaces/httpserver/requests/convreq"
	"agentdesk/internal/interfaces/httpserver/responses"
	"agentdesk/internal/utils/platformerrors"
)

type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	convGroup := router.Group("/conversations")
	convGroup.GET("", route.list)
	convGroup.POST("", route.start)
	convGroup.GET("/:conv_id", route.get)
	convGroup.DELETE("/:conv_id", route.deactivate)
	convGroup.PUT("/:conv_id/title", route.rename)
	convGroup.GET("/:conv_id/messages", route.listMessages)
	convGroup.POST("/:conv_id/messages", route.sendMessage)
}

// start godoc
// @Summary Start a conversation
// @Description Open a conversation with an assigned assistant. An optional first message runs the initial exchange.
// @Tags Conversations API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body convreq.StartConversationRequest true "Assistant and optional first message"
// @Success 201 {object} convres.ExchangeResponse "Conversation created"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found or not assigned"
// @Router /v1/conversations [post]
func (route *ConversationRoute) start(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "3706d3a0-62aa-4804-a446-4c4068d8f47f")
		return
	}

	var req convreq.StartConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid conversation payload", "544b48ac-37b1-4d0c-b44e-f2291dae22a9")
		return
	}

	resp, err := route.handler.Start(reqCtx.Request.Context(), principal, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to start conversation")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// sendMessage godoc
// @Summary Send a message
// @Description Append a user message and receive the assistant reply.
// @Tags Conversations API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param conv_id path string true "Conversation ID"
// @Param request body convreq.SendMessageRequest true "Message content"
// @Success 200 {object} convres.ExchangeResponse "Exchange result"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload or closed conversation"
// @Failure 404 {object} responses.ErrorResponse "Conversation not found"
// @Router /v1/conversations/{conv_id}/messages [post]
func (route *ConversationRoute) sendMessage(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "2862f3c8-7539-44df-99c1-dc3fc811939e")
		return
	}

	var req convreq.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid message payload", "077b0483-390a-4090-87b3-618150e5d86b")
		return
	}

	resp, err := route.handler.SendMessage(reqCtx.Request.Context(), principal, reqCtx.Param("conv_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to send message")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// list godoc
// @Summary List conversations
// @Description List the caller's conversations, most recently active first.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of items to return"
// @Param offset query int false "Number of items to skip"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} convres.ConversationListResponse "Conversations"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/conversations [get]
func (route *ConversationRoute) list(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "b134ca6d-6b7a-4612-be5a-33913d7c0408")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid pagination")
		return
	}

	resp, err := route.handler.List(reqCtx.Request.Context(), principal, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list conversations")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// get godoc
// @Summary Get a conversation
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param conv_id path string true "Conversation ID"
// @Success 200 {object} convres.ConversationResponse "Conversation"
// @Failure 404 {object} responses.ErrorResponse "Conversation not found"
// @Router /v1/conversations/{conv_id} [get]
func (route *ConversationRoute) get(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "c5a7cb4f-d3c7-41a3-be8d-b3ff29f28792")
		return
	}

	resp, err := route.handler.Get(reqCtx.Request.Context(), principal, reqCtx.Param("conv_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get conversation")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// listMessages godoc
// @Summary List messages
// @Description Return the transcript of a conversation in chronological order.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param conv_id path string true "Conversation ID"
// @Param limit query int false "Maximum number of items to return"
// @Param offset query int false "Number of items to skip"
// @Success 200 {object} convres.MessageListResponse "Messages"
// @Failure 404 {object} responses.ErrorResponse "Conversation not found"
// @Router /v1/conversations/{conv_id}/messages [get]
func (route *ConversationRoute) listMessages(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "a588a01b-4789-4884-b798-9e447a80fe69")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid pagination")
		return
	}

	resp, err := route.handler.ListMessages(reqCtx.Request.Context(), principal, reqCtx.Param("conv_id"), pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list messages")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// rename godoc
// @Summary Rename a conversation
// @Tags Conversations API
// @Security BearerAuth
// @Accept json
// @Param conv_id path string true "Conversation ID"
// @Param request body convreq.RenameConversationRequest true "New title"
// @Success 204 "Conversation renamed"
// @Failure 404 {object} responses.ErrorResponse "Conversation not found"
// @Router /v1/conversations/{conv_id}/title [put]
func (route *ConversationRoute) rename(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "d62bbc24-2736-4f45-bb89-a94bbbbb2233")
		return
	}

	var req convreq.RenameConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid title payload", "87eeb433-be1c-45b7-bd57-7b8d2b73293a")
		return
	}

	if err := route.handler.Rename(reqCtx.Request.Context(), principal, reqCtx.Param("conv_id"), req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to rename conversation")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// deactivate godoc
// @Summary Close a conversation
// @Tags Conversations API
// @Security BearerAuth
// @Param conv_id path string true "Conversation ID"
// @Success 204 "Conversation closed"
// @Failure 404 {object} responses.ErrorResponse "Conversation not found"
// @Router /v1/conversations/{conv_id} [delete]
func (route *ConversationRoute) deactivate(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "c0580e15-9f33-41ed-ae08-3fef03c458bc")
		return
	}

	if err := route.handler.Deactivate(reqCtx.Request.Context(), principal, reqCtx.Param("conv_id")); err != nil {
		responses.HandleError(reqCtx, err, "Failed to close conversation")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}
