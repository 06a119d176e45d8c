package gpts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentdesk/internal/interfaces/httpserver/handlers/gpthandler"
	"agentdesk/internal/interfaces/httpserver/middlewares"
	"agentdesk/internal/interfaces/httpserver/requests"
	"agentdesk/internal/interfaces/httpserver/requests/gptreq"
	"agentdesk/internal/interfaces/httpserver/responses"
	"agentdesk/internal/utils/platformerrors"
)

type GPTRoute struct {
	handler *gpthandler.GPTHandler
}

func NewGPTRoute(handler *gpthandler.GPTHandler) *GPTRoute {
	return &GPTRoute{handler: handler}
}

// RegisterRouter mounts assistant endpoints. Reads are open to every
// authenticated member; mutations require the admin role.
func (route *GPTRoute) RegisterRouter(router gin.IRouter) {
	gptsGroup := router.Group("/gpts")
	gptsGroup.GET("", route.list)
	gptsGroup.GET("/:gpt_id", route.get)

	adminGroup := gptsGroup.Group("", middlewares.RequireAdmin())
	adminGroup.POST("", route.create)
	adminGroup.PATCH("/:gpt_id", route.update)
	adminGroup.DELETE("/:gpt_id", route.deactivate)
	adminGroup.PUT("/:gpt_id/folder", route.moveToFolder)
	adminGroup.POST("/:gpt_id/assignments", route.assignUser)
	adminGroup.PUT("/:gpt_id/assignments", route.replaceAssignments)
	adminGroup.DELETE("/:gpt_id/assignments/:user_id", route.unassignUser)
	adminGroup.POST("/:gpt_id/files", route.addKnowledgeFile)
	adminGroup.DELETE("/:gpt_id/files/:file_id", route.removeKnowledgeFile)
}

// list godoc
// @Summary List assistants
// @Description List assistants visible to the caller. Members see only their assignments.
// @Tags GPTs API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of items to return"
// @Param offset query int false "Number of items to skip"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} gptres.GPTListResponse "Assistants"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/gpts [get]
func (route *GPTRoute) list(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "43f88715-b33f-45d3-bd55-95114dd9b74f")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid pagination")
		return
	}

	resp, err := route.handler.List(reqCtx.Request.Context(), principal, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list assistants")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// get godoc
// @Summary Get an assistant
// @Tags GPTs API
// @Security BearerAuth
// @Produce json
// @Param gpt_id path string true "Assistant ID"
// @Success 200 {object} gptres.GPTResponse "Assistant"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found"
// @Router /v1/gpts/{gpt_id} [get]
func (route *GPTRoute) get(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "f968151a-0b08-4726-9fe5-8b141306c663")
		return
	}

	resp, err := route.handler.Get(reqCtx.Request.Context(), principal, reqCtx.Param("gpt_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get assistant")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// create godoc
// @Summary Create an assistant
// @Tags GPTs API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body gptreq.CreateGPTRequest true "Assistant definition"
// @Success 201 {object} gptres.GPTResponse "Created assistant"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 403 {object} responses.ErrorResponse "Admin role required"
// @Router /v1/gpts [post]
func (route *GPTRoute) create(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized,
			"authentication required", "27939d5e-b595-47b7-8471-e202e3179c91")
		return
	}

	var req gptreq.CreateGPTRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid assistant payload", "f8a573fc-dcad-4c79-9dbe-825f29d9eaa7")
		return
	}

	resp, err := route.handler.Create(reqCtx.Request.Context(), principal, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create assistant")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// update godoc
// @Summary Update an assistant
// @Description Apply a partial edit. Omitted fields stay untouched.
// @Tags GPTs API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param gpt_id path string true "Assistant ID"
// @Param request body gptreq.UpdateGPTRequest true "Fields to change"
// @Success 200 {object} gptres.GPTResponse "Updated assistant"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found"
// @Router /v1/gpts/{gpt_id} [patch]
func (route *GPTRoute) update(reqCtx *gin.Context) {
	var req gptreq.UpdateGPTRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid assistant payload", "c0a92f8a-b4af-4340-9752-318b418605e0")
		return
	}

	resp, err := route.handler.Update(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update assistant")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deactivate godoc
// @Summary Deactivate an assistant
// @Tags GPTs API
// @Security BearerAuth
// @Param gpt_id path string true "Assistant ID"
// @Success 204 "Assistant deactivated"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found"
// @Router /v1/gpts/{gpt_id} [delete]
func (route *GPTRoute) deactivate(reqCtx *gin.Context) {
	if err := route.handler.Deactivate(reqCtx.Request.Context(), reqCtx.Param("gpt_id")); err != nil {
		responses.HandleError(reqCtx, err, "Failed to deactivate assistant")
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// moveToFolder godoc
// @Summary Move an assistant to a folder
// @Description Relocate an assistant. An empty folder name clears the grouping.
// @Tags GPTs API
// @Security BearerAuth
// @Accept json
// @Param gpt_id path string true "Assistant ID"
// @Param request body gptreq.MoveFolderRequest true "Target folder"
// @Success 204 "Assistant moved"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found"
// @Router /v1/gpts/{gpt_id}/folder [put]
func (route *GPTRoute) moveToFolder(reqCtx *gin.Context) {
	var req gptreq.MoveFolderRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid folder payload", "6da9f07a-297e-4dac-aacb-9eac09f400b3")
		return
	}

	if err := route.handler.MoveToFolder(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to move assistant")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// assignUser godoc
// @Summary Assign a member to an assistant
// @Tags GPTs API
// @Security BearerAuth
// @Accept json
// @Param gpt_id path string true "Assistant ID"
// @Param request body gptreq.AssignUserRequest true "Member to assign"
// @Success 204 "Member assigned"
// @Failure 404 {object} responses.ErrorResponse "Assistant or member not found"
// @Router /v1/gpts/{gpt_id}/assignments [post]
func (route *GPTRoute) assignUser(reqCtx *gin.Context) {
	var req gptreq.AssignUserRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid assignment payload", "c0a82e92-41c1-4382-912b-ffe95c6208ee")
		return
	}

	if err := route.handler.AssignUser(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to assign user")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// replaceAssignments godoc
// @Summary Replace all assignments on an assistant
// @Description Swap the full assignee list in a single write.
// @Tags GPTs API
// @Security BearerAuth
// @Accept json
// @Param gpt_id path string true "Assistant ID"
// @Param request body gptreq.ReplaceAssignmentsRequest true "Full assignee list"
// @Success 204 "Assignments replaced"
// @Failure 404 {object} responses.ErrorResponse "Assistant or member not found"
// @Router /v1/gpts/{gpt_id}/assignments [put]
func (route *GPTRoute) replaceAssignments(reqCtx *gin.Context) {
	var req gptreq.ReplaceAssignmentsRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid assignments payload", "c101c8d2-ee60-4df6-ad2b-8c0e9ba88b29")
		return
	}

	if err := route.handler.ReplaceAssignments(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to replace assignments")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}

// unassignUser godoc
// @Summary Unassign a member from an assistant
// @Tags GPTs API
// @Security BearerAuth
// @Param gpt_id path string true "Assistant ID"
// @Param user_id path string true "Member ID"
// @Success 204 "Member unassigned"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found"
// @Router /v1/gpts/{gpt_id}/assignments/{user_id} [delete]
func (route *GPTRoute) unassignUser(reqCtx *gin.Context) {
	err := route.handler.UnassignUser(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), reqCtx.Param("user_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to unassign user")
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// addKnowledgeFile godoc
// @Summary Attach knowledge file metadata
// @Tags GPTs API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param gpt_id path string true "Assistant ID"
// @Param request body gptreq.AddKnowledgeFileRequest true "File metadata"
// @Success 201 {object} gptres.KnowledgeFileResponse "Attached file"
// @Failure 400 {object} responses.ErrorResponse "Invalid request payload"
// @Failure 404 {object} responses.ErrorResponse "Assistant not found"
// @Router /v1/gpts/{gpt_id}/files [post]
func (route *GPTRoute) addKnowledgeFile(reqCtx *gin.Context) {
	var req gptreq.AddKnowledgeFileRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation,
			"invalid file payload", "42539903-6796-4632-87e3-c9dad15c9ab8")
		return
	}

	resp, err := route.handler.AddKnowledgeFile(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to attach knowledge file")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// removeKnowledgeFile godoc
// @Summary Remove a knowledge file
// @Tags GPTs API
// @Security BearerAuth
// @Param gpt_id path string true "Assistant ID"
// @Param file_id path string true "File ID"
// @Success 204 "File removed"
// @Failure 404 {object} responses.ErrorResponse "Assistant or file not found"
// @Router /v1/gpts/{gpt_id}/files/{file_id} [delete]
func (route *GPTRoute) removeKnowledgeFile(reqCtx *gin.Context) {
	err := route.handler.RemoveKnowledgeFile(reqCtx.Request.Context(), reqCtx.Param("gpt_id"), reqCtx.Param("file_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to remove knowledge file")
		return
	}
	reqCtx.Status(http.StatusNoContent)
}
