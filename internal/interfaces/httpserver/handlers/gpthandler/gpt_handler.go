package gpthandler

import (
	"context"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/interfaces/httpserver/requests/gptreq"
	"agentdesk/internal/interfaces/httpserver/responses/gptres"
	"agentdesk/internal/utils/platformerrors"
)

type GPTHandler struct {
	gptService *customgpt.Service
}

func NewGPTHandler(gptService *customgpt.Service) *GPTHandler {
	return &GPTHandler{gptService: gptService}
}

// Create registers a new assistant owned by the caller.
func (h *GPTHandler) Create(
	ctx context.Context,
	principal domain.Principal,
	req gptreq.CreateGPTRequest,
) (*gptres.GPTResponse, error) {
	gpt, err := h.gptService.Create(ctx, principal.UserID, customgpt.CreateInput{
		Name:                 req.Name,
		Description:          req.Description,
		Instructions:         req.Instructions,
		Model:                req.Model,
		Folder:               req.Folder,
		ConversationStarters: req.ConversationStarters,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create assistant")
	}
	return gptres.NewGPTResponse(gpt), nil
}

// Get returns one assistant, scoped to what the caller may see.
func (h *GPTHandler) Get(
	ctx context.Context,
	principal domain.Principal,
	gptID string,
) (*gptres.GPTResponse, error) {
	gpt, err := h.gptService.Get(ctx, principal, gptID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get assistant")
	}
	return gptres.NewGPTResponse(gpt), nil
}

// List returns assistants visible to the caller.
func (h *GPTHandler) List(
	ctx context.Context,
	principal domain.Principal,
	pagination query.Pagination,
) (*gptres.GPTListResponse, error) {
	gpts, total, err := h.gptService.List(ctx, principal, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list assistants")
	}
	return gptres.NewGPTListResponse(gpts, total), nil
}

// Update applies a partial edit to an assistant.
func (h *GPTHandler) Update(
	ctx context.Context,
	gptID string,
	req gptreq.UpdateGPTRequest,
) (*gptres.GPTResponse, error) {
	gpt, err := h.gptService.Update(ctx, gptID, customgpt.UpdateInput{
		Name:                 req.Name,
		Description:          req.Description,
		Instructions:         req.Instructions,
		Model:                req.Model,
		ConversationStarters: req.ConversationStarters,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update assistant")
	}
	return gptres.NewGPTResponse(gpt), nil
}

// MoveToFolder relocates an assistant. An empty folder clears the grouping.
func (h *GPTHandler) MoveToFolder(
	ctx context.Context,
	gptID string,
	req gptreq.MoveFolderRequest,
) error {
	if err := h.gptService.MoveToFolder(ctx, gptID, req.Folder); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to move assistant")
	}
	return nil
}

// AssignUser grants a member access to an assistant.
func (h *GPTHandler) AssignUser(
	ctx context.Context,
	gptID string,
	req gptreq.AssignUserRequest,
) error {
	if err := h.gptService.AssignUser(ctx, gptID, req.UserID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to assign user")
	}
	return nil
}

// UnassignUser revokes a member's access to an assistant.
func (h *GPTHandler) UnassignUser(ctx context.Context, gptID, userID string) error {
	if err := h.gptService.UnassignUser(ctx, gptID, userID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to unassign user")
	}
	return nil
}

// ReplaceAssignments swaps the full assignee list in one write.
func (h *GPTHandler) ReplaceAssignments(
	ctx context.Context,
	gptID string,
	req gptreq.ReplaceAssignmentsRequest,
) error {
	if err := h.gptService.ReplaceAssignments(ctx, gptID, req.UserIDs); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to replace assignments")
	}
	return nil
}

// AddKnowledgeFile records document metadata on an assistant.
func (h *GPTHandler) AddKnowledgeFile(
	ctx context.Context,
	gptID string,
	req gptreq.AddKnowledgeFileRequest,
) (*gptres.KnowledgeFileResponse, error) {
	file, err := h.gptService.AddKnowledgeFile(ctx, gptID, customgpt.KnowledgeFileInput{
		Name:        req.Name,
		Size:        req.Size,
		ContentType: req.ContentType,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to attach knowledge file")
	}
	resp := gptres.NewKnowledgeFileResponse(*file)
	return &resp, nil
}

// RemoveKnowledgeFile detaches a document from an assistant.
func (h *GPTHandler) RemoveKnowledgeFile(ctx context.Context, gptID, fileID string) error {
	if err := h.gptService.RemoveKnowledgeFile(ctx, gptID, fileID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to remove knowledge file")
	}
	return nil
}

// Deactivate soft-deletes an assistant.
func (h *GPTHandler) Deactivate(ctx context.Context, gptID string) error {
	if err := h.gptService.Deactivate(ctx, gptID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to deactivate assistant")
	}
	return nil
}
