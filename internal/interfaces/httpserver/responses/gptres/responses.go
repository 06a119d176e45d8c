// Package gptres defines response payloads for assistant endpoints.
package gptres

import (
	"time"

	"agentdesk/internal/domain/customgpt"
)

type KnowledgeFileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func NewKnowledgeFileResponse(f customgpt.KnowledgeFile) KnowledgeFileResponse {
	return KnowledgeFileResponse{
		ID:          f.ID,
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
		UploadedAt:  f.UploadedAt,
	}
}

type GPTResponse struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name"`
	Description          string                  `json:"description,omitempty"`
	Instructions         string                  `json:"instructions"`
	Model                string                  `json:"model,omitempty"`
	Folder               string                  `json:"folder,omitempty"`
	ConversationStarters []string                `json:"conversation_starters,omitempty"`
	KnowledgeFiles       []KnowledgeFileResponse `json:"knowledge_files"`
	AssignedUserIDs      []string                `json:"assigned_user_ids"`
	CreatedBy            string                  `json:"created_by"`
	IsActive             bool                    `json:"is_active"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
}

func NewGPTResponse(g *customgpt.CustomGPT) *GPTResponse {
	if g == nil {
		return nil
	}

	files := make([]KnowledgeFileResponse, 0, len(g.KnowledgeFiles))
	for _, f := range g.KnowledgeFiles {
		files = append(files, NewKnowledgeFileResponse(f))
	}
	assignees := g.AssignedUserIDs
	if assignees == nil {
		assignees = []string{}
	}

	return &GPTResponse{
		ID:                   g.ID,
		Name:                 g.Name,
		Description:          g.Description,
		Instructions:         g.Instructions,
		Model:                g.Model,
		Folder:               g.Folder,
		ConversationStarters: g.ConversationStarters,
		KnowledgeFiles:       files,
		AssignedUserIDs:      assignees,
		CreatedBy:            g.CreatedBy,
		IsActive:             g.IsActive,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}

type GPTListResponse struct {
	Items []*GPTResponse `json:"items"`
	Total int64          `json:"total"`
}

func NewGPTListResponse(gpts []*customgpt.CustomGPT, total int64) *GPTListResponse {
	items := make([]*GPTResponse, 0, len(gpts))
	for _, g := range gpts {
		items = append(items, NewGPTResponse(g))
	}
	return &GPTListResponse{Items: items, Total: total}
}
