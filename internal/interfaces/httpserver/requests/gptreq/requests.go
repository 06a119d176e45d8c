// Package gptreq defines request payloads for assistant endpoints.
package gptreq

type CreateGPTRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	Instructions         string   `json:"instructions" binding:"required"`
	Model                string   `json:"model"`
	Folder               string   `json:"folder"`
	ConversationStarters []string `json:"conversation_starters"`
}

// UpdateGPTRequest uses pointers so omitted fields stay untouched.
type UpdateGPTRequest struct {
	Name                 *string   `json:"name"`
	Description          *string   `json:"description"`
	Instructions         *string   `json:"instructions"`
	Model                *string   `json:"model"`
	ConversationStarters *[]string `json:"conversation_starters"`
}

type MoveFolderRequest struct {
	Folder string `json:"folder"`
}

type AssignUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type ReplaceAssignmentsRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
}

type AddKnowledgeFileRequest struct {
	Name        string `json:"name" binding:"required"`
	Size        int64  `json:"size" binding:"gte=0"`
	ContentType string `json:"content_type"`
}
