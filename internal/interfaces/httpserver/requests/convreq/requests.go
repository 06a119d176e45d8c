// Package convreq defines request payloads for conversation endpoints.
package convreq

type StartConversationRequest struct {
	GPTID   string `json:"gpt_id" binding:"required"`
	Message string `json:"message"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type RenameConversationRequest struct {
	Title string `json:"title" binding:"required"`
}
