// Package customgpt provides the custom assistant domain models and behaviors.
package customgpt

import (
	"context"
	"time"

	"agentdesk/internal/domain/query"
)

// KnowledgeFile records metadata about a document attached to an
// assistant. File contents live outside this service.
type KnowledgeFile struct {
	ID          string
	Name        string
	Size        int64
	ContentType string
	UploadedAt  time.Time
}

// CustomGPT models a configured assistant shared with workspace members.
type CustomGPT struct {
	ID                   string
	Name                 string
	Description          string
	Instructions         string
	Model                string
	Folder               string
	ConversationStarters []string
	KnowledgeFiles       []KnowledgeFile
	AssignedUserIDs      []string
	CreatedBy            string
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsAssigned reports whether the given user may use this assistant.
func (g *CustomGPT) IsAssigned(userID string) bool {
	if g == nil {
		return false
	}
	for _, id := range g.AssignedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// UpdateInput carries the editable assistant fields. Nil pointers leave
// the stored value untouched.
type UpdateInput struct {
	Name                 *string
	Description          *string
	Instructions         *string
	Model                *string
	ConversationStarters *[]string
}

// Repository defines storage operations for assistants. Find methods
// return (nil, nil) when no document matches; update methods report
// whether a document was matched.
type Repository interface {
	Create(ctx context.Context, gpt *CustomGPT) (*CustomGPT, error)
	FindByID(ctx context.Context, id string) (*CustomGPT, error)
	ListAll(ctx context.Context, pagination query.Pagination) ([]*CustomGPT, error)
	ListByAssignee(ctx context.Context, userID string, pagination query.Pagination) ([]*CustomGPT, error)
	Count(ctx context.Context) (int64, error)
	CountByAssignee(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, id string, input UpdateInput) (bool, error)
	MoveToFolder(ctx context.Context, id, folder string) (bool, error)
	AddAssignee(ctx context.Context, id, userID string) (bool, error)
	RemoveAssignee(ctx context.Context, id, userID string) (bool, error)
	ReplaceAssignees(ctx context.Context, id string, userIDs []string) (bool, error)
	AddKnowledgeFile(ctx context.Context, id string, file KnowledgeFile) (bool, error)
	RemoveKnowledgeFile(ctx context.Context, id, fileID string) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}
