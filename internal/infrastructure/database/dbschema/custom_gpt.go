package dbschema

import (
	"time"

	"agentdesk/internal/domain/customgpt"
)

// CustomGPT represents the persisted assistant document.
type CustomGPT struct {
	BaseModel            `bson:",inline"`
	Name                 string          `bson:"name"`
	Description          string          `bson:"description,omitempty"`
	Instructions         string          `bson:"instructions"`
	Model                string          `bson:"model,omitempty"`
	Folder               string          `bson:"folder,omitempty"`
	ConversationStarters []string        `bson:"conversationStarters,omitempty"`
	KnowledgeFiles       []KnowledgeFile `bson:"knowledgeFiles"`
	AssignedUserIDs      []string        `bson:"assignedUserIds"`
	CreatedBy            string          `bson:"createdBy"`
	IsActive             bool            `bson:"isActive"`
}

// KnowledgeFile is the embedded document for attached file metadata.
type KnowledgeFile struct {
	ID          string    `bson:"id"`
	Name        string    `bson:"name"`
	Size        int64     `bson:"size"`
	ContentType string    `bson:"contentType,omitempty"`
	UploadedAt  time.Time `bson:"uploadedAt"`
}

// NewSchemaCustomGPT converts a domain assistant into a schema instance.
func NewSchemaCustomGPT(g *customgpt.CustomGPT) *CustomGPT {
	if g == nil {
		return nil
	}

	files := make([]KnowledgeFile, 0, len(g.KnowledgeFiles))
	for _, f := range g.KnowledgeFiles {
		files = append(files, NewSchemaKnowledgeFile(f))
	}
	assignees := g.AssignedUserIDs
	if assignees == nil {
		assignees = []string{}
	}

	return &CustomGPT{
		BaseModel: BaseModel{
			ID:        ObjectIDFromHex(g.ID),
			CreatedAt: g.CreatedAt,
			UpdatedAt: g.UpdatedAt,
		},
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
	}
}

// NewSchemaKnowledgeFile converts embedded file metadata.
func NewSchemaKnowledgeFile(f customgpt.KnowledgeFile) KnowledgeFile {
	return KnowledgeFile{
		ID:          f.ID,
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
		UploadedAt:  f.UploadedAt,
	}
}

// EtoD converts a schema assistant back to the domain representation.
func (g *CustomGPT) EtoD() *customgpt.CustomGPT {
	if g == nil {
		return nil
	}

	files := make([]customgpt.KnowledgeFile, 0, len(g.KnowledgeFiles))
	for _, f := range g.KnowledgeFiles {
		files = append(files, customgpt.KnowledgeFile{
			ID:          f.ID,
			Name:        f.Name,
			Size:        f.Size,
			ContentType: f.ContentType,
			UploadedAt:  f.UploadedAt,
		})
	}

	return &customgpt.CustomGPT{
		ID:                   g.ID.Hex(),
		Name:                 g.Name,
		Description:          g.Description,
		Instructions:         g.Instructions,
		Model:                g.Model,
		Folder:               g.Folder,
		ConversationStarters: g.ConversationStarters,
		KnowledgeFiles:       files,
		AssignedUserIDs:      g.AssignedUserIDs,
		CreatedBy:            g.CreatedBy,
		IsActive:             g.IsActive,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}
