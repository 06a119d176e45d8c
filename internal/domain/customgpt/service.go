package customgpt

import (
	"context"
	"strings"
	"time"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/idgen"
	"agentdesk/internal/utils/platformerrors"
)

const knowledgeFileIDPrefix = "file_"

// CreateInput carries the fields required to create an assistant.
type CreateInput struct {
	Name                 string
	Description          string
	Instructions         string
	Model                string
	Folder               string
	ConversationStarters []string
}

// KnowledgeFileInput carries the metadata for an attached document.
type KnowledgeFileInput struct {
	Name        string
	Size        int64
	ContentType string
}

// Service implements assistant management on top of the repository.
type Service struct {
	repo  Repository
	users user.Repository
	now   func() time.Time
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users, now: time.Now}
}

// Create registers a new assistant owned by createdBy.
func (s *Service) Create(ctx context.Context, createdBy string, input CreateInput) (*CustomGPT, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "name is required", nil, "796f6880-f1ae-4b5f-a182-4e2bdd2d3239")
	}
	if strings.TrimSpace(input.Instructions) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "instructions are required", nil, "6a91037f-78a0-4a3e-a1f0-3f40f5c288c6")
	}

	created, err := s.repo.Create(ctx, &CustomGPT{
		Name:                 name,
		Description:          strings.TrimSpace(input.Description),
		Instructions:         input.Instructions,
		Model:                input.Model,
		Folder:               strings.TrimSpace(input.Folder),
		ConversationStarters: input.ConversationStarters,
		AssignedUserIDs:      []string{},
		KnowledgeFiles:       []KnowledgeFile{},
		CreatedBy:            createdBy,
		IsActive:             true,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create assistant")
	}
	return created, nil
}

// Get resolves an assistant the principal is allowed to see. Members
// only see assistants assigned to them; the distinction between a
// missing assistant and an unassigned one is not revealed.
func (s *Service) Get(ctx context.Context, principal domain.Principal, id string) (*CustomGPT, error) {
	gpt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find assistant")
	}
	if gpt == nil || (!principal.IsAdmin && !gpt.IsAssigned(principal.UserID)) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "dd646acf-cb48-4998-b710-fcbafd982e27")
	}
	return gpt, nil
}

// List returns the assistants visible to the principal plus the total.
func (s *Service) List(ctx context.Context, principal domain.Principal, pagination query.Pagination) ([]*CustomGPT, int64, error) {
	pagination = pagination.Normalize()

	if principal.IsAdmin {
		gpts, err := s.repo.ListAll(ctx, pagination)
		if err != nil {
			return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list assistants")
		}
		total, err := s.repo.Count(ctx)
		if err != nil {
			return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count assistants")
		}
		return gpts, total, nil
	}

	gpts, err := s.repo.ListByAssignee(ctx, principal.UserID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list assigned assistants")
	}
	total, err := s.repo.CountByAssignee(ctx, principal.UserID)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count assigned assistants")
	}
	return gpts, total, nil
}

// Update edits the assistant configuration and returns the fresh state.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*CustomGPT, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "name cannot be empty", nil, "8d1a3da0-f755-4867-a349-43a736c781c0")
	}
	if input.Instructions != nil && strings.TrimSpace(*input.Instructions) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "instructions cannot be empty", nil, "adb6d4f9-68fa-4dbd-a77c-4ef0bd305467")
	}

	ok, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update assistant")
	}
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "03098b69-5ed8-4ed7-b6e6-fed941c5a4ee")
	}
	return s.findExisting(ctx, id)
}

// MoveToFolder relocates the assistant without touching its other
// configuration. An empty folder removes it from any folder.
func (s *Service) MoveToFolder(ctx context.Context, id, folder string) error {
	ok, err := s.repo.MoveToFolder(ctx, id, strings.TrimSpace(folder))
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to move assistant")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "107a0602-ef9e-4785-a80d-5f4813215a2a")
	}
	return nil
}

// AssignUser grants a member access to the assistant. Assigning an
// already assigned user is a no-op.
func (s *Service) AssignUser(ctx context.Context, gptID, userID string) error {
	if err := s.requireActiveUser(ctx, userID); err != nil {
		return err
	}
	ok, err := s.repo.AddAssignee(ctx, gptID, userID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to assign user")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "4a1788a8-e9d2-48d3-ab60-e8798b0f12fb")
	}
	return nil
}

// UnassignUser revokes a member's access. Removing a user who was not
// assigned is a no-op.
func (s *Service) UnassignUser(ctx context.Context, gptID, userID string) error {
	ok, err := s.repo.RemoveAssignee(ctx, gptID, userID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to unassign user")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "02ec9a47-d131-45ee-a749-179051826c99")
	}
	return nil
}

// ReplaceAssignments swaps the full assignee list in one write so
// concurrent readers never observe a partially cleared list.
func (s *Service) ReplaceAssignments(ctx context.Context, gptID string, userIDs []string) error {
	deduped := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if err := s.requireActiveUser(ctx, id); err != nil {
			return err
		}
		deduped = append(deduped, id)
	}

	ok, err := s.repo.ReplaceAssignees(ctx, gptID, deduped)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to replace assignments")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "c48effed-d155-4635-9a71-93fdf26aa271")
	}
	return nil
}

// AddKnowledgeFile attaches document metadata to the assistant.
func (s *Service) AddKnowledgeFile(ctx context.Context, gptID string, input KnowledgeFileInput) (*KnowledgeFile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "file name is required", nil, "628144b8-13ee-48e0-921b-5ac041362d59")
	}

	fileID, err := idgen.GenerateSecureID(knowledgeFileIDPrefix, 24)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate file id")
	}
	file := KnowledgeFile{
		ID:          fileID,
		Name:        input.Name,
		Size:        input.Size,
		ContentType: input.ContentType,
		UploadedAt:  s.now().UTC(),
	}

	ok, err := s.repo.AddKnowledgeFile(ctx, gptID, file)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to attach file")
	}
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "4963c410-2a68-4b75-bf3c-e95cb5f4d6aa")
	}
	return &file, nil
}

// RemoveKnowledgeFile detaches document metadata from the assistant.
func (s *Service) RemoveKnowledgeFile(ctx context.Context, gptID, fileID string) error {
	ok, err := s.repo.RemoveKnowledgeFile(ctx, gptID, fileID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to detach file")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "67fa9243-9f49-45fc-8718-d4c903a6bce2")
	}
	return nil
}

// Deactivate soft deletes the assistant. Existing conversations keep
// their history but no new ones can be started against it.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to deactivate assistant")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "c5fe7a4e-4c53-48e9-9e04-39c9a5da3073")
	}
	return nil
}

func (s *Service) findExisting(ctx context.Context, id string) (*CustomGPT, error) {
	gpt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to reload assistant")
	}
	if gpt == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "9d624a3d-780f-48d2-8adb-f1ab3a77e413")
	}
	return gpt, nil
}

func (s *Service) requireActiveUser(ctx context.Context, userID string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to verify user")
	}
	if u == nil || !u.IsActive {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "user is not an active member", nil, "9eaf550c-3e62-417f-8373-e6054ee5b2f7")
	}
	return nil
}
