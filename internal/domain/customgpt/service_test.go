package customgpt

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/platformerrors"
)

type fakeRepo struct {
	byID   map[string]*CustomGPT
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*CustomGPT{}}
}

func (r *fakeRepo) Create(_ context.Context, gpt *CustomGPT) (*CustomGPT, error) {
	r.nextID++
	gpt.ID = fmt.Sprintf("gpt-%d", r.nextID)
	gpt.IsActive = true
	r.byID[gpt.ID] = gpt
	return gpt, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*CustomGPT, error) {
	return r.byID[id], nil
}

func (r *fakeRepo) ListAll(_ context.Context, _ query.Pagination) ([]*CustomGPT, error) {
	out := make([]*CustomGPT, 0, len(r.byID))
	for _, gpt := range r.byID {
		out = append(out, gpt)
	}
	return out, nil
}

func (r *fakeRepo) ListByAssignee(_ context.Context, userID string, _ query.Pagination) ([]*CustomGPT, error) {
	var out []*CustomGPT
	for _, gpt := range r.byID {
		if gpt.IsAssigned(userID) {
			out = append(out, gpt)
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeRepo) CountByAssignee(ctx context.Context, userID string) (int64, error) {
	gpts, _ := r.ListByAssignee(ctx, userID, query.Pagination{})
	return int64(len(gpts)), nil
}

func (r *fakeRepo) Update(_ context.Context, id string, input UpdateInput) (bool, error) {
	gpt, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if input.Name != nil {
		gpt.Name = *input.Name
	}
	if input.Description != nil {
		gpt.Description = *input.Description
	}
	if input.Instructions != nil {
		gpt.Instructions = *input.Instructions
	}
	if input.Model != nil {
		gpt.Model = *input.Model
	}
	if input.ConversationStarters != nil {
		gpt.ConversationStarters = *input.ConversationStarters
	}
	return true, nil
}

func (r *fakeRepo) MoveToFolder(_ context.Context, id, folder string) (bool, error) {
	gpt, ok := r.byID[id]
	if ok {
		gpt.Folder = folder
	}
	return ok, nil
}

func (r *fakeRepo) AddAssignee(_ context.Context, id, userID string) (bool, error) {
	gpt, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if !gpt.IsAssigned(userID) {
		gpt.AssignedUserIDs = append(gpt.AssignedUserIDs, userID)
	}
	return true, nil
}

func (r *fakeRepo) RemoveAssignee(_ context.Context, id, userID string) (bool, error) {
	gpt, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	kept := gpt.AssignedUserIDs[:0]
	for _, assigned := range gpt.AssignedUserIDs {
		if assigned != userID {
			kept = append(kept, assigned)
		}
	}
	gpt.AssignedUserIDs = kept
	return true, nil
}

func (r *fakeRepo) ReplaceAssignees(_ context.Context, id string, userIDs []string) (bool, error) {
	gpt, ok := r.byID[id]
	if ok {
		gpt.AssignedUserIDs = userIDs
	}
	return ok, nil
}

func (r *fakeRepo) AddKnowledgeFile(_ context.Context, id string, file KnowledgeFile) (bool, error) {
	gpt, ok := r.byID[id]
	if ok {
		gpt.KnowledgeFiles = append(gpt.KnowledgeFiles, file)
	}
	return ok, nil
}

func (r *fakeRepo) RemoveKnowledgeFile(_ context.Context, id, fileID string) (bool, error) {
	gpt, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	kept := gpt.KnowledgeFiles[:0]
	for _, file := range gpt.KnowledgeFiles {
		if file.ID != fileID {
			kept = append(kept, file)
		}
	}
	gpt.KnowledgeFiles = kept
	return true, nil
}

func (r *fakeRepo) Deactivate(_ context.Context, id string) (bool, error) {
	gpt, ok := r.byID[id]
	if ok {
		gpt.IsActive = false
	}
	return ok, nil
}

type fakeUserRepo struct {
	active map[string]bool
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	active, ok := r.active[id]
	if !ok {
		return nil, nil
	}
	return &user.User{ID: id, IsActive: active}, nil
}

func (r *fakeUserRepo) Create(context.Context, *user.User) (*user.User, error) { return nil, nil }
func (r *fakeUserRepo) FindByEmail(context.Context, string) (*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) List(context.Context, query.Pagination) ([]*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Count(context.Context) (int64, error) { return 0, nil }
func (r *fakeUserRepo) UpdateProfile(context.Context, string, user.ProfileUpdate) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdatePasswordHash(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdateRole(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdateAPIKey(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) RemoveAPIKey(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) Deactivate(context.Context, string) (bool, error) { return false, nil }

func newTestService() (*Service, *fakeRepo, *fakeUserRepo) {
	repo := newFakeRepo()
	users := &fakeUserRepo{active: map[string]bool{"member-1": true, "member-2": true, "inactive-1": false}}
	return NewService(repo, users), repo, users
}

func seedGPT(repo *fakeRepo, assignees ...string) *CustomGPT {
	gpt, _ := repo.Create(context.Background(), &CustomGPT{
		Name:            "Support Helper",
		Instructions:    "Answer support questions.",
		AssignedUserIDs: assignees,
	})
	return gpt
}

func TestCreateRequiresNameAndInstructions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "admin-1", CreateInput{Instructions: "x"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Create(ctx, "admin-1", CreateInput{Name: "Helper"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	gpt, err := svc.Create(ctx, "admin-1", CreateInput{Name: " Helper ", Instructions: "Be helpful."})
	require.NoError(t, err)
	assert.Equal(t, "Helper", gpt.Name)
	assert.Equal(t, "admin-1", gpt.CreatedBy)
	assert.NotNil(t, gpt.AssignedUserIDs)
}

func TestGetHidesUnassignedFromMembers(t *testing.T) {
	svc, repo, _ := newTestService()
	gpt := seedGPT(repo, "member-1")
	ctx := context.Background()

	admin := domain.Principal{UserID: "admin-1", IsAdmin: true}
	member := domain.Principal{UserID: "member-1"}
	outsider := domain.Principal{UserID: "member-2"}

	got, err := svc.Get(ctx, admin, gpt.ID)
	require.NoError(t, err)
	assert.Equal(t, gpt.ID, got.ID)

	_, err = svc.Get(ctx, member, gpt.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, outsider, gpt.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestListScopesToAssignee(t *testing.T) {
	svc, repo, _ := newTestService()
	seedGPT(repo, "member-1")
	seedGPT(repo)
	ctx := context.Background()

	all, total, err := svc.List(ctx, domain.Principal{UserID: "admin-1", IsAdmin: true}, query.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), total)

	mine, total, err := svc.List(ctx, domain.Principal{UserID: "member-1"}, query.Pagination{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, int64(1), total)
}

func TestAssignUserRejectsInactive(t *testing.T) {
	svc, repo, _ := newTestService()
	gpt := seedGPT(repo)
	ctx := context.Background()

	err := svc.AssignUser(ctx, gpt.ID, "inactive-1")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	err = svc.AssignUser(ctx, gpt.ID, "ghost")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	require.NoError(t, svc.AssignUser(ctx, gpt.ID, "member-1"))
	require.NoError(t, svc.AssignUser(ctx, gpt.ID, "member-1"))
	assert.Equal(t, []string{"member-1"}, repo.byID[gpt.ID].AssignedUserIDs)
}

func TestReplaceAssignmentsDedupes(t *testing.T) {
	svc, repo, _ := newTestService()
	gpt := seedGPT(repo, "member-1")

	err := svc.ReplaceAssignments(context.Background(), gpt.ID, []string{"member-2", "member-2", "member-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"member-2", "member-1"}, repo.byID[gpt.ID].AssignedUserIDs)
}

func TestMoveToFolderTrimsName(t *testing.T) {
	svc, repo, _ := newTestService()
	gpt := seedGPT(repo)

	require.NoError(t, svc.MoveToFolder(context.Background(), gpt.ID, " Marketing "))
	assert.Equal(t, "Marketing", repo.byID[gpt.ID].Folder)

	err := svc.MoveToFolder(context.Background(), "missing", "Marketing")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestKnowledgeFileLifecycle(t *testing.T) {
	svc, repo, _ := newTestService()
	gpt := seedGPT(repo)
	ctx := context.Background()

	file, err := svc.AddKnowledgeFile(ctx, gpt.ID, KnowledgeFileInput{Name: "faq.pdf", Size: 1024, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.True(t, len(file.ID) > len("file_"))
	assert.False(t, file.UploadedAt.IsZero())
	require.Len(t, repo.byID[gpt.ID].KnowledgeFiles, 1)

	require.NoError(t, svc.RemoveKnowledgeFile(ctx, gpt.ID, file.ID))
	assert.Empty(t, repo.byID[gpt.ID].KnowledgeFiles)
}

func TestUpdateValidatesNonEmpty(t *testing.T) {
	svc, repo, _ := newTestService()
	gpt := seedGPT(repo)
	ctx := context.Background()

	empty := " "
	_, err := svc.Update(ctx, gpt.ID, UpdateInput{Name: &empty})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	name := "Renamed"
	updated, err := svc.Update(ctx, gpt.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Answer support questions.", updated.Instructions)
}
