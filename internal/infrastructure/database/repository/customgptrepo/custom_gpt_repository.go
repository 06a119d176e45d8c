package customgptrepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/infrastructure/database/dbschema"
	"agentdesk/internal/infrastructure/database/mongodb"
)

type CustomGPTMongoRepository struct {
	docs *mongodb.Documents
}

var _ customgpt.Repository = (*CustomGPTMongoRepository)(nil)

func NewCustomGPTMongoRepository(docs *mongodb.Documents) customgpt.Repository {
	return &CustomGPTMongoRepository{docs: docs}
}

func (repo *CustomGPTMongoRepository) Create(ctx context.Context, gpt *customgpt.CustomGPT) (*customgpt.CustomGPT, error) {
	id, err := repo.docs.InsertOne(ctx, dbschema.CollectionCustomGPTs, dbschema.NewSchemaCustomGPT(gpt))
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id.Hex())
}

func (repo *CustomGPTMongoRepository) FindByID(ctx context.Context, id string) (*customgpt.CustomGPT, error) {
	var entity dbschema.CustomGPT
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionCustomGPTs, bson.M{"_id": dbschema.ObjectIDFromHex(id)}, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}

func (repo *CustomGPTMongoRepository) ListAll(ctx context.Context, pagination query.Pagination) ([]*customgpt.CustomGPT, error) {
	return repo.list(ctx, activeFilter(), pagination)
}

func (repo *CustomGPTMongoRepository) ListByAssignee(ctx context.Context, userID string, pagination query.Pagination) ([]*customgpt.CustomGPT, error) {
	return repo.list(ctx, assigneeFilter(userID), pagination)
}

func (repo *CustomGPTMongoRepository) Count(ctx context.Context) (int64, error) {
	return repo.docs.CountDocuments(ctx, dbschema.CollectionCustomGPTs, activeFilter())
}

func (repo *CustomGPTMongoRepository) CountByAssignee(ctx context.Context, userID string) (int64, error) {
	return repo.docs.CountDocuments(ctx, dbschema.CollectionCustomGPTs, assigneeFilter(userID))
}

func (repo *CustomGPTMongoRepository) Update(ctx context.Context, id string, input customgpt.UpdateInput) (bool, error) {
	patch := mongodb.NewPatch()
	if input.Name != nil {
		patch.Set("name", *input.Name)
	}
	if input.Description != nil {
		patch.Set("description", *input.Description)
	}
	if input.Instructions != nil {
		patch.Set("instructions", *input.Instructions)
	}
	if input.Model != nil {
		patch.Set("model", *input.Model)
	}
	if input.ConversationStarters != nil {
		patch.Set("conversationStarters", *input.ConversationStarters)
	}
	if patch.IsEmpty() {
		// nothing to change; report whether the document exists
		count, err := repo.docs.CountDocuments(ctx, dbschema.CollectionCustomGPTs, bson.M{"_id": dbschema.ObjectIDFromHex(id)})
		return count > 0, err
	}
	return repo.updateByID(ctx, id, patch.Build())
}

func (repo *CustomGPTMongoRepository) MoveToFolder(ctx context.Context, id, folder string) (bool, error) {
	patch := mongodb.NewPatch()
	if folder == "" {
		patch.Unset("folder")
	} else {
		patch.Set("folder", folder)
	}
	return repo.updateByID(ctx, id, patch.Build())
}

func (repo *CustomGPTMongoRepository) AddAssignee(ctx context.Context, id, userID string) (bool, error) {
	return repo.updateByID(ctx, id, mongodb.NewPatch().AddToSet("assignedUserIds", userID).Build())
}

func (repo *CustomGPTMongoRepository) RemoveAssignee(ctx context.Context, id, userID string) (bool, error) {
	return repo.updateByID(ctx, id, mongodb.NewPatch().Pull("assignedUserIds", userID).Build())
}

func (repo *CustomGPTMongoRepository) ReplaceAssignees(ctx context.Context, id string, userIDs []string) (bool, error) {
	if userIDs == nil {
		userIDs = []string{}
	}
	// one $set keeps the swap atomic for concurrent readers
	return repo.updateByID(ctx, id, mongodb.NewPatch().Set("assignedUserIds", userIDs).Build())
}

func (repo *CustomGPTMongoRepository) AddKnowledgeFile(ctx context.Context, id string, file customgpt.KnowledgeFile) (bool, error) {
	return repo.updateByID(ctx, id, mongodb.NewPatch().Push("knowledgeFiles", dbschema.NewSchemaKnowledgeFile(file)).Build())
}

func (repo *CustomGPTMongoRepository) RemoveKnowledgeFile(ctx context.Context, id, fileID string) (bool, error) {
	return repo.updateByID(ctx, id, mongodb.NewPatch().Pull("knowledgeFiles", bson.M{"id": fileID}).Build())
}

func (repo *CustomGPTMongoRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"isActive": false})
}

func (repo *CustomGPTMongoRepository) list(ctx context.Context, filter bson.M, pagination query.Pagination) ([]*customgpt.CustomGPT, error) {
	var entities []dbschema.CustomGPT
	err := repo.docs.Find(ctx, dbschema.CollectionCustomGPTs, filter, &mongodb.FindOptions{
		Sort:  bson.D{{Key: mongodb.FieldCreatedAt, Value: pagination.SortValue()}},
		Limit: &pagination.Limit,
		Skip:  &pagination.Offset,
	}, &entities)
	if err != nil {
		return nil, err
	}

	gpts := make([]*customgpt.CustomGPT, 0, len(entities))
	for i := range entities {
		gpts = append(gpts, entities[i].EtoD())
	}
	return gpts, nil
}

func (repo *CustomGPTMongoRepository) updateByID(ctx context.Context, id string, update bson.M) (bool, error) {
	matched, err := repo.docs.UpdateOne(ctx, dbschema.CollectionCustomGPTs, bson.M{"_id": dbschema.ObjectIDFromHex(id)}, update)
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func activeFilter() bson.M {
	return bson.M{"isActive": true}
}

func assigneeFilter(userID string) bson.M {
	return bson.M{"isActive": true, "assignedUserIds": userID}
}
