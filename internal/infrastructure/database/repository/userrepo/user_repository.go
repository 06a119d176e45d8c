package userrepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"agentdesk/internal/domain/query"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/infrastructure/database/dbschema"
	"agentdesk/internal/infrastructure/database/mongodb"
)

type UserMongoRepository struct {
	docs *mongodb.Documents
}

var _ user.Repository = (*UserMongoRepository)(nil)

func NewUserMongoRepository(docs *mongodb.Documents) user.Repository {
	return &UserMongoRepository{docs: docs}
}

func (repo *UserMongoRepository) Create(ctx context.Context, usr *user.User) (*user.User, error) {
	id, err := repo.docs.InsertOne(ctx, dbschema.CollectionUsers, dbschema.NewSchemaUser(usr))
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id.Hex())
}

func (repo *UserMongoRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var entity dbschema.User
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionUsers, bson.M{"_id": dbschema.ObjectIDFromHex(id)}, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}

func (repo *UserMongoRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity dbschema.User
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionUsers, bson.M{"email": email}, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}

func (repo *UserMongoRepository) List(ctx context.Context, pagination query.Pagination) ([]*user.User, error) {
	var entities []dbschema.User
	err := repo.docs.Find(ctx, dbschema.CollectionUsers, activeFilter(), &mongodb.FindOptions{
		Sort:  bson.D{{Key: mongodb.FieldCreatedAt, Value: pagination.SortValue()}},
		Limit: &pagination.Limit,
		Skip:  &pagination.Offset,
	}, &entities)
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(entities))
	for i := range entities {
		users = append(users, entities[i].EtoD())
	}
	return users, nil
}

func (repo *UserMongoRepository) Count(ctx context.Context) (int64, error) {
	return repo.docs.CountDocuments(ctx, dbschema.CollectionUsers, activeFilter())
}

func (repo *UserMongoRepository) UpdateProfile(ctx context.Context, id string, input user.ProfileUpdate) (bool, error) {
	patch := mongodb.NewPatch().Set("name", input.Name)
	if input.ProfilePictureID != nil {
		if *input.ProfilePictureID == "" {
			patch.Unset("profilePictureId")
		} else {
			patch.Set("profilePictureId", *input.ProfilePictureID)
		}
	}
	return repo.updateByID(ctx, id, patch.Build())
}

func (repo *UserMongoRepository) UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"passwordHash": hash})
}

func (repo *UserMongoRepository) UpdateRole(ctx context.Context, id, role string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"role": role})
}

func (repo *UserMongoRepository) UpdateAPIKey(ctx context.Context, id, provider, encrypted string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"apiKeys." + provider: encrypted})
}

func (repo *UserMongoRepository) RemoveAPIKey(ctx context.Context, id, provider string) (bool, error) {
	return repo.updateByID(ctx, id, mongodb.NewPatch().Unset("apiKeys."+provider).Build())
}

func (repo *UserMongoRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"isActive": false})
}

func (repo *UserMongoRepository) updateByID(ctx context.Context, id string, update bson.M) (bool, error) {
	matched, err := repo.docs.UpdateOne(ctx, dbschema.CollectionUsers, bson.M{"_id": dbschema.ObjectIDFromHex(id)}, update)
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func activeFilter() bson.M {
	return bson.M{"isActive": true}
}
