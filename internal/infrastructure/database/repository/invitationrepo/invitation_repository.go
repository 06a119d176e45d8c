package invitationrepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"agentdesk/internal/domain/invitation"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/infrastructure/database/dbschema"
	"agentdesk/internal/infrastructure/database/mongodb"
)

type InvitationMongoRepository struct {
	docs *mongodb.Documents
}

var _ invitation.Repository = (*InvitationMongoRepository)(nil)

func NewInvitationMongoRepository(docs *mongodb.Documents) invitation.Repository {
	return &InvitationMongoRepository{docs: docs}
}

func (repo *InvitationMongoRepository) Create(ctx context.Context, inv *invitation.Invitation) (*invitation.Invitation, error) {
	id, err := repo.docs.InsertOne(ctx, dbschema.CollectionInvitations, dbschema.NewSchemaInvitation(inv))
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id.Hex())
}

func (repo *InvitationMongoRepository) FindByID(ctx context.Context, id string) (*invitation.Invitation, error) {
	return repo.findOne(ctx, bson.M{"_id": dbschema.ObjectIDFromHex(id)})
}

func (repo *InvitationMongoRepository) FindByTokenHash(ctx context.Context, hash string) (*invitation.Invitation, error) {
	return repo.findOne(ctx, bson.M{"tokenHash": hash})
}

func (repo *InvitationMongoRepository) FindPendingByEmail(ctx context.Context, email string) (*invitation.Invitation, error) {
	return repo.findOne(ctx, bson.M{"email": email, "status": invitation.StatusPending})
}

func (repo *InvitationMongoRepository) List(ctx context.Context, pagination query.Pagination) ([]*invitation.Invitation, error) {
	var entities []dbschema.Invitation
	err := repo.docs.Find(ctx, dbschema.CollectionInvitations, bson.M{}, &mongodb.FindOptions{
		Sort:  bson.D{{Key: mongodb.FieldCreatedAt, Value: pagination.SortValue()}},
		Limit: &pagination.Limit,
		Skip:  &pagination.Offset,
	}, &entities)
	if err != nil {
		return nil, err
	}

	invs := make([]*invitation.Invitation, 0, len(entities))
	for i := range entities {
		invs = append(invs, entities[i].EtoD())
	}
	return invs, nil
}

func (repo *InvitationMongoRepository) Count(ctx context.Context) (int64, error) {
	return repo.docs.CountDocuments(ctx, dbschema.CollectionInvitations, bson.M{})
}

func (repo *InvitationMongoRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	matched, err := repo.docs.UpdateOne(ctx, dbschema.CollectionInvitations, bson.M{"_id": dbschema.ObjectIDFromHex(id)}, bson.M{"status": status})
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *InvitationMongoRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":    invitation.StatusPending,
		"expiresAt": bson.M{"$lt": cutoff},
	}
	return repo.docs.UpdateMany(ctx, dbschema.CollectionInvitations, filter, bson.M{"status": invitation.StatusExpired})
}

func (repo *InvitationMongoRepository) findOne(ctx context.Context, filter bson.M) (*invitation.Invitation, error) {
	var entity dbschema.Invitation
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionInvitations, filter, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}
