package conversationrepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"agentdesk/internal/domain/conversation"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/infrastructure/database/dbschema"
	"agentdesk/internal/infrastructure/database/mongodb"
)

type ConversationMongoRepository struct {
	docs *mongodb.Documents
}

var _ conversation.Repository = (*ConversationMongoRepository)(nil)

func NewConversationMongoRepository(docs *mongodb.Documents) conversation.Repository {
	return &ConversationMongoRepository{docs: docs}
}

func (repo *ConversationMongoRepository) CreateConversation(ctx context.Context, conv *conversation.Conversation) (*conversation.Conversation, error) {
	id, err := repo.docs.InsertOne(ctx, dbschema.CollectionConversations, dbschema.NewSchemaConversation(conv))
	if err != nil {
		return nil, err
	}

	var entity dbschema.Conversation
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionConversations, bson.M{"_id": id}, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}

func (repo *ConversationMongoRepository) FindConversationByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionConversations, bson.M{"publicId": publicID}, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}

func (repo *ConversationMongoRepository) ListConversationsByUser(ctx context.Context, userID string, pagination query.Pagination) ([]*conversation.Conversation, error) {
	var entities []dbschema.Conversation
	err := repo.docs.Find(ctx, dbschema.CollectionConversations, ownerFilter(userID), &mongodb.FindOptions{
		Sort:  bson.D{{Key: mongodb.FieldUpdatedAt, Value: pagination.SortValue()}},
		Limit: &pagination.Limit,
		Skip:  &pagination.Offset,
	}, &entities)
	if err != nil {
		return nil, err
	}

	convs := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		convs = append(convs, entities[i].EtoD())
	}
	return convs, nil
}

func (repo *ConversationMongoRepository) CountConversationsByUser(ctx context.Context, userID string) (int64, error) {
	return repo.docs.CountDocuments(ctx, dbschema.CollectionConversations, ownerFilter(userID))
}

func (repo *ConversationMongoRepository) UpdateTitle(ctx context.Context, id, title string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"title": title})
}

func (repo *ConversationMongoRepository) UpdateLastMessage(ctx context.Context, id string, summary conversation.MessageSummary) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"lastMessage": dbschema.MessageSummary{
		Role:      summary.Role,
		Content:   summary.Content,
		CreatedAt: summary.CreatedAt,
	}})
}

func (repo *ConversationMongoRepository) DeactivateConversation(ctx context.Context, id string) (bool, error) {
	return repo.updateByID(ctx, id, bson.M{"isActive": false})
}

func (repo *ConversationMongoRepository) CreateMessage(ctx context.Context, msg *conversation.Message) (*conversation.Message, error) {
	id, err := repo.docs.InsertOne(ctx, dbschema.CollectionMessages, dbschema.NewSchemaMessage(msg))
	if err != nil {
		return nil, err
	}

	var entity dbschema.Message
	found, err := repo.docs.FindOne(ctx, dbschema.CollectionMessages, bson.M{"_id": id}, &entity)
	if err != nil || !found {
		return nil, err
	}
	return entity.EtoD(), nil
}

func (repo *ConversationMongoRepository) ListMessages(ctx context.Context, conversationID string, pagination query.Pagination) ([]*conversation.Message, error) {
	var entities []dbschema.Message
	// BSON datetimes carry millisecond precision, so the two messages of one
	// exchange usually land on the same createdAt. The _id tiebreaker keeps
	// insertion order between them.
	err := repo.docs.Find(ctx, dbschema.CollectionMessages, bson.M{"conversationId": conversationID}, &mongodb.FindOptions{
		Sort: bson.D{
			{Key: mongodb.FieldCreatedAt, Value: pagination.SortValue()},
			{Key: "_id", Value: pagination.SortValue()},
		},
		Limit: &pagination.Limit,
		Skip:  &pagination.Offset,
	}, &entities)
	if err != nil {
		return nil, err
	}

	msgs := make([]*conversation.Message, 0, len(entities))
	for i := range entities {
		msgs = append(msgs, entities[i].EtoD())
	}
	return msgs, nil
}

func (repo *ConversationMongoRepository) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	return repo.docs.CountDocuments(ctx, dbschema.CollectionMessages, bson.M{"conversationId": conversationID})
}

func (repo *ConversationMongoRepository) updateByID(ctx context.Context, id string, update bson.M) (bool, error) {
	matched, err := repo.docs.UpdateOne(ctx, dbschema.CollectionConversations, bson.M{"_id": dbschema.ObjectIDFromHex(id)}, update)
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func ownerFilter(userID string) bson.M {
	return bson.M{"userId": userID, "isActive": true}
}
