package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agentdesk/internal/config"
	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/infrastructure"
	"agentdesk/internal/infrastructure/database/dbschema"
	"agentdesk/internal/utils/platformerrors"
)

// DataInitializer prepares the document store on startup: unique indexes
// first, then the optional bootstrap seed.
type DataInitializer struct {
	UserService *user.Service
	GPTService  *customgpt.Service
	Infra       *infrastructure.Infrastructure
	Logger      zerolog.Logger
}

func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.ensureIndexes(ctx); err != nil {
		return err
	}
	return d.seed(ctx)
}

func (d *DataInitializer) ensureIndexes(ctx context.Context) error {
	db, err := d.Infra.Mongo.Database(ctx)
	if err != nil {
		return err
	}

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		dbschema.CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		dbschema.CollectionCustomGPTs: {
			{Keys: bson.D{{Key: "assignedUserIds", Value: 1}}},
			{Keys: bson.D{{Key: "folder", Value: 1}}},
		},
		dbschema.CollectionConversations: {
			{Keys: bson.D{{Key: "publicId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		},
		dbschema.CollectionMessages: {
			{Keys: bson.D{{Key: "publicId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		dbschema.CollectionInvitations: {
			{Keys: bson.D{{Key: "tokenHash", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err,
				fmt.Sprintf("failed to create indexes on %q", collection))
		}
	}
	return nil
}

// seed creates the bootstrap admin and assistants on an empty store.
// It is a no-op when accounts already exist or no bootstrap file is set.
func (d *DataInitializer) seed(ctx context.Context) error {
	cfg := config.GetGlobal()
	bootstrap, err := config.LoadBootstrapConfig(cfg.BootstrapFile)
	if err != nil {
		return err
	}
	if bootstrap == nil || bootstrap.Admin == nil {
		return nil
	}

	existing, err := d.UserService.GetByEmail(ctx, bootstrap.Admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		d.Logger.Debug().Str("email", bootstrap.Admin.Email).Msg("bootstrap admin already present, skipping seed")
		return nil
	}

	admin, err := d.UserService.Register(ctx, user.RegisterInput{
		Name:     bootstrap.Admin.Name,
		Email:    bootstrap.Admin.Email,
		Password: bootstrap.Admin.Password,
		Role:     user.RoleAdmin,
		Verified: true,
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to seed bootstrap admin")
	}
	d.Logger.Info().Str("email", admin.Email).Msg("seeded bootstrap admin")

	for i := range bootstrap.GPTs {
		entry := bootstrap.GPTs[i]
		gpt, err := d.GPTService.Create(ctx, admin.ID, customgpt.CreateInput{
			Name:         entry.Name,
			Description:  entry.Description,
			Instructions: entry.Instructions,
			Model:        entry.Model,
			Folder:       entry.Folder,
		})
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err,
				fmt.Sprintf("failed to seed assistant %q", entry.Name))
		}
		d.Logger.Info().Str("gpt_id", gpt.ID).Str("name", gpt.Name).Msg("seeded bootstrap assistant")
	}

	return nil
}
