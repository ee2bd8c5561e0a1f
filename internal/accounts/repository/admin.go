package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tutorbook/pkg/config"
	"tutorbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminRepository interface {
	// Upsert creates the admin or refreshes its name and password hash,
	// keyed by email.
	Upsert(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindCredentials(ctx context.Context, email string) (*model.Credentials, error)
}

type mongoAdminRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdminRepository(cfg *config.Config) AdminRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAdminRepository{
		cfg:        cfg,
		collection: db.Collection(AdminsCollection),
	}
}

func (r *mongoAdminRepository) Upsert(ctx context.Context, admin *model.Admin) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	admin.Email = strings.ToLower(admin.Email)
	update := bson.M{
		"$set": bson.M{
			"name":          admin.Name,
			"password_hash": admin.PasswordHash,
		},
		"$setOnInsert": bson.M{
			"created_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var stored model.Admin
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": admin.Email}, update, opts).Decode(&stored)
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", err)
	}

	admin.ID = stored.ID
	admin.CreatedAt = stored.CreatedAt
	return nil
}

func (r *mongoAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Admin](ctx, r.collection, bson.M{"_id": oid},
		options.FindOne().SetProjection(withoutPassword))
}

func (r *mongoAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findOne[model.Admin](ctx, r.collection, bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(withoutPassword))
}

func (r *mongoAdminRepository) FindCredentials(ctx context.Context, email string) (*model.Credentials, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findOne[model.Credentials](ctx, r.collection, bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(credentialsOnly))
}
