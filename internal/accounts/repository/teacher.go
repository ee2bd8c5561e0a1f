package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tutorbook/pkg/config"
	"tutorbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	CreateMany(ctx context.Context, teachers []*model.Teacher) error
	FindByID(ctx context.Context, id string) (*model.Teacher, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Teacher, error)
	Search(ctx context.Context, query string) ([]*model.Teacher, error)
	Count(ctx context.Context) (int64, error)
	FindCredentials(ctx context.Context, email string) (*model.Credentials, error)
}

type mongoTeacherRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTeacherRepository(cfg *config.Config) TeacherRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTeacherRepository{
		cfg:        cfg,
		collection: db.Collection(TeachersCollection),
	}
}

func (r *mongoTeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	teacher.Email = strings.ToLower(teacher.Email)
	teacher.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, teacher)
	if err != nil {
		return translateInsertError(TeachersCollection, err)
	}

	teacher.ID = insertedHex(result)
	return nil
}

func (r *mongoTeacherRepository) CreateMany(ctx context.Context, teachers []*model.Teacher) error {
	if len(teachers) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(teachers))
	for _, t := range teachers {
		t.Email = strings.ToLower(t.Email)
		t.CreatedAt = now
		docs = append(docs, t)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return translateInsertError(TeachersCollection, err)
	}

	for i, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(teachers) {
			teachers[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *mongoTeacherRepository) FindByID(ctx context.Context, id string) (*model.Teacher, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Teacher](ctx, r.collection, bson.M{"_id": oid},
		options.FindOne().SetProjection(withoutPassword))
}

func (r *mongoTeacherRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Teacher, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*model.Teacher{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findMany[model.Teacher](ctx, r.collection, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(withoutPassword))
}

// Search returns teachers ordered by name. A non-empty query is matched
// literally and case-insensitively against name or subject.
func (r *mongoTeacherRepository) Search(ctx context.Context, query string) ([]*model.Teacher, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[model.Teacher](ctx, r.collection, searchFilter(query), opts)
}

// searchFilter matches query as a literal, case-insensitive substring of
// name or subject. An empty query matches every teacher.
func searchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"subject": pattern},
	}}
}

func (r *mongoTeacherRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}
	return count, nil
}

func (r *mongoTeacherRepository) FindCredentials(ctx context.Context, email string) (*model.Credentials, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findOne[model.Credentials](ctx, r.collection, bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(credentialsOnly))
}
