package repository

import (
	"context"
	"strings"
	"time"

	"tutorbook/pkg/config"
	"tutorbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id string) (*model.Student, error)
	FindByEmail(ctx context.Context, email string) (*model.Student, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Student, error)
	FindAll(ctx context.Context) ([]*model.Student, error)
	FindCredentials(ctx context.Context, email string) (*model.Credentials, error)
}

type mongoStudentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStudentRepository(cfg *config.Config) StudentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStudentRepository{
		cfg:        cfg,
		collection: db.Collection(StudentsCollection),
	}
}

func (r *mongoStudentRepository) Create(ctx context.Context, student *model.Student) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	student.Email = strings.ToLower(student.Email)
	student.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		return translateInsertError(StudentsCollection, err)
	}

	student.ID = insertedHex(result)
	return nil
}

func (r *mongoStudentRepository) FindByID(ctx context.Context, id string) (*model.Student, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Student](ctx, r.collection, bson.M{"_id": oid},
		options.FindOne().SetProjection(withoutPassword))
}

func (r *mongoStudentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findOne[model.Student](ctx, r.collection, bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(withoutPassword))
}

func (r *mongoStudentRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Student, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*model.Student{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findMany[model.Student](ctx, r.collection, bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(withoutPassword))
}

func (r *mongoStudentRepository) FindAll(ctx context.Context) ([]*model.Student, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[model.Student](ctx, r.collection, bson.M{}, opts)
}

func (r *mongoStudentRepository) FindCredentials(ctx context.Context, email string) (*model.Credentials, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return findOne[model.Credentials](ctx, r.collection, bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(credentialsOnly))
}
