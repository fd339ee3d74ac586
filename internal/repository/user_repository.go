package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/database"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *database.MongoClient) *UserRepository {
	return &UserRepository{
		collection: client.Collection(database.UsersCollection),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// FindByIDs resolves ids in one query. The result is positionally aligned
// with ids; entries that match nothing are nil. An empty list performs no
// lookup.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": parseStoredIDs(ids)}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var found []*models.User
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	byID := make(map[string]*models.User, len(found))
	for _, user := range found {
		byID[user.ID.Hex()] = user
	}

	users := make([]*models.User, len(ids))
	for i, id := range ids {
		users[i] = byID[id]
	}
	return users, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	user := &models.User{}
	err := r.collection.FindOne(ctx, bson.M{"uid": uid}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: uid %s", apperror.ErrNotFound, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// FindByQuizID returns the users holding quizID in their quiz list.
func (r *UserRepository) FindByQuizID(ctx context.Context, quizID string) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"quizzes": quizID})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	result, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("%w: user already exists", apperror.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// UpdateByID applies update ($-operator document) and returns the updated
// user. A missing target is a distinct not-found error.
func (r *UserRepository) UpdateByID(ctx context.Context, id string, update bson.M) (*models.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("%w: duplicate unique field", apperror.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}
