package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/database"
)

type QuizRepository struct {
	collection *mongo.Collection
}

func NewQuizRepository(client *database.MongoClient) *QuizRepository {
	return &QuizRepository{
		collection: client.Collection(database.QuizzesCollection),
	}
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: quiz %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz, nil
}

// FindByIDs resolves ids in one query, positionally aligned with ids, nil for
// ids that match nothing. An empty list performs no lookup.
func (r *QuizRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Quiz, error) {
	if len(ids) == 0 {
		return []*models.Quiz{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": parseStoredIDs(ids)}})
	if err != nil {
		return nil, fmt.Errorf("failed to find quizzes: %w", err)
	}

	var found []*models.Quiz
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode quizzes: %w", err)
	}

	byID := make(map[string]*models.Quiz, len(found))
	for _, quiz := range found {
		byID[quiz.ID.Hex()] = quiz
	}

	quizzes := make([]*models.Quiz, len(ids))
	for i, id := range ids {
		quizzes[i] = byID[id]
	}
	return quizzes, nil
}

func (r *QuizRepository) FindAll(ctx context.Context) ([]*models.Quiz, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find quizzes: %w", err)
	}

	quizzes := []*models.Quiz{}
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, fmt.Errorf("failed to decode quizzes: %w", err)
	}
	return quizzes, nil
}

// FindByTimeRange returns quizzes whose start time falls inside [from, to],
// soonest first.
func (r *QuizRepository) FindByTimeRange(ctx context.Context, from, to time.Time) ([]*models.Quiz, error) {
	filter := bson.M{"startTime": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find quizzes: %w", err)
	}

	quizzes := []*models.Quiz{}
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, fmt.Errorf("failed to decode quizzes: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	result, err := r.collection.InsertOne(ctx, quiz)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	quiz.ID = result.InsertedID.(primitive.ObjectID)
	return quiz, nil
}

func (r *QuizRepository) UpdateByID(ctx context.Context, id string, update bson.M) (*models.Quiz, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{}
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: quiz %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	return quiz, nil
}

func (r *QuizRepository) DeleteByID(ctx context.Context, id string) (*models.Quiz, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{}
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: quiz %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete quiz: %w", err)
	}

	return quiz, nil
}
