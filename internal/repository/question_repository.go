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

type QuestionRepository struct {
	collection *mongo.Collection
}

func NewQuestionRepository(client *database.MongoClient) *QuestionRepository {
	return &QuestionRepository{
		collection: client.Collection(database.QuestionsCollection),
	}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	question := &models.Question{}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: question %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return question, nil
}

// FindByIDs resolves ids in one query, positionally aligned with ids, nil for
// ids that match nothing. An empty list performs no lookup.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	if len(ids) == 0 {
		return []*models.Question{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": parseStoredIDs(ids)}})
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	var found []*models.Question
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	byID := make(map[string]*models.Question, len(found))
	for _, question := range found {
		byID[question.ID.Hex()] = question
	}

	questions := make([]*models.Question, len(ids))
	for i, id := range ids {
		questions[i] = byID[id]
	}
	return questions, nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]*models.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	questions := []*models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, nil
}

func (r *QuestionRepository) CreateMany(ctx context.Context, questions []*models.Question) ([]*models.Question, error) {
	if len(questions) == 0 {
		return []*models.Question{}, nil
	}

	docs := make([]interface{}, len(questions))
	for i, question := range questions {
		docs[i] = question
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to create questions: %w", err)
	}

	for i, insertedID := range result.InsertedIDs {
		questions[i].ID = insertedID.(primitive.ObjectID)
	}
	return questions, nil
}

func (r *QuestionRepository) UpdateByID(ctx context.Context, id string, update bson.M) (*models.Question, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	question := &models.Question{}
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: question %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, nil
}

func (r *QuestionRepository) DeleteByID(ctx context.Context, id string) (*models.Question, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	question := &models.Question{}
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: question %s", apperror.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete question: %w", err)
	}

	return question, nil
}
