package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	lookups int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, user := range users {
		if user.ID.IsZero() {
			user.ID = primitive.NewObjectID()
		}
		repo.users[user.ID.Hex()] = user
	}
	return repo
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
	}
	return user, nil
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	users := make([]*models.User, len(ids))
	for i, id := range ids {
		users[i] = f.users[id]
	}
	return users, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	users := []*models.User{}
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) FindByUID(_ context.Context, uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	for _, user := range f.users {
		if user.UID == uid {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: uid %s", apperror.ErrNotFound, uid)
}

func (f *fakeUserRepo) FindByQuizID(_ context.Context, quizID string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := []*models.User{}
	for _, user := range f.users {
		for _, id := range user.Quizzes {
			if id == quizID {
				users = append(users, user)
				break
			}
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email || existing.UID == user.UID {
			return nil, fmt.Errorf("%w: user already exists", apperror.ErrValidation)
		}
	}

	user.ID = primitive.NewObjectID()
	f.users[user.ID.Hex()] = user
	return user, nil
}

func (f *fakeUserRepo) UpdateByID(_ context.Context, id string, update bson.M) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
	}

	set, _ := update["$set"].(bson.M)
	for key, value := range set {
		switch key {
		case "name":
			user.Name = value.(string)
		case "email":
			user.Email = value.(string)
		case "phoneNo":
			user.PhoneNo = value.(string)
		case "rollNo":
			user.RollNo = value.(string)
		case "fcmToken":
			user.FCMToken = value.([]string)
		case "quizzes":
			user.Quizzes = value.([]string)
		}
	}
	return user, nil
}

func (f *fakeUserRepo) DeleteByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
	}
	delete(f.users, id)
	return user, nil
}

type fakeQuizRepo struct {
	mu      sync.Mutex
	quizzes map[string]*models.Quiz
	lookups int
}

func newFakeQuizRepo(quizzes ...*models.Quiz) *fakeQuizRepo {
	repo := &fakeQuizRepo{quizzes: make(map[string]*models.Quiz)}
	for _, quiz := range quizzes {
		if quiz.ID.IsZero() {
			quiz.ID = primitive.NewObjectID()
		}
		repo.quizzes[quiz.ID.Hex()] = quiz
	}
	return repo
}

func (f *fakeQuizRepo) FindByID(_ context.Context, id string) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("%w: quiz %s", apperror.ErrNotFound, id)
	}
	copied := *quiz
	return &copied, nil
}

func (f *fakeQuizRepo) FindByIDs(_ context.Context, ids []string) ([]*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	quizzes := make([]*models.Quiz, len(ids))
	for i, id := range ids {
		quizzes[i] = f.quizzes[id]
	}
	return quizzes, nil
}

func (f *fakeQuizRepo) FindAll(_ context.Context) ([]*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	quizzes := []*models.Quiz{}
	for _, quiz := range f.quizzes {
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func (f *fakeQuizRepo) FindByTimeRange(_ context.Context, from, to time.Time) ([]*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quizzes := []*models.Quiz{}
	for _, quiz := range f.quizzes {
		if !quiz.StartTime.Before(from) && !quiz.StartTime.After(to) {
			quizzes = append(quizzes, quiz)
		}
	}
	return quizzes, nil
}

func (f *fakeQuizRepo) Create(_ context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quiz.ID = primitive.NewObjectID()
	f.quizzes[quiz.ID.Hex()] = quiz
	return quiz, nil
}

func (f *fakeQuizRepo) UpdateByID(_ context.Context, id string, update bson.M) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("%w: quiz %s", apperror.ErrNotFound, id)
	}

	set, _ := update["$set"].(bson.M)
	for key, value := range set {
		switch key {
		case "name":
			quiz.Name = value.(string)
		case "startTime":
			quiz.StartTime = value.(time.Time)
		case "endTime":
			quiz.EndTime = value.(time.Time)
		case "questions":
			quiz.Questions = value.([]string)
		case "instructions":
			quiz.Instructions = value.([]string)
		case "submissions":
			quiz.Submissions = value.([]models.Submission)
		case "active":
			quiz.Active = value.(bool)
		}
	}
	return quiz, nil
}

func (f *fakeQuizRepo) DeleteByID(_ context.Context, id string) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("%w: quiz %s", apperror.ErrNotFound, id)
	}
	delete(f.quizzes, id)
	return quiz, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*models.Question
	lookups   int
}

func newFakeQuestionRepo(questions ...*models.Question) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{questions: make(map[string]*models.Question)}
	for _, question := range questions {
		if question.ID.IsZero() {
			question.ID = primitive.NewObjectID()
		}
		repo.questions[question.ID.Hex()] = question
	}
	return repo
}

func (f *fakeQuestionRepo) FindByID(_ context.Context, id string) (*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	question, ok := f.questions[id]
	if !ok {
		return nil, fmt.Errorf("%w: question %s", apperror.ErrNotFound, id)
	}
	return question, nil
}

func (f *fakeQuestionRepo) FindByIDs(_ context.Context, ids []string) ([]*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	questions := make([]*models.Question, len(ids))
	for i, id := range ids {
		questions[i] = f.questions[id]
	}
	return questions, nil
}

func (f *fakeQuestionRepo) FindAll(_ context.Context) ([]*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	questions := []*models.Question{}
	for _, question := range f.questions {
		questions = append(questions, question)
	}
	return questions, nil
}

func (f *fakeQuestionRepo) CreateMany(_ context.Context, questions []*models.Question) ([]*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, question := range questions {
		question.ID = primitive.NewObjectID()
		f.questions[question.ID.Hex()] = question
	}
	return questions, nil
}

func (f *fakeQuestionRepo) UpdateByID(_ context.Context, id string, update bson.M) (*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	question, ok := f.questions[id]
	if !ok {
		return nil, fmt.Errorf("%w: question %s", apperror.ErrNotFound, id)
	}

	set, _ := update["$set"].(bson.M)
	for key, value := range set {
		switch key {
		case "question":
			question.Question = value.(string)
		case "image":
			question.Image = value.(string)
		case "options":
			question.Options = value.([]string)
		case "answer":
			question.Answer = value.(string)
		case "positiveMark":
			question.PositiveMark = value.(float64)
		case "negativeMark":
			question.NegativeMark = value.(float64)
		case "explanation":
			question.Explanation = value.(string)
		}
	}
	return question, nil
}

func (f *fakeQuestionRepo) DeleteByID(_ context.Context, id string) (*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	question, ok := f.questions[id]
	if !ok {
		return nil, fmt.Errorf("%w: question %s", apperror.ErrNotFound, id)
	}
	delete(f.questions, id)
	return question, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	queues []string
	bodies [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, queueName string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queues = append(f.queues, queueName)
	f.bodies = append(f.bodies, body)
	return nil
}
