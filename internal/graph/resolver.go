// Package graph defines the GraphQL schema and its resolvers. Every top-level
// operation is gated by the session's role; relational id lists are expanded
// at read time, one batched lookup per field, with nulls for broken
// references.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/auth"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/logger"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	FindByQuizID(ctx context.Context, quizID string) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateByID(ctx context.Context, id string, update bson.M) (*models.User, error)
	DeleteByID(ctx context.Context, id string) (*models.User, error)
}

type QuizRepository interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Quiz, error)
	FindAll(ctx context.Context) ([]*models.Quiz, error)
	FindByTimeRange(ctx context.Context, from, to time.Time) ([]*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	UpdateByID(ctx context.Context, id string, update bson.M) (*models.Quiz, error)
	DeleteByID(ctx context.Context, id string) (*models.Quiz, error)
}

type QuestionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Question, error)
	FindAll(ctx context.Context) ([]*models.Question, error)
	CreateMany(ctx context.Context, questions []*models.Question) ([]*models.Question, error)
	UpdateByID(ctx context.Context, id string, update bson.M) (*models.Question, error)
	DeleteByID(ctx context.Context, id string) (*models.Question, error)
}

// Publisher is the messaging surface used for quiz-publication events. A nil
// Publisher disables event fan-out.
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

type Resolver struct {
	users     UserRepository
	quizzes   QuizRepository
	questions QuestionRepository
	auth      *auth.Manager
	publisher Publisher

	log *logrus.Entry
}

func NewResolver(
	users UserRepository,
	quizzes QuizRepository,
	questions QuestionRepository,
	authManager *auth.Manager,
	publisher Publisher,
) *Resolver {
	return &Resolver{
		users:     users,
		quizzes:   quizzes,
		questions: questions,
		auth:      authManager,
		publisher: publisher,
		log:       logger.New("graph"),
	}
}

// requireRoles rejects the operation unless the request carries a live
// session whose role is one of roles.
func (r *Resolver) requireRoles(ctx context.Context, roles ...string) (*auth.RequestContext, error) {
	rc := auth.FromContext(ctx)
	if !r.auth.HasPermissions(rc, roles) {
		return nil, fmt.Errorf("%w: insufficient permissions", apperror.ErrAuthorization)
	}
	return rc, nil
}

// requireSession rejects the operation unless the request carries a live
// verified session, regardless of role. Used by registration.
func (r *Resolver) requireSession(ctx context.Context) (*auth.RequestContext, error) {
	rc := auth.FromContext(ctx)
	if rc == nil || rc.Session == nil || !r.auth.CheckSessionValid(rc.Session, rc.Token) {
		return nil, fmt.Errorf("%w: no active session", apperror.ErrAuthentication)
	}
	return rc, nil
}
