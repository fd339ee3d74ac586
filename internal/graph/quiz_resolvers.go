package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
)

const quizPublishedQueue = "quiz.published"

// quizPublishedEvent is fanned out over the message queue when a quiz goes
// active, carrying the device tokens of every user holding the quiz.
type quizPublishedEvent struct {
	QuizID    string    `json:"quizId"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	FCMTokens []string  `json:"fcmTokens"`
}

// submission pairs a resolved user (null when the reference is broken) with
// the marks from the stored submission entry.
type submission struct {
	User  *models.User `json:"user"`
	Marks float64      `json:"marks"`
}

// GetQuizzes returns the quizzes for ids, positionally aligned, null for
// missing ids. An empty id list returns every quiz.
func (r *Resolver) GetQuizzes(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, err
	}

	ids := stringList(p.Args["ids"])
	if len(ids) == 0 {
		return r.quizzes.FindAll(p.Context)
	}

	if err := validateIDs(ids); err != nil {
		return nil, err
	}
	return r.quizzes.FindByIDs(p.Context, ids)
}

// GetQuizzesByTime returns the quizzes starting inside [from, to].
func (r *Resolver) GetQuizzesByTime(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, err
	}

	from, fromOK := p.Args["from"].(time.Time)
	to, toOK := p.Args["to"].(time.Time)
	if !fromOK || !toOK {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to precedes from", apperror.ErrValidation)
	}

	return r.quizzes.FindByTimeRange(p.Context, from, to)
}

func (r *Resolver) CreateQuiz(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	details, ok := p.Args["quizDetails"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	in := decodeQuizInput(details)
	if in.Name == "" || in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}
	if in.EndTime.Before(in.StartTime) {
		return nil, fmt.Errorf("%w: end time precedes start time", apperror.ErrValidation)
	}
	if err := validateIDs(in.Questions); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		Name:         in.Name,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Questions:    emptyIfNil(in.Questions),
		Instructions: emptyIfNil(in.Instructions),
		Submissions:  []models.Submission{},
		Active:       in.Active != nil && *in.Active,
	}

	created, err := r.quizzes.Create(p.Context, quiz)
	if err != nil {
		return nil, err
	}

	if created.Active {
		r.publishQuizPublished(p.Context, created)
	}
	return created, nil
}

// UpdateQuiz merges the supplied fields into the quiz. A transition from
// inactive to active publishes the quiz to subscribed devices.
func (r *Resolver) UpdateQuiz(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	id, _ := p.Args["quizId"].(string)
	details, ok := p.Args["quizDetails"].(map[string]interface{})
	if id == "" || !ok {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	in := decodeQuizInput(details)
	update := in.update()
	if emptyUpdate(update) {
		return nil, fmt.Errorf("%w: nothing to update", apperror.ErrValidation)
	}

	previous, err := r.quizzes.FindByID(p.Context, id)
	if err != nil {
		return nil, err
	}

	// The merged window must stay ordered even when only one bound changes.
	startTime := previous.StartTime
	if !in.StartTime.IsZero() {
		startTime = in.StartTime
	}
	endTime := previous.EndTime
	if !in.EndTime.IsZero() {
		endTime = in.EndTime
	}
	if endTime.Before(startTime) {
		return nil, fmt.Errorf("%w: end time precedes start time", apperror.ErrValidation)
	}

	updated, err := r.quizzes.UpdateByID(p.Context, id, update)
	if err != nil {
		return nil, err
	}

	if !previous.Active && updated.Active {
		r.publishQuizPublished(p.Context, updated)
	}
	return updated, nil
}

func (r *Resolver) DeleteQuiz(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	id, _ := p.Args["quizId"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	return r.quizzes.DeleteByID(p.Context, id)
}

// QuizQuestions expands the quiz's question-id list, positionally aligned,
// null for broken references. An empty list performs no lookup.
func (r *Resolver) QuizQuestions(p graphql.ResolveParams) (interface{}, error) {
	quiz, ok := p.Source.(*models.Quiz)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected source type", apperror.ErrUnexpected)
	}

	if len(quiz.Questions) == 0 {
		return []*models.Question{}, nil
	}
	return r.questions.FindByIDs(p.Context, quiz.Questions)
}

// QuizSubmissions expands each stored (user id, marks) pair into the resolved
// user and the original marks, positionally aligned.
func (r *Resolver) QuizSubmissions(p graphql.ResolveParams) (interface{}, error) {
	quiz, ok := p.Source.(*models.Quiz)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected source type", apperror.ErrUnexpected)
	}

	if len(quiz.Submissions) == 0 {
		return []*submission{}, nil
	}

	ids := make([]string, len(quiz.Submissions))
	for i, sub := range quiz.Submissions {
		ids[i] = sub.UserID
	}

	users, err := r.users.FindByIDs(p.Context, ids)
	if err != nil {
		return nil, err
	}

	submissions := make([]*submission, len(quiz.Submissions))
	for i, sub := range quiz.Submissions {
		submissions[i] = &submission{User: users[i], Marks: sub.Marks}
	}
	return submissions, nil
}

// publishQuizPublished fans the publication event out to the message queue.
// Failures are logged, never surfaced to the mutation.
func (r *Resolver) publishQuizPublished(ctx context.Context, quiz *models.Quiz) {
	if r.publisher == nil {
		return
	}

	users, err := r.users.FindByQuizID(ctx, quiz.ID.Hex())
	if err != nil {
		r.log.Errorf("failed to collect users for quiz %s: %v", quiz.ID.Hex(), err)
		return
	}

	tokens := []string{}
	for _, user := range users {
		tokens = append(tokens, user.FCMToken...)
	}

	body, err := json.Marshal(quizPublishedEvent{
		QuizID:    quiz.ID.Hex(),
		Name:      quiz.Name,
		StartTime: quiz.StartTime,
		EndTime:   quiz.EndTime,
		FCMTokens: tokens,
	})
	if err != nil {
		r.log.Errorf("failed to encode publish event: %v", err)
		return
	}

	if err := r.publisher.Publish(ctx, quizPublishedQueue, body); err != nil {
		r.log.Errorf("failed to publish quiz %s: %v", quiz.ID.Hex(), err)
	}
}
