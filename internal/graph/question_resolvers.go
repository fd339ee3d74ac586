package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"golang.org/x/sync/errgroup"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/auth"
	"github.com/dscnitrourkela/project-nutella/internal/models"
)

// GetQuestions returns the questions for ids, positionally aligned, null for
// missing ids. An empty id list returns every question. Admin only: the
// payload carries answers and marks.
func (r *Resolver) GetQuestions(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	ids := stringList(p.Args["ids"])
	if len(ids) == 0 {
		return r.questions.FindAll(p.Context)
	}

	if err := validateIDs(ids); err != nil {
		return nil, err
	}
	return r.questions.FindByIDs(p.Context, ids)
}

// GetQuestionsForQuiz returns one question list per quiz id, quiz rows
// positionally aligned with the input, null rows for missing quizzes. The
// per-quiz expansions run concurrently.
func (r *Resolver) GetQuestionsForQuiz(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, err
	}

	ids := stringList(p.Args["ids"])
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}
	if err := validateIDs(ids); err != nil {
		return nil, err
	}

	quizzes, err := r.quizzes.FindByIDs(p.Context, ids)
	if err != nil {
		return nil, err
	}

	results := make([][]*models.Question, len(quizzes))
	group, ctx := errgroup.WithContext(p.Context)
	for i, quiz := range quizzes {
		if quiz == nil {
			continue
		}

		i := i
		questionIDs := quiz.Questions
		group.Go(func() error {
			if len(questionIDs) == 0 {
				results[i] = []*models.Question{}
				return nil
			}

			questions, err := r.questions.FindByIDs(ctx, questionIDs)
			if err != nil {
				return err
			}
			results[i] = questions
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Resolver) CreateQuestions(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	details := mapList(p.Args["questionDetails"])
	if len(details) == 0 {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	questions := make([]*models.Question, len(details))
	for i, detail := range details {
		in := decodeQuestionInput(detail)
		if in.Question == "" || len(in.Options) == 0 || in.Answer == "" || in.Explanation == "" {
			return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
		}
		if in.PositiveMark <= 0 {
			return nil, fmt.Errorf("%w: positive mark must be positive", apperror.ErrValidation)
		}
		if in.NegativeMark < 0 {
			return nil, fmt.Errorf("%w: negative mark cannot be negative", apperror.ErrValidation)
		}

		questions[i] = &models.Question{
			Question:     in.Question,
			Image:        in.Image,
			Options:      in.Options,
			Answer:       in.Answer,
			PositiveMark: in.PositiveMark,
			NegativeMark: in.NegativeMark,
			Explanation:  in.Explanation,
		}
	}

	return r.questions.CreateMany(p.Context, questions)
}

// UpdateQuestions applies one filtered merge per entry and returns the
// updated questions. A missing target aborts the whole batch.
func (r *Resolver) UpdateQuestions(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	updates := mapList(p.Args["questionUpdates"])
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	questions := make([]*models.Question, len(updates))
	for i, entry := range updates {
		id := stringValue(entry, "id")
		details, ok := entry["questionDetails"].(map[string]interface{})
		if id == "" || !ok {
			return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
		}

		update := decodeQuestionInput(details).update()
		if emptyUpdate(update) {
			return nil, fmt.Errorf("%w: nothing to update for question %s", apperror.ErrValidation, id)
		}

		question, err := r.questions.UpdateByID(p.Context, id, update)
		if err != nil {
			return nil, err
		}
		questions[i] = question
	}

	return questions, nil
}

// DeleteQuestions deletes each id and returns the deleted questions. A
// missing target aborts the batch with a not-found error.
func (r *Resolver) DeleteQuestions(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	ids := stringList(p.Args["ids"])
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}
	if err := validateIDs(ids); err != nil {
		return nil, err
	}

	questions := make([]*models.Question, len(ids))
	for i, id := range ids {
		question, err := r.questions.DeleteByID(p.Context, id)
		if err != nil {
			return nil, err
		}
		questions[i] = question
	}

	return questions, nil
}

// Logout ends the current session and reports whether one was ended.
func (r *Resolver) Logout(p graphql.ResolveParams) (interface{}, error) {
	rc := auth.FromContext(p.Context)
	if rc == nil || rc.Session == nil {
		return false, nil
	}
	return r.auth.EndSession(p.Context, rc.Session, rc.Token), nil
}
