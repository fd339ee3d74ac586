package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dscnitrourkela/project-nutella/internal/apperror"
	"github.com/dscnitrourkela/project-nutella/internal/models"
	"github.com/dscnitrourkela/project-nutella/pkg/validator"
)

func validateIDs(ids []string) error {
	for _, id := range ids {
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return fmt.Errorf("%w: malformed id %q", apperror.ErrValidation, id)
		}
	}
	return nil
}

func emptyUpdate(update bson.M) bool {
	set, _ := update["$set"].(bson.M)
	return len(set) == 0
}

// GetUsers returns the users for ids, positionally aligned, null for missing
// ids. An empty id list returns every user.
func (r *Resolver) GetUsers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, err
	}

	ids := stringList(p.Args["ids"])
	if len(ids) == 0 {
		return r.users.FindAll(p.Context)
	}

	if err := validateIDs(ids); err != nil {
		return nil, err
	}
	return r.users.FindByIDs(p.Context, ids)
}

// Me returns the user bound to the live session, or null while registration
// is still pending.
func (r *Resolver) Me(p graphql.ResolveParams) (interface{}, error) {
	rc, err := r.requireSession(p.Context)
	if err != nil {
		return nil, err
	}

	var user *models.User
	if mdbid := rc.Session.Auth.MDBID; mdbid != "" {
		user, err = r.users.FindByID(p.Context, mdbid)
	} else {
		user, err = r.users.FindByUID(p.Context, rc.Session.Auth.UID)
	}

	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser registers the session's verified identity as a User. Any live
// session may register; the session record is then re-pointed at the new
// user.
func (r *Resolver) CreateUser(p graphql.ResolveParams) (interface{}, error) {
	rc, err := r.requireSession(p.Context)
	if err != nil {
		return nil, err
	}

	details, ok := p.Args["userDetails"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	in := decodeUserInput(details)
	if in.Name == "" || in.Email == "" || in.PhoneNo == "" || in.RollNo == "" {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}
	if err := validator.ValidateEmail(in.Email); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	if err := validator.ValidatePhoneNo(in.PhoneNo); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    validator.NormalizeEmail(in.Email),
		PhoneNo:  in.PhoneNo,
		RollNo:   in.RollNo,
		UID:      rc.Session.Auth.UID,
		FCMToken: emptyIfNil(in.FCMToken),
		Quizzes:  emptyIfNil(in.Quizzes),
	}

	created, err := r.users.Create(p.Context, user)
	if err != nil {
		return nil, err
	}

	// Development sessions keep their synthesized admin identity.
	if !r.auth.IsDevSession(rc.Session) {
		rc.Session.Auth.MDBID = created.ID.Hex()
		rc.Session.Auth.Role = models.RoleUser
		if rc.Session.Auth.Claims != nil {
			rc.Session.Auth.Claims.MDBID = created.ID.Hex()
		}
		if err := rc.Session.Save(p.Context); err != nil {
			r.log.Errorf("failed to persist session after registration: %v", err)
		}
	}

	return created, nil
}

// UpdateUser merges the supplied fields into the user. Only non-empty fields
// are written.
func (r *Resolver) UpdateUser(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, err
	}

	id, _ := p.Args["userId"].(string)
	details, ok := p.Args["userDetails"].(map[string]interface{})
	if id == "" || !ok {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	update := decodeUserInput(details).update()
	if emptyUpdate(update) {
		return nil, fmt.Errorf("%w: nothing to update", apperror.ErrValidation)
	}

	return r.users.UpdateByID(p.Context, id, update)
}

func (r *Resolver) DeleteUser(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireRoles(p.Context, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, err
	}

	id, _ := p.Args["userId"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: missing parameters", apperror.ErrValidation)
	}

	return r.users.DeleteByID(p.Context, id)
}

// UserQuizzes expands the user's quiz-id list, positionally aligned, null for
// broken references. An empty list performs no lookup.
func (r *Resolver) UserQuizzes(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected source type", apperror.ErrUnexpected)
	}

	if len(user.Quizzes) == 0 {
		return []*models.Quiz{}, nil
	}
	return r.quizzes.FindByIDs(p.Context, user.Quizzes)
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
