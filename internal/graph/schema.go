package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/dscnitrourkela/project-nutella/internal/models"
)

// NewSchema builds the executable schema around r. Object ids surface as hex
// strings of the underlying document ids.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	questionType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Question",
		Description: "A single multiple-choice item.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Question).ID.Hex(), nil
				},
			},
			"question":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"image":        &graphql.Field{Type: graphql.String},
			"options":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"answer":       &graphql.Field{Type: graphql.String},
			"positiveMark": &graphql.Field{Type: graphql.Float},
			"negativeMark": &graphql.Field{Type: graphql.Float},
			"explanation":  &graphql.Field{Type: graphql.String},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "User",
		Description: "An identity record.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).ID.Hex(), nil
				},
			},
			"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phoneNo":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"rollNo":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"uid":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"fcmToken": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"quizIds": &graphql.Field{
				Type: graphql.NewList(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Quizzes, nil
				},
			},
		},
	})

	quizType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Quiz",
		Description: "A timed assessment.",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Quiz).ID.Hex(), nil
				},
			},
			"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"startTime":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"endTime":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"instructions": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"active":       &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"questionIds": &graphql.Field{
				Type: graphql.NewList(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Quiz).Questions, nil
				},
			},
			"questions": &graphql.Field{
				Type:        graphql.NewList(questionType),
				Description: "The resolved questions of this quiz, null for broken references.",
				Resolve:     r.QuizQuestions,
			},
		},
	})

	submissionType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Submission",
		Description: "A user's submission with the marks scored.",
		Fields: graphql.Fields{
			"user":  &graphql.Field{Type: userType},
			"marks": &graphql.Field{Type: graphql.Float},
		},
	})

	quizType.AddFieldConfig("submissions", &graphql.Field{
		Type:        graphql.NewList(submissionType),
		Description: "The resolved submitting users paired with their marks.",
		Resolve:     r.QuizSubmissions,
	})

	userType.AddFieldConfig("quizzes", &graphql.Field{
		Type:        graphql.NewList(quizType),
		Description: "The resolved quizzes of this user, null for broken references.",
		Resolve:     r.UserQuizzes,
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phoneNo":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"rollNo":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"fcmToken": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"quizzes":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
		},
	})

	submissionInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SubmissionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"marks": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	quizInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "QuizInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"startTime":    &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"endTime":      &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"questions":    &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
			"instructions": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"submissions":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(submissionInputType)},
			"active":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	questionInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "QuestionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"question":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"image":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"options":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"answer":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"positiveMark": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"negativeMark": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"explanation":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	questionUpdateInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "QuestionUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":              &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"questionDetails": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(questionInputType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getUsers": &graphql.Field{
				Type:        graphql.NewList(userType),
				Description: "The users for the given ids, all users for an empty list.",
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.ID)},
				},
				Resolve: r.GetUsers,
			},
			"me": &graphql.Field{
				Type:        userType,
				Description: "The user bound to the current session.",
				Resolve:     r.Me,
			},
			"getQuizzes": &graphql.Field{
				Type:        graphql.NewList(quizType),
				Description: "The quizzes for the given ids, all quizzes for an empty list.",
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.ID)},
				},
				Resolve: r.GetQuizzes,
			},
			"getQuizzesByTime": &graphql.Field{
				Type:        graphql.NewList(quizType),
				Description: "The quizzes starting inside the given window.",
				Args: graphql.FieldConfigArgument{
					"from": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.DateTime)},
					"to":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.DateTime)},
				},
				Resolve: r.GetQuizzesByTime,
			},
			"getQuestions": &graphql.Field{
				Type:        graphql.NewList(questionType),
				Description: "The questions for the given ids, all questions for an empty list.",
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.ID)},
				},
				Resolve: r.GetQuestions,
			},
			"getQuestionsForQuiz": &graphql.Field{
				Type:        graphql.NewList(graphql.NewList(questionType)),
				Description: "One question list per quiz id, a null row per missing quiz.",
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: r.GetQuestionsForQuiz,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userDetails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: r.CreateUser,
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"userDetails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: r.UpdateUser,
			},
			"deleteUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.DeleteUser,
			},
			"createQuiz": &graphql.Field{
				Type: quizType,
				Args: graphql.FieldConfigArgument{
					"quizDetails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(quizInputType)},
				},
				Resolve: r.CreateQuiz,
			},
			"updateQuiz": &graphql.Field{
				Type: quizType,
				Args: graphql.FieldConfigArgument{
					"quizId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"quizDetails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(quizInputType)},
				},
				Resolve: r.UpdateQuiz,
			},
			"deleteQuiz": &graphql.Field{
				Type: quizType,
				Args: graphql.FieldConfigArgument{
					"quizId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.DeleteQuiz,
			},
			"createQuestions": &graphql.Field{
				Type: graphql.NewList(questionType),
				Args: graphql.FieldConfigArgument{
					"questionDetails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(questionInputType)))},
				},
				Resolve: r.CreateQuestions,
			},
			"updateQuestions": &graphql.Field{
				Type: graphql.NewList(questionType),
				Args: graphql.FieldConfigArgument{
					"questionUpdates": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(questionUpdateInputType)))},
				},
				Resolve: r.UpdateQuestions,
			},
			"deleteQuestions": &graphql.Field{
				Type: graphql.NewList(questionType),
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: r.DeleteQuestions,
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: r.Logout,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
