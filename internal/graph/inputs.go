package graph

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dscnitrourkela/project-nutella/internal/models"
)

func stringValue(m map[string]interface{}, key string) string {
	value, _ := m[key].(string)
	return value
}

func floatValue(m map[string]interface{}, key string) float64 {
	switch value := m[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return 0
}

func timeValue(m map[string]interface{}, key string) time.Time {
	value, _ := m[key].(time.Time)
	return value
}

func boolValue(m map[string]interface{}, key string) *bool {
	if value, ok := m[key].(bool); ok {
		return &value
	}
	return nil
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func mapList(v interface{}) []map[string]interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	values := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			values = append(values, m)
		}
	}
	return values
}

type userInput struct {
	Name     string
	Email    string
	PhoneNo  string
	RollNo   string
	FCMToken []string
	Quizzes  []string
}

func decodeUserInput(m map[string]interface{}) userInput {
	return userInput{
		Name:     stringValue(m, "name"),
		Email:    stringValue(m, "email"),
		PhoneNo:  stringValue(m, "phoneNo"),
		RollNo:   stringValue(m, "rollNo"),
		FCMToken: stringList(m["fcmToken"]),
		Quizzes:  stringList(m["quizzes"]),
	}
}

// update follows the filtered-merge discipline: only non-empty strings and
// non-empty lists are written, so omitted or zero-valued fields never clobber
// stored data.
func (in userInput) update() bson.M {
	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Email != "" {
		set["email"] = in.Email
	}
	if in.PhoneNo != "" {
		set["phoneNo"] = in.PhoneNo
	}
	if in.RollNo != "" {
		set["rollNo"] = in.RollNo
	}
	if len(in.FCMToken) > 0 {
		set["fcmToken"] = in.FCMToken
	}
	if len(in.Quizzes) > 0 {
		set["quizzes"] = in.Quizzes
	}
	return bson.M{"$set": set}
}

type quizInput struct {
	Name         string
	StartTime    time.Time
	EndTime      time.Time
	Questions    []string
	Instructions []string
	Submissions  []models.Submission
	Active       *bool
}

func decodeQuizInput(m map[string]interface{}) quizInput {
	in := quizInput{
		Name:         stringValue(m, "name"),
		StartTime:    timeValue(m, "startTime"),
		EndTime:      timeValue(m, "endTime"),
		Questions:    stringList(m["questions"]),
		Instructions: stringList(m["instructions"]),
		Active:       boolValue(m, "active"),
	}

	for _, sub := range mapList(m["submissions"]) {
		in.Submissions = append(in.Submissions, models.Submission{
			UserID: stringValue(sub, "id"),
			Marks:  floatValue(sub, "marks"),
		})
	}
	return in
}

// update follows the filtered-merge discipline; the active flag is carried by
// an explicit nullable input so it can be set to false deliberately.
func (in quizInput) update() bson.M {
	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if !in.StartTime.IsZero() {
		set["startTime"] = in.StartTime
	}
	if !in.EndTime.IsZero() {
		set["endTime"] = in.EndTime
	}
	if len(in.Questions) > 0 {
		set["questions"] = in.Questions
	}
	if len(in.Instructions) > 0 {
		set["instructions"] = in.Instructions
	}
	if len(in.Submissions) > 0 {
		set["submissions"] = in.Submissions
	}
	if in.Active != nil {
		set["active"] = *in.Active
	}
	return bson.M{"$set": set}
}

type questionInput struct {
	Question     string
	Image        string
	Options      []string
	Answer       string
	PositiveMark float64
	NegativeMark float64
	Explanation  string
}

func decodeQuestionInput(m map[string]interface{}) questionInput {
	return questionInput{
		Question:     stringValue(m, "question"),
		Image:        stringValue(m, "image"),
		Options:      stringList(m["options"]),
		Answer:       stringValue(m, "answer"),
		PositiveMark: floatValue(m, "positiveMark"),
		NegativeMark: floatValue(m, "negativeMark"),
		Explanation:  stringValue(m, "explanation"),
	}
}

func (in questionInput) update() bson.M {
	set := bson.M{}
	if in.Question != "" {
		set["question"] = in.Question
	}
	if in.Image != "" {
		set["image"] = in.Image
	}
	if len(in.Options) > 0 {
		set["options"] = in.Options
	}
	if in.Answer != "" {
		set["answer"] = in.Answer
	}
	if in.PositiveMark > 0 {
		set["positiveMark"] = in.PositiveMark
	}
	if in.NegativeMark > 0 {
		set["negativeMark"] = in.NegativeMark
	}
	if in.Explanation != "" {
		set["explanation"] = in.Explanation
	}
	return bson.M{"$set": set}
}
