package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles carried by sessions. An admin session is not implicitly granted
// user-gated operations; call sites list every acceptable role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an identity record. Email, phone number, roll number and uid are
// unique across the collection (enforced by indexes, see pkg/database).
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	PhoneNo  string             `bson:"phoneNo" json:"phoneNo"`
	RollNo   string             `bson:"rollNo" json:"rollNo"`
	UID      string             `bson:"uid" json:"uid"`
	FCMToken []string           `bson:"fcmToken" json:"fcmToken"`
	Quizzes  []string           `bson:"quizzes" json:"quizzes"`
}

// Submission pairs the submitting user's id with the marks scored.
type Submission struct {
	UserID string  `bson:"id" json:"id"`
	Marks  float64 `bson:"marks" json:"marks"`
}

// Quiz is a timed assessment referencing questions and submissions by id.
// References are weak: a listed question may have been deleted, in which case
// it resolves to null.
type Quiz struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	StartTime    time.Time          `bson:"startTime" json:"startTime"`
	EndTime      time.Time          `bson:"endTime" json:"endTime"`
	Questions    []string           `bson:"questions" json:"questions"`
	Instructions []string           `bson:"instructions" json:"instructions"`
	Submissions  []Submission       `bson:"submissions" json:"submissions"`
	Active       bool               `bson:"active" json:"active"`
}

// Question is a single multiple-choice item.
type Question struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question     string             `bson:"question" json:"question"`
	Image        string             `bson:"image" json:"image"`
	Options      []string           `bson:"options" json:"options"`
	Answer       string             `bson:"answer" json:"answer"`
	PositiveMark float64            `bson:"positiveMark" json:"positiveMark"`
	NegativeMark float64            `bson:"negativeMark" json:"negativeMark"`
	Explanation  string             `bson:"explanation" json:"explanation"`
}
