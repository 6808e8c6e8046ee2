package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// Application links one Job and one developer User. The unique index on
// (job_id, developer_id) gives at most one application per developer per job.
type Application struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID       primitive.ObjectID `bson:"job_id" json:"job_id"`
	DeveloperID primitive.ObjectID `bson:"developer_id" json:"developer_id"`
	CoverLetter string             `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (a *Application) BeforeCreate() {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Status = ApplicationStatusSubmitted
}

// applicationTransitions: submitted → {shortlisted, rejected, accepted},
// shortlisted → {rejected, accepted}; rejected and accepted are terminal.
var applicationTransitions = map[string][]string{
	ApplicationStatusSubmitted:   {ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusAccepted},
	ApplicationStatusShortlisted: {ApplicationStatusRejected, ApplicationStatusAccepted},
	ApplicationStatusRejected:    {},
	ApplicationStatusAccepted:    {},
}

func CanTransitionApplication(from, to string) bool {
	for _, allowed := range applicationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
