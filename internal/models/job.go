package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	JobStatusOpen   = "open"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"

	ExperienceJunior = "junior"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"

	JobTypeRemote   = "remote"
	JobTypeOnsite   = "onsite"
	JobTypeContract = "contract"
)

type Job struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployerID      primitive.ObjectID `bson:"employer_id" json:"employer_id"`
	Title           string             `bson:"title" json:"title" validate:"required"`
	Description     string             `bson:"description" json:"description" validate:"required"`
	RequiredSkills  []string           `bson:"required_skills" json:"required_skills"`
	ExperienceLevel string             `bson:"experience_level" json:"experience_level" validate:"required,oneof=junior mid senior"`
	BudgetMin       float64            `bson:"budget_min,omitempty" json:"budget_min,omitempty" validate:"gte=0"`
	BudgetMax       float64            `bson:"budget_max,omitempty" json:"budget_max,omitempty" validate:"gte=0"`
	RateType        string             `bson:"rate_type" json:"rate_type" validate:"required,oneof=hourly monthly project"`
	JobType         string             `bson:"job_type" json:"job_type" validate:"required,oneof=remote onsite contract"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

func (j *Job) BeforeCreate() {
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	now := time.Now()
	j.CreatedAt = now
	j.UpdatedAt = now
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
}

// jobTransitions: open → {paused, closed}, paused → {open, closed}, closed is
// terminal.
var jobTransitions = map[string][]string{
	JobStatusOpen:   {JobStatusPaused, JobStatusClosed},
	JobStatusPaused: {JobStatusOpen, JobStatusClosed},
	JobStatusClosed: {},
}

func CanTransitionJob(from, to string) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// JobFilter narrows public job listings.
type JobFilter struct {
	Skills          []string
	ExperienceLevel string
	JobType         string
	Status          string
}
