package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AvailabilityFullTime = "full-time"
	AvailabilityPartTime = "part-time"
	AvailabilityContract = "contract"

	RateTypeHourly  = "hourly"
	RateTypeMonthly = "monthly"
	RateTypeProject = "project"
)

// Developer is the 1:1 profile extension of a User with the developer role.
type Developer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills          []string           `bson:"skills" json:"skills"`
	YearsExperience int                `bson:"years_experience" json:"years_experience" validate:"gte=0"`
	PortfolioLinks  []string           `bson:"portfolio_links,omitempty" json:"portfolio_links,omitempty" validate:"dive,url"`
	GithubURL       string             `bson:"github_url,omitempty" json:"github_url,omitempty" validate:"omitempty,url"`
	ResumeURL       string             `bson:"resume_url,omitempty" json:"resume_url,omitempty"`
	AvatarURL       string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Availability    string             `bson:"availability" json:"availability" validate:"required,oneof=full-time part-time contract"`
	RateType        string             `bson:"rate_type" json:"rate_type" validate:"required,oneof=hourly monthly project"`
	RateAmount      float64            `bson:"rate_amount" json:"rate_amount" validate:"gte=0"`
	RatingAvg       float64            `bson:"rating_avg" json:"rating_avg"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

func (d *Developer) BeforeCreate() {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
}

// Employer is the 1:1 profile extension of a User with the employer role.
type Employer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	CompanyName string             `bson:"company_name" json:"company_name" validate:"required"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	About       string             `bson:"about,omitempty" json:"about,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	AvatarURL   string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (e *Employer) BeforeCreate() {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
}
