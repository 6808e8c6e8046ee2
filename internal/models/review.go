package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a post-contract rating from one party about the other. The unique
// index on (contract_id, reviewer_id) allows one review per party per contract.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContractID primitive.ObjectID `bson:"contract_id" json:"contract_id"`
	ReviewerID primitive.ObjectID `bson:"reviewer_id" json:"reviewer_id"`
	RevieweeID primitive.ObjectID `bson:"reviewee_id" json:"reviewee_id"`
	Rating     int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

func (r *Review) BeforeCreate() {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}
