package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog is append-only. The repository exposes no update or delete path.
type AuditLog struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ActorID   primitive.ObjectID     `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Action    string                 `bson:"action" json:"action" validate:"required"`
	Entity    string                 `bson:"entity" json:"entity" validate:"required"`
	EntityID  string                 `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}

func (a *AuditLog) BeforeCreate() {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now()
}
