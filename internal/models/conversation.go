package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation holds the unordered pair of participants. Participants are
// stored in canonical order (participant_a < participant_b by hex id) so the
// directional unique index enforces symmetric uniqueness: (A,B) and (B,A)
// always resolve to the same document.
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ParticipantA  primitive.ObjectID `bson:"participant_a" json:"participant_a"`
	ParticipantB  primitive.ObjectID `bson:"participant_b" json:"participant_b"`
	LastMessageAt time.Time          `bson:"last_message_at,omitempty" json:"last_message_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CanonicalPair orders two participant ids by their hex representation.
func CanonicalPair(a, b primitive.ObjectID) (primitive.ObjectID, primitive.ObjectID) {
	if a.Hex() > b.Hex() {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant returns the peer of userID, assuming userID is a participant.
func (c *Conversation) OtherParticipant(userID primitive.ObjectID) primitive.ObjectID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// Message is immutable once created and strictly ordered by creation time
// within its conversation.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	SenderID       primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	RecipientID    primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Body           string             `bson:"body" json:"body" validate:"required"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

func (m *Message) BeforeCreate() {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()
}
