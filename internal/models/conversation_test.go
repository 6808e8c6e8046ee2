package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanonicalPairIsCommutative(t *testing.T) {
	for i := 0; i < 50; i++ {
		a := primitive.NewObjectID()
		b := primitive.NewObjectID()

		x1, y1 := CanonicalPair(a, b)
		x2, y2 := CanonicalPair(b, a)

		require.Equal(t, x1, x2)
		require.Equal(t, y1, y2)
		assert.True(t, x1.Hex() <= y1.Hex())
	}
}

func TestCanonicalPairSameID(t *testing.T) {
	a := primitive.NewObjectID()
	x, y := CanonicalPair(a, a)
	assert.Equal(t, a, x)
	assert.Equal(t, a, y)
}

func TestConversationParticipants(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	pa, pb := CanonicalPair(a, b)
	conv := &Conversation{ParticipantA: pa, ParticipantB: pb}

	assert.True(t, conv.HasParticipant(a))
	assert.True(t, conv.HasParticipant(b))
	assert.False(t, conv.HasParticipant(stranger))

	assert.Equal(t, b, conv.OtherParticipant(a))
	assert.Equal(t, a, conv.OtherParticipant(b))
}
