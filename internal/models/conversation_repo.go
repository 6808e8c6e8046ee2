package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ConversationsColName = "conversations"
	MessagesColName      = "messages"
)

type ConversationRepo interface {
	FindOrCreateConversation(ctx context.Context, a, b primitive.ObjectID) (*Conversation, error)
	GetConversationByID(ctx context.Context, id primitive.ObjectID) (*Conversation, error)
	ListConversationsByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*Conversation, error)
	CreateMessage(ctx context.Context, msg *Message) (*Message, error)
	ListMessages(ctx context.Context, conversationID primitive.ObjectID, offset, limit int) ([]*Message, error)
}

// FindOrCreateConversation canonicalizes the participant pair before the
// upsert, so (A,B) and (B,A) hit the same document and the unique compound
// index never sees both orderings.
func (mdb *MongodbRepo) FindOrCreateConversation(ctx context.Context, a, b primitive.ObjectID) (*Conversation, error) {
	first, second := CanonicalPair(a, b)

	col := mdb.GetCollection(ConversationsColName)
	now := time.Now()
	filter := bson.M{"participant_a": first, "participant_b": second}
	update := bson.M{
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"participant_a": first,
			"participant_b": second,
			"created_at":    now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conv Conversation
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv); err != nil {
		return nil, fmt.Errorf("error upserting conversation: %v", err)
	}

	return &conv, nil
}

func (mdb *MongodbRepo) GetConversationByID(ctx context.Context, id primitive.ObjectID) (*Conversation, error) {
	col := mdb.GetCollection(ConversationsColName)
	var conv Conversation
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (mdb *MongodbRepo) ListConversationsByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*Conversation, error) {
	col := mdb.GetCollection(ConversationsColName)
	query := bson.M{"$or": []bson.M{
		{"participant_a": userID},
		{"participant_b": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find conversations: %v", err)
	}
	defer cursor.Close(ctx)

	var convs []*Conversation
	for cursor.Next(ctx) {
		var conv Conversation
		if err := cursor.Decode(&conv); err != nil {
			return nil, fmt.Errorf("failed to decode conversation: %v", err)
		}
		convs = append(convs, &conv)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return convs, nil
}

func (mdb *MongodbRepo) CreateMessage(ctx context.Context, msg *Message) (*Message, error) {
	msg.BeforeCreate()
	col := mdb.GetCollection(MessagesColName)
	if _, err := col.InsertOne(ctx, msg); err != nil {
		return nil, err
	}

	// Bump the conversation's activity marker; message delivery does not
	// depend on it, so a failure here is not fatal.
	convCol := mdb.GetCollection(ConversationsColName)
	_, _ = convCol.UpdateOne(ctx, bson.M{"_id": msg.ConversationID}, bson.M{
		"$set": bson.M{"last_message_at": msg.CreatedAt, "updated_at": msg.CreatedAt},
	})

	return msg, nil
}

func (mdb *MongodbRepo) ListMessages(ctx context.Context, conversationID primitive.ObjectID, offset, limit int) ([]*Message, error) {
	col := mdb.GetCollection(MessagesColName)
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := col.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %v", err)
	}
	defer cursor.Close(ctx)

	var msgs []*Message
	for cursor.Next(ctx) {
		var msg Message
		if err := cursor.Decode(&msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %v", err)
		}
		msgs = append(msgs, &msg)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return msgs, nil
}
