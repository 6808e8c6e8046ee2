package services

import (
	"context"
	"strings"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MessageService struct {
	conversationRepo models.ConversationRepo
	userRepo         models.UserRepo
}

func NewMessageService(conversationRepo models.ConversationRepo, userRepo models.UserRepo) *MessageService {
	return &MessageService{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
	}
}

// StartConversation finds or creates the conversation between the caller and
// the peer. The pair is canonicalized in the repository, so starting with
// (A,B) and looking up with (B,A) yields the same conversation.
func (ms *MessageService) StartConversation(ctx context.Context, principal helpers.Principal, peerID primitive.ObjectID) (*models.Conversation, error) {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if userID == peerID {
		return nil, apperrors.BadRequest("cannot start a conversation with yourself")
	}

	if _, err := ms.userRepo.GetUserByID(ctx, peerID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal(err)
	}

	conv, err := ms.conversationRepo.FindOrCreateConversation(ctx, userID, peerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return conv, nil
}

func (ms *MessageService) ListConversations(ctx context.Context, principal helpers.Principal) ([]*models.Conversation, error) {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	convs, err := ms.conversationRepo.ListConversationsByParticipant(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return convs, nil
}

// SendMessage requires an existing conversation, a non-empty body and a
// sender matching the authenticated identity; the recipient is derived as the
// other participant.
func (ms *MessageService) SendMessage(ctx context.Context, principal helpers.Principal, conversationID primitive.ObjectID, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.ValidationError(map[string]string{"body": "must not be empty"})
	}

	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	conv, err := ms.conversationRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrConversationNotFound)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.Forbidden("not a participant in this conversation")
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		RecipientID:    conv.OtherParticipant(userID),
		Body:           body,
	}

	created, err := ms.conversationRepo.CreateMessage(ctx, msg)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return created, nil
}

func (ms *MessageService) ListMessages(ctx context.Context, principal helpers.Principal, conversationID primitive.ObjectID, offset, limit int) ([]*models.Message, error) {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	conv, err := ms.conversationRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrConversationNotFound)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.Forbidden("not a participant in this conversation")
	}

	msgs, err := ms.conversationRepo.ListMessages(ctx, conversationID, offset, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return msgs, nil
}
