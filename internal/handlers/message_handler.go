package handlers

import (
	"net/http"

	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func StartConversation(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		var input struct {
			PeerID string `json:"peer_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		peerID, err := primitive.ObjectIDFromHex(input.PeerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid peer_id"))
			return
		}

		conv, err := m.StartConversation(c.Request.Context(), principal, peerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(conv, ""))
	}
}

func ListConversations(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		convs, err := m.ListConversations(c.Request.Context(), principal)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(convs, ""))
	}
}

func SendMessage(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		conversationID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			Body string `json:"body"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		msg, err := m.SendMessage(c.Request.Context(), principal, conversationID, input.Body)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(msg, ""))
	}
}

func ListMessages(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		conversationID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		msgs, err := m.ListMessages(c.Request.Context(), principal, conversationID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(msgs, ""))
	}
}
