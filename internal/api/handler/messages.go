package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"homechefs/backend/internal/chathub"
	"homechefs/backend/internal/models"
	"homechefs/backend/internal/userdir"
)

// ListConversations returns the caller's threads, most recent first.
func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.Dir.Conversations(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversations"})
		return
	}
	c.JSON(http.StatusOK, convs)
}

type startConversationRequest struct {
	ParticipantID int64 `json:"participantId" binding:"required"`
}

// StartConversation inserts an empty thread with another user. Starting
// an existing thread again is a no-op.
func (h *Handler) StartConversation(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Dir.CreateEmptyConversation(currentUserID(c), req.ParticipantID)
	if errors.Is(err, userdir.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": models.ConversationID(currentUserID(c), req.ParticipantID)})
}

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendMessage appends a message to both participants' copies of the
// thread and pushes it to any live connections.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	senderID := currentUserID(c)
	msg, err := h.Dir.AddMessageToConversation(senderID, req.ReceiverID, content, time.Now())
	if errors.Is(err, userdir.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.deliver(chathub.Delivery{
		Recipients:     []int64{senderID, req.ReceiverID},
		ConversationID: models.ConversationID(senderID, req.ReceiverID),
		Message:        *msg,
	})
	c.JSON(http.StatusCreated, msg)
}

// MarkConversationRead clears the unread flag on the caller's copy.
func (h *Handler) MarkConversationRead(c *gin.Context) {
	err := h.Dir.MarkConversationAsRead(currentUserID(c), c.Param("id"))
	if errors.Is(err, userdir.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// SearchUsers finds users to message. An empty query returns an empty
// list rather than everybody.
func (h *Handler) SearchUsers(c *gin.Context) {
	users, err := h.Dir.SearchUsers(c.Query("q"), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, viewOf(&users[i]))
	}
	c.JSON(http.StatusOK, views)
}
