package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homechefs/backend/internal/models"
)

func TestSendMessageEndpoint(t *testing.T) {
	r, _ := newTestServer()
	aID, aToken := registerUser(t, r, "a@x.com", "visitor")
	bID, bToken := registerUser(t, r, "b@x.com", "chef")

	w := doJSON(t, r, http.MethodPost, "/api/messages", aToken, gin.H{
		"receiverId": bID,
		"content":    "hello chef",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The receiver's thread carries the message and is flagged unread.
	w = doJSON(t, r, http.MethodGet, "/api/conversations", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var convs []models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, models.ConversationID(aID, bID), convs[0].ID)
	assert.True(t, convs[0].Unread)
	assert.Equal(t, "hello chef", convs[0].LastMessage)
}

func TestSendMessageEndpoint_EmptyContent(t *testing.T) {
	r, _ := newTestServer()
	_, aToken := registerUser(t, r, "a@x.com", "visitor")
	bID, _ := registerUser(t, r, "b@x.com", "chef")

	w := doJSON(t, r, http.MethodPost, "/api/messages", aToken, gin.H{
		"receiverId": bID,
		"content":    "   ",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessageEndpoint_UnknownReceiver(t *testing.T) {
	r, _ := newTestServer()
	_, aToken := registerUser(t, r, "a@x.com", "visitor")

	w := doJSON(t, r, http.MethodPost, "/api/messages", aToken, gin.H{
		"receiverId": 424242,
		"content":    "anyone there?",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkConversationReadEndpoint(t *testing.T) {
	r, _ := newTestServer()
	aID, aToken := registerUser(t, r, "a@x.com", "visitor")
	bID, bToken := registerUser(t, r, "b@x.com", "chef")

	w := doJSON(t, r, http.MethodPost, "/api/messages", aToken, gin.H{
		"receiverId": bID,
		"content":    "ping",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	convID := models.ConversationID(aID, bID)
	w = doJSON(t, r, http.MethodPost, "/api/conversations/"+convID+"/read", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/conversations", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var convs []models.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &convs))
	require.Len(t, convs, 1)
	assert.False(t, convs[0].Unread)
}

func TestStartConversationEndpoint(t *testing.T) {
	r, _ := newTestServer()
	aID, aToken := registerUser(t, r, "a@x.com", "visitor")
	bID, bToken := registerUser(t, r, "b@x.com", "chef")

	w := doJSON(t, r, http.MethodPost, "/api/conversations", aToken, gin.H{
		"participantId": bID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.ConversationID(aID, bID))

	// Both sides see the empty thread.
	for _, token := range []string{aToken, bToken} {
		w = doJSON(t, r, http.MethodGet, "/api/conversations", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var convs []models.Conversation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &convs))
		require.Len(t, convs, 1)
		assert.Empty(t, convs[0].Messages)
	}
}

func TestSearchUsersEndpoint(t *testing.T) {
	r, _ := newTestServer()
	_, aToken := registerUser(t, r, "amina@x.com", "visitor")
	registerUser(t, r, "karim@x.com", "chef")

	w := doJSON(t, r, http.MethodGet, "/api/users/search?q=karim", aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "karim@x.com")

	w = doJSON(t, r, http.MethodGet, "/api/users/search?q=", aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
