package models

import (
	"fmt"
	"time"
)

// Participant is a display snapshot of the other party in a conversation.
// It is captured when the conversation is created; callers that need live
// data resolve the ParticipantID against the directory instead.
type Participant struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

// Conversation is one user's copy of a two-party message thread.
// The same logical thread is stored once per participant; every append
// must land on both copies.
type Conversation struct {
	ID            string      `json:"id"`
	ParticipantID int64       `json:"participantId"`
	Participant   Participant `json:"participant"`
	LastMessage   string      `json:"lastMessage"`
	Timestamp     time.Time   `json:"timestamp"`
	// Unread is owner-local: it is only ever set on the receiver's copy.
	Unread   bool      `json:"unread"`
	Messages []Message `json:"messages"`
}

// Message is a single direct message, appended to both participants'
// conversation copies.
type Message struct {
	ID         string      `json:"id"`
	SenderID   int64       `json:"senderId"`
	ReceiverID int64       `json:"receiverId"`
	Content    string      `json:"content"`
	Timestamp  time.Time   `json:"timestamp"`
	Read       bool        `json:"read"`
	Sender     Participant `json:"sender"`
	Receiver   Participant `json:"receiver"`
}

// ConversationID derives the thread id from the two participant ids.
// It is symmetric: ConversationID(a, b) == ConversationID(b, a).
func ConversationID(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

// Snapshot captures the user's display info for embedding in a conversation.
func (u *User) Snapshot() Participant {
	return Participant{
		ID:           u.ID,
		Name:         u.DisplayName(),
		Role:         u.Role,
		ProfilePhoto: u.ProfilePhoto,
	}
}
