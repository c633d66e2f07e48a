package userdir

import (
	"time"

	"github.com/google/uuid"

	"homechefs/backend/internal/models"
)

// CreateEmptyConversation inserts an empty thread between the two users
// at the front of each participant's conversation list. It is idempotent
// per participant: a user who already has the thread keeps their copy.
func (d *Directory) CreateEmptyConversation(a, b int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return err
	}

	ia, ib := indexByID(users, a), indexByID(users, b)
	if ia < 0 || ib < 0 {
		return ErrUserNotFound
	}

	convID := models.ConversationID(a, b)
	now := time.Now()

	insertEmpty := func(owner, other *models.User) {
		for i := range owner.Conversations {
			if owner.Conversations[i].ID == convID {
				return
			}
		}
		conv := models.Conversation{
			ID:            convID,
			ParticipantID: other.ID,
			Participant:   other.Snapshot(),
			Timestamp:     now,
			Messages:      []models.Message{},
		}
		owner.Conversations = append([]models.Conversation{conv}, owner.Conversations...)
	}

	insertEmpty(&users[ia], &users[ib])
	insertEmpty(&users[ib], &users[ia])

	if err := d.saveUsers(users); err != nil {
		return err
	}
	return d.syncSession(users)
}

// AddMessageToConversation appends one message to both participants'
// copies of the thread, creating either copy as needed. The receiver's
// copy is flagged unread on every inbound message, even if it was
// previously read; the sender's copy never is. Both copies are promoted
// to the front of their owner's list so ordering stays most-recent-first.
//
// It fails with ErrUserNotFound when either id does not resolve.
func (d *Directory) AddMessageToConversation(senderID, receiverID int64, content string, ts time.Time) (*models.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	is, ir := indexByID(users, senderID), indexByID(users, receiverID)
	if is < 0 || ir < 0 {
		return nil, ErrUserNotFound
	}

	sender, receiver := &users[is], &users[ir]
	msg := models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  ts,
		Sender:     sender.Snapshot(),
		Receiver:   receiver.Snapshot(),
	}

	appendToCopy(sender, receiver, msg, false)
	appendToCopy(receiver, sender, msg, true)

	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	if err := d.syncSession(users); err != nil {
		return nil, err
	}
	return &msg, nil
}

// appendToCopy applies one message to a single participant's copy of the
// thread. inbound marks the owner as the receiver of this message.
func appendToCopy(owner, other *models.User, msg models.Message, inbound bool) {
	convID := models.ConversationID(msg.SenderID, msg.ReceiverID)

	idx := -1
	for i := range owner.Conversations {
		if owner.Conversations[i].ID == convID {
			idx = i
			break
		}
	}

	if idx < 0 {
		conv := models.Conversation{
			ID:            convID,
			ParticipantID: other.ID,
			Participant:   other.Snapshot(),
			LastMessage:   msg.Content,
			Timestamp:     msg.Timestamp,
			Unread:        inbound,
			Messages:      []models.Message{msg},
		}
		owner.Conversations = append([]models.Conversation{conv}, owner.Conversations...)
		return
	}

	conv := owner.Conversations[idx]
	conv.LastMessage = msg.Content
	conv.Timestamp = msg.Timestamp
	if inbound {
		// Receiving re-flags unread even if the thread was already read.
		conv.Unread = true
	}
	conv.Messages = append(conv.Messages, msg)

	// Promote to front.
	owner.Conversations = append(owner.Conversations[:idx], owner.Conversations[idx+1:]...)
	owner.Conversations = append([]models.Conversation{conv}, owner.Conversations...)
}

// MarkConversationAsRead clears the unread flag on this user's copy
// only. The other participant's copy is untouched; unread is
// receiver-local state.
func (d *Directory) MarkConversationAsRead(userID int64, conversationID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return err
	}

	idx := indexByID(users, userID)
	if idx < 0 {
		return ErrUserNotFound
	}

	owner := &users[idx]
	for i := range owner.Conversations {
		if owner.Conversations[i].ID != conversationID {
			continue
		}
		owner.Conversations[i].Unread = false
		for j := range owner.Conversations[i].Messages {
			if owner.Conversations[i].Messages[j].ReceiverID == userID {
				owner.Conversations[i].Messages[j].Read = true
			}
		}
		break
	}

	if err := d.saveUsers(users); err != nil {
		return err
	}
	return d.syncSession(users)
}

// Conversations returns the user's thread list, most recent first.
func (d *Directory) Conversations(userID int64) ([]models.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}
	idx := indexByID(users, userID)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	return users[idx].Conversations, nil
}
