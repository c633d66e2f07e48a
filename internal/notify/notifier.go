// Package notify surfaces "new message" notifications for the current
// session by cooperative polling: a ticker re-reads the session's
// conversation list and reports unread threads. This is a poll, not a
// push; the websocket hub covers live delivery for connected clients.
package notify

import (
	"log"
	"time"

	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
	"homechefs/backend/internal/userdir"
)

// Unread describes one unread thread seen by the poller.
type Unread struct {
	ConversationID string    `json:"conversationId"`
	From           string    `json:"from"`
	LastMessage    string    `json:"lastMessage"`
	Timestamp      time.Time `json:"timestamp"`
}

// Notifier polls the directory on an interval and emits unread threads
// that appeared (or changed) since the previous poll.
type Notifier struct {
	Dir      *userdir.Directory
	Interval time.Duration

	Events chan []Unread

	// last timestamp reported per conversation id, so an unchanged
	// unread thread is not re-announced every tick.
	seen map[string]time.Time

	stopCh chan struct{}
}

func NewNotifier(dir *userdir.Directory) *Notifier {
	return &Notifier{
		Dir:      dir,
		Interval: config.NotifyPollInterval,
		Events:   make(chan []Unread, 16),
		seen:     make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// Run polls until Stop is called.
func (n *Notifier) Run() {
	log.Println("Notification poller started.")
	ticker := time.NewTicker(n.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.poll()
		case <-n.stopCh:
			return
		}
	}
}

func (n *Notifier) Stop() {
	close(n.stopCh)
}

func (n *Notifier) poll() {
	session, err := n.Dir.CurrentSession()
	if err != nil {
		log.Printf("ERROR: Notification poll failed: %v", err)
		return
	}
	if session == nil {
		// Nobody logged in; forget history so the next login starts fresh.
		n.seen = make(map[string]time.Time)
		return
	}

	fresh := n.collect(session.Conversations)
	if len(fresh) == 0 {
		return
	}

	select {
	case n.Events <- fresh:
	default:
		// Consumer is behind; drop this batch, the next poll repeats it.
	}
}

// collect returns the unread threads not yet announced at their current
// timestamp, and records them as seen.
func (n *Notifier) collect(conversations []models.Conversation) []Unread {
	var fresh []Unread
	for i := range conversations {
		conv := &conversations[i]
		if !conv.Unread {
			continue
		}
		if last, ok := n.seen[conv.ID]; ok && !conv.Timestamp.After(last) {
			continue
		}
		n.seen[conv.ID] = conv.Timestamp
		fresh = append(fresh, Unread{
			ConversationID: conv.ID,
			From:           conv.Participant.Name,
			LastMessage:    conv.LastMessage,
			Timestamp:      conv.Timestamp,
		})
	}
	return fresh
}
