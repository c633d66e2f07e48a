// Package chathub delivers direct messages to connected users in real
// time. Message state itself lives in the user directory; the hub only
// pushes notifications about stored messages to open connections.
package chathub

import (
	"log"

	"homechefs/backend/internal/models"
)

// Notification is what connected clients receive when a message lands
// in one of their conversations.
type Notification struct {
	Type           string         `json:"type"` // "message"
	ConversationID string         `json:"conversationId"`
	Message        models.Message `json:"message"`
}

// InboundMessage is a send request arriving over a live connection.
// SenderID is filled from the authenticated connection, never trusted
// from the payload.
type InboundMessage struct {
	SenderID   int64  `json:"-"`
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
}

// Delivery fans one stored message out to its two participants.
type Delivery struct {
	Recipients     []int64        `json:"recipients"`
	ConversationID string         `json:"conversationId"`
	Message        models.Message `json:"message"`
}

// MessageSink persists an inbound message. Wired by main to the
// directory so the hub stays free of storage concerns.
type MessageSink func(InboundMessage)

// Hub tracks live clients and routes deliveries to them.
type Hub struct {
	Clients map[int64]Client

	// Channels
	IncomingCh   chan InboundMessage
	DeliverCh    chan Delivery
	RegisterCh   chan Client
	UnregisterCh chan Client

	pubSubCh    chan Delivery
	messageSink MessageSink
}

func NewHub() *Hub {
	return &Hub{
		Clients:      make(map[int64]Client),
		IncomingCh:   make(chan InboundMessage),
		DeliverCh:    make(chan Delivery),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		pubSubCh:     make(chan Delivery),
	}
}

// SetMessageSink wires the persistence callback for messages that
// arrive over live connections.
func (h *Hub) SetMessageSink(sink MessageSink) {
	h.messageSink = sink
}

// Deliver hands a stored message to the hub for fan-out.
func (h *Hub) Deliver(d Delivery) {
	h.DeliverCh <- d
}

// Run is the hub's main dispatcher goroutine.
func (h *Hub) Run() {
	log.Println("Chat hub started.")

	for {
		select {
		case client := <-h.RegisterCh:
			if old, ok := h.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			h.Clients[client.GetUserID()] = client
			log.Printf("Client connected: user %d", client.GetUserID())

		case client := <-h.UnregisterCh:
			if current, ok := h.Clients[client.GetUserID()]; ok && current == client {
				delete(h.Clients, client.GetUserID())
				log.Printf("Client disconnected: user %d", client.GetUserID())
			}

		case msg := <-h.IncomingCh:
			if h.messageSink != nil {
				h.messageSink(msg)
			}

		case d := <-h.DeliverCh:
			h.route(d)

		case d := <-h.pubSubCh:
			// Delivery published by another instance through Redis.
			h.route(d)
		}
	}
}

// route pushes a delivery to every recipient with a live connection.
func (h *Hub) route(d Delivery) {
	n := Notification{
		Type:           "message",
		ConversationID: d.ConversationID,
		Message:        d.Message,
	}
	for _, userID := range d.Recipients {
		client, ok := h.Clients[userID]
		if !ok {
			continue
		}
		select {
		case client.GetSendChannel() <- n:
		default:
			// Slow client: drop the connection rather than block the hub.
			client.Close()
			delete(h.Clients, userID)
		}
	}
}
