package chathub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"homechefs/backend/internal/chathub"
	"homechefs/backend/internal/models"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := chathub.NewHub()
	clientA := newMockClient(101)

	go hub.Run()

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, int64(101))

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, int64(101))
}

func TestHub_DeliverReachesConnectedRecipients(t *testing.T) {
	hub := chathub.NewHub()
	clientB := newMockClient(202)

	go hub.Run()
	hub.RegisterCh <- clientB
	time.Sleep(100 * time.Millisecond)

	hub.Deliver(chathub.Delivery{
		Recipients:     []int64{101, 202},
		ConversationID: models.ConversationID(101, 202),
		Message:        models.Message{SenderID: 101, ReceiverID: 202, Content: "hello"},
	})
	time.Sleep(100 * time.Millisecond)

	select {
	case n := <-clientB.RecvChannel:
		assert.Equal(t, "message", n.Type)
		assert.Equal(t, "101-202", n.ConversationID)
		assert.Equal(t, "hello", n.Message.Content)
	default:
		t.Error("clientB did not receive the notification")
	}
}

func TestHub_IncomingGoesToMessageSink(t *testing.T) {
	hub := chathub.NewHub()
	got := make(chan chathub.InboundMessage, 1)
	hub.SetMessageSink(func(msg chathub.InboundMessage) {
		got <- msg
	})

	go hub.Run()

	hub.IncomingCh <- chathub.InboundMessage{SenderID: 101, ReceiverID: 202, Content: "hi"}

	select {
	case msg := <-got:
		assert.Equal(t, int64(101), msg.SenderID)
		assert.Equal(t, "hi", msg.Content)
	case <-time.After(time.Second):
		t.Error("message sink was not called")
	}
}

func TestHub_RegisterReplacesExistingConnection(t *testing.T) {
	hub := chathub.NewHub()
	first := newMockClient(101)
	second := newMockClient(101)

	go hub.Run()

	hub.RegisterCh <- first
	hub.RegisterCh <- second
	time.Sleep(100 * time.Millisecond)

	assert.Same(t, second, hub.Clients[int64(101)].(*mockClient))
	assert.True(t, first.closed, "replaced connection must be closed")
}
