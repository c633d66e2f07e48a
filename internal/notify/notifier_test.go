package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homechefs/backend/internal/models"
	"homechefs/backend/internal/notify"
	"homechefs/backend/internal/store"
	"homechefs/backend/internal/userdir"
)

func TestNotifier_AnnouncesUnreadThreadsOnce(t *testing.T) {
	d := userdir.New(store.NewMemoryKV())

	a, err := d.Register(userdir.RegisterInput{Email: "a@x.com", Password: "pw123456", FullName: "Amina", Role: models.RoleVisitor})
	require.NoError(t, err)
	b, err := d.Register(userdir.RegisterInput{Email: "b@x.com", Password: "pw123456", FullName: "Karim", Role: models.RoleChef})
	require.NoError(t, err)

	// B is the logged-in user the poller watches.
	_, err = d.Authenticate("b@x.com", "pw123456", models.RoleChef)
	require.NoError(t, err)

	_, err = d.AddMessageToConversation(a.ID, b.ID, "bonjour", time.Now())
	require.NoError(t, err)

	n := notify.NewNotifier(d)
	n.Interval = 10 * time.Millisecond
	go n.Run()
	defer n.Stop()

	select {
	case batch := <-n.Events:
		require.Len(t, batch, 1)
		assert.Equal(t, models.ConversationID(a.ID, b.ID), batch[0].ConversationID)
		assert.Equal(t, "Amina", batch[0].From)
		assert.Equal(t, "bonjour", batch[0].LastMessage)
	case <-time.After(time.Second):
		t.Fatal("no notification within a second")
	}

	// The unchanged thread must not be announced again on later ticks.
	select {
	case batch := <-n.Events:
		t.Fatalf("unexpected repeat notification: %+v", batch)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifier_QuietWhenLoggedOut(t *testing.T) {
	d := userdir.New(store.NewMemoryKV())

	n := notify.NewNotifier(d)
	n.Interval = 10 * time.Millisecond
	go n.Run()
	defer n.Stop()

	select {
	case batch := <-n.Events:
		t.Fatalf("unexpected notification without a session: %+v", batch)
	case <-time.After(100 * time.Millisecond):
	}
}
