package chathub_test

import "homechefs/backend/internal/chathub"

// mockClient is a test double for the Client interface with a buffered
// receive channel the tests can inspect.
type mockClient struct {
	userID      int64
	RecvChannel chan chathub.Notification
	closed      bool
}

func newMockClient(userID int64) *mockClient {
	return &mockClient{
		userID:      userID,
		RecvChannel: make(chan chathub.Notification, 8),
	}
}

func (m *mockClient) GetUserID() int64 { return m.userID }

func (m *mockClient) GetSendChannel() chan<- chathub.Notification { return m.RecvChannel }

func (m *mockClient) Run() {}

func (m *mockClient) Close() { m.closed = true }
