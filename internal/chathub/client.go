package chathub

// Client is the interface for any kind of live connection to a user.
// It abstracts the underlying transport so the hub can manage WebSocket
// clients and test doubles uniformly.
type Client interface {
	// GetUserID returns the directory id of the connected user.
	GetUserID() int64

	// GetSendChannel returns the channel the hub pushes notifications
	// into for this client. It is a send-only channel.
	GetSendChannel() chan<- Notification

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and channels.
	Close()
}
