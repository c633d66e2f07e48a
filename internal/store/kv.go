// Package store provides the key-value repository behind the user
// directory. The directory persists whole collections as single JSON
// values, so the interface is a plain get/put/delete over named keys.
package store

// Keys used by the directory.
const (
	UsersKey   = "registeredUsers"
	SessionKey = "currentUser"
)

// KV is the persistence boundary. Implementations must be safe for use
// by a single logical writer; the directory serializes access itself.
type KV interface {
	// Get returns the value for key. The second result is false when the
	// key is absent.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
