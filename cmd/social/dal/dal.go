// Package dal defines the storage port for the friendship graph and the
// private messaging that rides on it.
package dal

import (
	"context"
	"time"
)

type Message struct {
	FromEmail    string
	ToEmail      string
	Content      string
	CreationTime time.Time
}

// Conversation pairs a peer with the newest message exchanged with them.
type Conversation struct {
	PeerEmail   string
	LastMessage Message
}

// FriendDatabase is the store behind the social graph. Friendship is
// symmetric; a request is pending exactly while its row exists.
// Conforming engines: mysql (dal/db) and in-memory (dal/ram).
type FriendDatabase interface {
	// CreateFriendRequest opens a pending request. Fails with
	// AlreadyFriendsErr when the pair is already connected; re-sending
	// an open request is a no-op.
	CreateFriendRequest(ctx context.Context, fromEmail, toEmail string) error

	// AcceptFriendRequest consumes the pending request and records the
	// friendship. Missing request fails with FriendRequestNotFoundErr.
	AcceptFriendRequest(ctx context.Context, fromEmail, toEmail string) error

	// RejectFriendRequest consumes the pending request without creating
	// a friendship. Missing request fails with FriendRequestNotFoundErr.
	RejectFriendRequest(ctx context.Context, fromEmail, toEmail string) error

	// GetFriendRequests returns the senders with a pending request to
	// the user.
	GetFriendRequests(ctx context.Context, userEmail string) ([]string, error)

	// GetFriends returns the user's friends.
	GetFriends(ctx context.Context, userEmail string) ([]string, error)

	AreFriends(ctx context.Context, email1, email2 string) (bool, error)

	ExistsFriendRequest(ctx context.Context, fromEmail, toEmail string) (bool, error)

	// SendMessage appends a private message stamped with the current
	// time. Fails with NotFriendsErr when the pair is not connected.
	SendMessage(ctx context.Context, fromEmail, toEmail, content string) error

	// GetConversation windows the two users' message history, most
	// recent first, into 0-indexed pages and also returns the total page
	// count. Pages past the boundary fail with NoMoreMessagesErr.
	GetConversation(ctx context.Context, email1, email2 string, page, perPage int64) ([]Message, int64, error)

	// GetConversations returns one entry per peer the user has messaged
	// with, ordered by the newest message first.
	GetConversations(ctx context.Context, userEmail string) ([]Conversation, error)

	Close() error
}
