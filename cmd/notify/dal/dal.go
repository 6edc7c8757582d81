// Package dal defines the storage port for push notification tokens.
package dal

import "context"

// TokenDatabase maps users to their device push tokens. A token belongs
// to at most one user; registering it on another account detaches it
// from the previous one.
type TokenDatabase interface {
	SetNotificationToken(ctx context.Context, userEmail, token string) error

	// GetNotificationToken returns the user's token; the bool is false
	// when the user never registered a device.
	GetNotificationToken(ctx context.Context, userEmail string) (string, bool, error)

	Close() error
}
