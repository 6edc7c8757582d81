// Package dal defines the storage port for the video catalog: the
// capability set every engine has to provide, the data-transfer types
// crossing it, and the ranking helpers that keep search and engagement
// semantics identical across engines.
package dal

import (
	"context"
	"time"

	"cliptube/cmd/model"
)

type VideoData struct {
	Title        string
	Description  string
	CreationTime time.Time
	Visible      bool
	Location     string
	FileLocation string
}

type UserRecord struct {
	Email       string
	Fullname    string
	PhoneNumber string
	Photo       string
}

type ReactionCounts struct {
	Likes    int64
	Dislikes int64
}

type VideoWithCounts struct {
	Video  VideoData
	Counts ReactionCounts
}

type OwnedVideo struct {
	Owner UserRecord
	Video VideoData
}

type RankedVideo struct {
	Owner      UserRecord
	Video      VideoData
	Engagement int64
}

type Comment struct {
	Content      string
	CreationTime time.Time
}

// VideoDatabase is the transactional store behind the catalog. Mutations
// are atomic units; reads see a single consistent snapshot per call.
// Conforming engines: mysql (dal/db) and in-memory (dal/ram).
type VideoDatabase interface {
	// UpsertUser saves the profile row joined into listing results.
	// Called by the external auth layer, never by the catalog itself.
	UpsertUser(ctx context.Context, user *model.User) error

	// AddVideo inserts a video owned by ownerEmail. A (owner, title)
	// collision fails with DuplicateVideoErr.
	AddVideo(ctx context.Context, ownerEmail string, data VideoData) error

	// ListUserVideos returns the owner's videos most recent first, each
	// with its live reaction counts.
	ListUserVideos(ctx context.Context, ownerEmail string) ([]VideoWithCounts, error)

	// DeleteVideo removes the video and cascades its reactions and
	// comments. Missing video fails with VideoNotFoundErr.
	DeleteVideo(ctx context.Context, ownerEmail, title string) error

	// GetPaginatedVideos windows the global most-recent-first listing
	// into 0-indexed pages of perPage rows and also returns the total
	// page count. Pages past the end fail with NoMoreVideosErr; page 0
	// of an empty catalog is an empty page, not an error.
	GetPaginatedVideos(ctx context.Context, page, perPage int64) ([]OwnedVideo, int64, error)

	// ReactVideo upserts the reactor's reaction, replacing any prior
	// value. Missing video fails with VideoNotFoundErr.
	ReactVideo(ctx context.Context, reactorEmail, ownerEmail, title string, reaction Reaction) error

	// GetVideoReaction reports the reactor's current reaction; the bool
	// is false when the reactor has not reacted.
	GetVideoReaction(ctx context.Context, reactorEmail, ownerEmail, title string) (Reaction, bool, error)

	// DeleteReaction removes the reaction if present. Idempotent.
	DeleteReaction(ctx context.Context, reactorEmail, ownerEmail, title string) error

	// CommentVideo appends a comment stamped with the current time.
	// Missing video fails with VideoNotFoundErr.
	CommentVideo(ctx context.Context, commenterEmail, ownerEmail, title, content string) error

	// GetComments returns commenter records and comments as parallel
	// slices, most recent comment first.
	GetComments(ctx context.Context, ownerEmail, title string) ([]UserRecord, []Comment, error)

	// SearchVideos ranks videos by the number of distinct query words
	// appearing whole in the title or description, highest first.
	SearchVideos(ctx context.Context, query string) ([]OwnedVideo, error)

	// ListTopVideos ranks visible videos by engagement (likes minus
	// dislikes), highest first.
	ListTopVideos(ctx context.Context) ([]RankedVideo, error)

	Close() error
}
