package model

import (
	"time"

	"cliptube/pkg/constants"
)

// FriendRequest is a pending request; accepting or rejecting deletes the
// row, so presence alone means pending.
type FriendRequest struct {
	FromEmail    string `gorm:"primaryKey;size:255"`
	ToEmail      string `gorm:"primaryKey;size:255"`
	CreationTime time.Time
}

func (FriendRequest) TableName() string { return constants.FriendRequestTableName }

// Friendship stores the pair lexicographically ordered, UserA < UserB,
// so one row covers both directions.
type Friendship struct {
	UserA string `gorm:"primaryKey;size:255"`
	UserB string `gorm:"primaryKey;size:255"`
}

func (Friendship) TableName() string { return constants.FriendshipTableName }

type PrivateMessage struct {
	MessageID    int64  `gorm:"primaryKey;autoIncrement:false"`
	FromEmail    string `gorm:"size:255;index:idx_messages_from"`
	ToEmail      string `gorm:"size:255;index:idx_messages_to"`
	Content      string `gorm:"type:text"`
	CreationTime time.Time
}

func (PrivateMessage) TableName() string { return constants.PrivateMessageTableName }
