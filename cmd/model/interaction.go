package model

import (
	"time"

	"cliptube/pkg/constants"
)

// VideoReaction keys on (reactor, owner, title); the composite primary key
// is what makes a concurrent double-react collapse into a single row.
type VideoReaction struct {
	UserEmail  string `gorm:"primaryKey;size:255"` // reactor
	OwnerEmail string `gorm:"primaryKey;size:255"`
	Title      string `gorm:"primaryKey;size:255"`
	Value      string `gorm:"size:16"`
}

func (VideoReaction) TableName() string { return constants.VideoReactionTableName }

type VideoComment struct {
	CommentID    int64  `gorm:"primaryKey;autoIncrement:false"`
	OwnerEmail   string `gorm:"size:255;index:idx_comments_video,priority:1"`
	Title        string `gorm:"size:255;index:idx_comments_video,priority:2"`
	UserEmail    string `gorm:"size:255"` // commenter
	Content      string `gorm:"type:text"`
	CreationTime time.Time
}

func (VideoComment) TableName() string { return constants.VideoCommentTableName }
