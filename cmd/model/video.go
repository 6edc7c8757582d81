package model

import (
	"time"

	"cliptube/pkg/constants"
)

type Video struct {
	VideoID      int64     `gorm:"primaryKey;autoIncrement:false"`
	UserEmail    string    `gorm:"size:255;uniqueIndex:uk_videos_owner_title,priority:1"`
	Title        string    `gorm:"size:255;uniqueIndex:uk_videos_owner_title,priority:2"`
	Description  string    `gorm:"type:text"`
	CreationTime time.Time `gorm:"index:idx_videos_creation"`
	Visible      bool
	Location     string `gorm:"size:255"`
	FileLocation string `gorm:"size:1024"`
}

func (Video) TableName() string { return constants.VideoTableName }
