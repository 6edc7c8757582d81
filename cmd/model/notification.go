package model

import "cliptube/pkg/constants"

// NotificationToken maps a user to their device push token. The token is
// unique across users: registering a token on a new account detaches it
// from the previous one.
type NotificationToken struct {
	UserEmail string `gorm:"primaryKey;size:255"`
	Token     string `gorm:"size:255;uniqueIndex:uk_notification_token"`
}

func (NotificationToken) TableName() string { return constants.NotificationTokenTableName }
