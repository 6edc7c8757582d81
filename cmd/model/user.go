package model

import "cliptube/pkg/constants"

// User rows are written by the external auth layer and only joined against
// here; the catalog never deletes them.
type User struct {
	Email       string `gorm:"primaryKey;size:255"`
	Fullname    string `gorm:"size:255"`
	PhoneNumber string `gorm:"size:64"`
	Photo       string `gorm:"size:1024"`
}

func (User) TableName() string { return constants.UserTableName }
