// Package db is the MySQL engine behind the notification-token port.
package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cliptube/cmd/model"
	"cliptube/pkg/errno"
)

type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	// SkipMigration opens the store without touching the schema, for
	// callers that only probe connectivity.
	SkipMigration bool
}

type TokenDB struct {
	db *gorm.DB
}

func Open(opts Options) (*TokenDB, error) {
	gdb, err := gorm.Open(mysql.Open(opts.DSN),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
	if err != nil {
		return nil, errors.WithMessage(errno.ConnectivityErr, err.Error())
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.WithMessage(errno.ConnectivityErr, err.Error())
	}
	if err := sqlDB.Ping(); err != nil {
		logrus.Errorf("mysql ping failed: %v", err)
		return nil, errors.WithMessage(errno.ConnectivityErr, err.Error())
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if !opts.SkipMigration {
		if err := gdb.AutoMigrate(&model.NotificationToken{}); err != nil {
			return nil, errors.WithMessage(err, "notification migration failed")
		}
	}

	logrus.Info("Connected to mysql notification database")
	return &TokenDB{db: gdb}, nil
}

// SetNotificationToken detaches the token from any other user before
// assigning it, inside one transaction, so the unique index never trips
// on a device changing accounts.
func (t *TokenDB) SetNotificationToken(ctx context.Context, userEmail, token string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token = ? AND user_email <> ?", token, userEmail).
			Delete(&model.NotificationToken{}).Error; err != nil {
			return errors.WithMessage(err, "failed to detach token")
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_email"}},
			DoUpdates: clause.AssignmentColumns([]string{"token"}),
		}).Create(&model.NotificationToken{
			UserEmail: userEmail,
			Token:     token,
		}).Error; err != nil {
			return errors.WithMessage(err, "failed to save token")
		}
		return nil
	})
}

func (t *TokenDB) GetNotificationToken(ctx context.Context, userEmail string) (string, bool, error) {
	var row model.NotificationToken
	err := t.db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WithMessage(err, "failed to get token")
	}
	return row.Token, true, nil
}

func (t *TokenDB) Close() error {
	sqlDB, err := t.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
