// Package db is the MySQL engine behind the social storage port.
package db

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

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

type FriendDB struct {
	db *gorm.DB
}

// Open connects to MySQL, probes the connection and, unless the caller
// opted out, migrates the social tables.
func Open(opts Options) (*FriendDB, error) {
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
		if err := gdb.AutoMigrate(
			&model.FriendRequest{},
			&model.Friendship{},
			&model.PrivateMessage{},
		); err != nil {
			return nil, errors.WithMessage(err, "social migration failed")
		}
	}

	logrus.Info("Connected to mysql social database")
	return &FriendDB{db: gdb}, nil
}

func (f *FriendDB) Close() error {
	sqlDB, err := f.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
