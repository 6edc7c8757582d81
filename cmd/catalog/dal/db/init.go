// Package db is the MySQL engine behind the catalog's storage port,
// with an optional redis cache in front of the reaction aggregates.
package db

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"cliptube/cmd/model"
	"cliptube/pkg/cache"
	"cliptube/pkg/errno"
)

type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	// Redis enables the reaction-count cache when non-nil.
	Redis redis.Cmdable
	// SkipMigration opens the store without touching the schema, for
	// callers that only probe connectivity.
	SkipMigration bool
}

type VideoDB struct {
	db     *gorm.DB
	counts *cache.ReactionCountCache
}

// Open connects to MySQL, probes the connection and, unless the caller
// opted out, migrates the catalog tables. A dead connection fails right
// here with ConnectivityErr instead of surfacing on the first query.
func Open(opts Options) (*VideoDB, error) {
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
			&model.User{},
			&model.Video{},
			&model.VideoReaction{},
			&model.VideoComment{},
		); err != nil {
			return nil, errors.WithMessage(err, "catalog migration failed")
		}
	}

	vdb := &VideoDB{db: gdb}
	if opts.Redis != nil {
		vdb.counts = cache.NewReactionCountCache(opts.Redis)
	}
	logrus.Info("Connected to mysql catalog database")
	return vdb, nil
}

func (v *VideoDB) Close() error {
	sqlDB, err := v.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
