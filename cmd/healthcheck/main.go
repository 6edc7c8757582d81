// Command healthcheck opens the catalog store with the same probe the
// services use and reports whether the backing infrastructure is ready.
// Exit code 0 means the store accepted a connection.
package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cliptube/cmd/catalog/dal/db"
	"cliptube/config"
	"cliptube/pkg/utils"
)

const probeTimeout = 30 * time.Second

func main() {
	if err := config.Init(); err != nil {
		logrus.Errorf("health check: config unavailable: %v", err)
		os.Exit(1)
	}

	// a probe must never alter the schema it is checking
	store, err := db.Open(db.Options{
		DSN:           utils.GetMysqlDsn(),
		MaxOpenConns:  config.ConfigInfo.Mysql.MaxOpenConns,
		MaxIdleConns:  config.ConfigInfo.Mysql.MaxIdleConns,
		SkipMigration: true,
	})
	if err != nil {
		logrus.Errorf("health check: catalog store unavailable: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// redis only backs the count cache, so a failure here is a warning
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       config.ConfigInfo.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.Warnf("health check: redis unavailable, count cache disabled: %v", err)
	}
	_ = rdb.Close()

	logrus.Info("health check passed")
}
