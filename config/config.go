package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init reads config.yml from the usual locations into ConfigInfo.
// Viper is case-insensitive, so key casing in the file does not matter.
func Init() error {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")

	configPaths := []string{
		"./config",
		"../config",
		"../../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Errorf("config file not found: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
		return err
	}

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.MaxOpenConns = viper.GetInt("mysql.max_open_conns")
	ConfigInfo.Mysql.MaxIdleConns = viper.GetInt("mysql.max_idle_conns")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.Snowflake.WorkerID = viper.GetInt64("snowflake.worker_id")
	ConfigInfo.Snowflake.DatacenterID = viper.GetInt64("snowflake.datacenter_id")

	logrus.Infof("Config loaded - MySQL: %s@%s/%s",
		ConfigInfo.Mysql.Username, ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	return nil
}
