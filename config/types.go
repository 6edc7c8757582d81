package config

type config struct {
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	Snowflake snowflake `yaml:"snowflake" mapstructure:"snowflake"`
}

type mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type snowflake struct {
	WorkerID     int64 `yaml:"worker_id" mapstructure:"worker_id"`
	DatacenterID int64 `yaml:"datacenter_id" mapstructure:"datacenter_id"`
}
