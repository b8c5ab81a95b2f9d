package database

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the database file path. Only used by the sqlite driver.
	Path string `mapstructure:"path" default:"item-matcher.db"`
	// Host is the database host. Only used by the mysql driver.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port. Only used by the mysql driver.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user. Only used by the mysql driver.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password. Only used by the mysql driver.
	Password string `mapstructure:"password" default:""`
	// Name is the database name. Only used by the mysql driver.
	Name string `mapstructure:"name" default:"matcher"`
	// TimeoutSeconds is the connection and I/O timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
