package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alp4ka/keysetpager"
)

const EnvPrefix = "KEYSETD"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

var _drivers = []string{DriverSQLite, DriverPGX, DriverPostgres, DriverMySQL, DriverMongoDB, DriverMemory}

type Config struct {
	Server   *Server
	Log      *Log
	Database *Database
	Paging   *Paging
}

type Server struct {
	Addr string
}

type Log struct {
	Level    string
	Encoding string
}

type Database struct {
	// Driver is one of sqlite, pgx, postgres, mysql, mongodb, memory.
	Driver string
	DSN    string
	// Name is the MongoDB database name.
	Name string
}

type Paging struct {
	MaxSize int
}

// Load reads the configuration file at path, if any, and applies KEYSETD_*
// environment overrides, e.g. KEYSETD_DATABASE_DSN for database.dsn.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server:   getServerConfig(v),
		Log:      getLogConfig(v),
		Database: getDatabaseConfig(v),
		Paging:   getPagingConfig(v),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "file:keysetd.db?_pragma=busy_timeout(5000)")
	v.SetDefault("database.name", "keysetd")
	v.SetDefault("paging.max_size", keysetpager.MaxLimit)
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Addr: v.GetString("server.addr"),
	}
}

func getLogConfig(v *viper.Viper) *Log {
	return &Log{
		Level:    v.GetString("log.level"),
		Encoding: v.GetString("log.encoding"),
	}
}

func getDatabaseConfig(v *viper.Viper) *Database {
	return &Database{
		Driver: strings.ToLower(v.GetString("database.driver")),
		DSN:    v.GetString("database.dsn"),
		Name:   v.GetString("database.name"),
	}
}

func getPagingConfig(v *viper.Viper) *Paging {
	return &Paging{
		MaxSize: v.GetInt("paging.max_size"),
	}
}

func (c *Config) validate() error {
	if !slices.Contains(_drivers, c.Database.Driver) {
		return fmt.Errorf("unknown database driver '%s', expected one of %v", c.Database.Driver, _drivers)
	}

	if c.Database.Driver != DriverMemory && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for driver '%s'", c.Database.Driver)
	}

	if c.Paging.MaxSize < 1 {
		return fmt.Errorf("paging.max_size must be positive, got %d", c.Paging.MaxSize)
	}

	return nil
}
