package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string
	Path            string // для sqlite: файл или file::memory:
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // минут
}

func LoadDBConfig() (*DBConfig, error) {
	cfg := &DBConfig{
		Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Path:            getEnv("DB_PATH", "./data/meetings.db"),
		Host:            getEnv("DB_HOST", "postgres"),
		User:            getEnv("DB_USER", "meetings"),
		Password:        getEnv("DB_PASSWORD", "meetings"),
		Name:            getEnv("DB_NAME", "meetings_db"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
		Port:            getEnvInt("DB_PORT", 5432),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate — минимальная проверка под выбранный драйвер.
func (c *DBConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" || c.User == "" || c.Name == "" {
			return fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("invalid DB config: DB_PATH must not be empty for sqlite")
		}
	default:
		return fmt.Errorf("invalid DB config: unknown driver %q", c.Driver)
	}
	return nil
}

// DSN для postgres.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
		c.TimeZone,
	)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
