package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // зоны для образов без /usr/share/zoneinfo

	"gopkg.in/yaml.v3"

	"github.com/Leganyst/meeting-planner/internal/calendar"
)

// AppConfig — настройки сервиса. Порядок: значения по умолчанию,
// затем YAML-файл из CONFIG_FILE (если задан), затем переменные окружения.
type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`
	GRPCAddr    string `yaml:"grpc_addr"`
	HTTPAddr    string `yaml:"http_addr"`
	Timezone    string `yaml:"timezone"`

	Grid      GridConfig      `yaml:"grid"`
	Reminders RemindersConfig `yaml:"reminders"`
	CalDAV    CalDAVConfig    `yaml:"caldav"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Redis     RedisConfig     `yaml:"redis"`
	OTel      OTelConfig      `yaml:"otel"`

	// Заполняются в Validate.
	Location    *time.Location       `yaml:"-"`
	GridFrom    calendar.TimeOfDay   `yaml:"-"`
	GridTo      calendar.TimeOfDay   `yaml:"-"`
	LaneMode    calendar.LaneMode    `yaml:"-"`
	ParsePolicy calendar.ParsePolicy `yaml:"-"`
}

// GridConfig — дневная сетка раскладки.
type GridConfig struct {
	From        string  `yaml:"from"`
	To          string  `yaml:"to"`
	StepMinutes int     `yaml:"step_minutes"`
	LaneMode    string  `yaml:"lane_mode"`
	LaneGap     float64 `yaml:"lane_gap_percent"`
	ParsePolicy string  `yaml:"parse_policy"`
}

type RemindersConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Offsets  []int         `yaml:"offsets_minutes"`
	Cron     string        `yaml:"cron"`
	Lookback time.Duration `yaml:"lookback"`
}

type CalDAVConfig struct {
	URL          string        `yaml:"url"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	CalendarPath string        `yaml:"calendar_path"`
	Timeout      time.Duration `yaml:"timeout"`
}

type TelegramConfig struct {
	Token string `yaml:"token"`
}

type KafkaConfig struct {
	Brokers string `yaml:"brokers"` // через запятую
	Topic   string `yaml:"topic"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type OTelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		ServiceName: "meeting-planner",
		LogLevel:    "info",
		GRPCAddr:    ":50051",
		HTTPAddr:    ":8080",
		Timezone:    "UTC",
		Grid: GridConfig{
			From:        "07:00",
			To:          "21:00",
			StepMinutes: 30,
			LaneMode:    "cluster",
			LaneGap:     1,
			ParsePolicy: "strict",
		},
		Reminders: RemindersConfig{
			Enabled:  true,
			Offsets:  []int{24 * 60, 60, 15},
			Cron:     "* * * * *",
			Lookback: 10 * time.Minute,
		},
		CalDAV: CalDAVConfig{
			Timeout: 10 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic: "meetings.reminder.due.v1",
		},
		Redis: RedisConfig{
			Channel: "meetings:changed",
		},
		OTel: OTelConfig{
			Endpoint:    "jaeger:4317",
			SampleRatio: 1,
		},
	}
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := defaultAppConfig()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.GRPCAddr = getEnv("GRPC_ADDR", c.GRPCAddr)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)

	c.Grid.From = getEnv("GRID_FROM", c.Grid.From)
	c.Grid.To = getEnv("GRID_TO", c.Grid.To)
	c.Grid.StepMinutes = getEnvInt("GRID_STEP_MINUTES", c.Grid.StepMinutes)
	c.Grid.LaneMode = getEnv("GRID_LANE_MODE", c.Grid.LaneMode)
	c.Grid.LaneGap = getEnvFloat("GRID_LANE_GAP_PERCENT", c.Grid.LaneGap)
	c.Grid.ParsePolicy = getEnv("GRID_PARSE_POLICY", c.Grid.ParsePolicy)

	c.Reminders.Enabled = getEnvBool("REMINDERS_ENABLED", c.Reminders.Enabled)
	c.Reminders.Offsets = getEnvInts("REMINDER_OFFSETS", c.Reminders.Offsets)
	c.Reminders.Cron = getEnv("REMINDER_CRON", c.Reminders.Cron)
	c.Reminders.Lookback = getEnvDuration("REMINDER_LOOKBACK", c.Reminders.Lookback)

	c.CalDAV.URL = getEnv("CALDAV_URL", c.CalDAV.URL)
	c.CalDAV.Username = getEnv("CALDAV_USERNAME", c.CalDAV.Username)
	c.CalDAV.Password = getEnv("CALDAV_PASSWORD", c.CalDAV.Password)
	c.CalDAV.CalendarPath = getEnv("CALDAV_CALENDAR_PATH", c.CalDAV.CalendarPath)
	c.CalDAV.Timeout = getEnvDuration("CALDAV_TIMEOUT", c.CalDAV.Timeout)

	c.Telegram.Token = getEnv("TELEGRAM_BOT_TOKEN", c.Telegram.Token)

	c.Kafka.Brokers = getEnv("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = getEnv("KAFKA_REMINDER_TOPIC", c.Kafka.Topic)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.Channel = getEnv("REDIS_CHANNEL", c.Redis.Channel)

	c.OTel.Enabled = getEnvBool("OTEL_ENABLED", c.OTel.Enabled)
	c.OTel.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTel.Endpoint)
	c.OTel.SampleRatio = getEnvFloat("OTEL_SAMPLING_RATIO", c.OTel.SampleRatio)
}

// Validate проверяет значения и заполняет разобранные поля.
func (c *AppConfig) Validate() error {
	var errs []error

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", c.Timezone, err))
	}
	c.Location = loc

	if c.GridFrom, err = calendar.ParseTimeOfDay(c.Grid.From); err != nil {
		errs = append(errs, fmt.Errorf("grid.from: %w", err))
	}
	if c.GridTo, err = calendar.ParseTimeOfDay(c.Grid.To); err != nil {
		errs = append(errs, fmt.Errorf("grid.to: %w", err))
	}
	if c.Grid.StepMinutes <= 0 {
		errs = append(errs, fmt.Errorf("grid.step_minutes must be positive, got %d", c.Grid.StepMinutes))
	}
	if c.LaneMode, err = calendar.ParseLaneMode(c.Grid.LaneMode); err != nil {
		errs = append(errs, err)
	}
	if c.ParsePolicy, err = calendar.ParsePlacementPolicy(c.Grid.ParsePolicy); err != nil {
		errs = append(errs, err)
	}

	for _, off := range c.Reminders.Offsets {
		if off <= 0 {
			errs = append(errs, fmt.Errorf("reminder offset must be positive, got %d", off))
		}
	}
	if c.Reminders.Lookback < 0 {
		errs = append(errs, errors.New("reminders.lookback must not be negative"))
	}
	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("otel.sample_ratio must be in [0, 1], got %v", c.OTel.SampleRatio))
	}
	if (c.CalDAV.URL == "") != (c.CalDAV.CalendarPath == "") {
		errs = append(errs, errors.New("caldav: url and calendar_path must be set together"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid app config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnvInts(key string, def []int) []int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil {
			return def
		}
		out = append(out, i)
	}
	return out
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
