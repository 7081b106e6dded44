package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	HTTP        HTTPConfig        `yaml:"http"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Fixtures    FixturesConfig    `yaml:"fixtures"`
	Odds        OddsConfig        `yaml:"odds"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Translation TranslationConfig `yaml:"translation"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	Redis       RedisConfig       `yaml:"redis"`
	Telegram    TelegramConfig    `yaml:"telegram"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type HTTPConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	Timeout           time.Duration `yaml:"timeout"` // applied to every outbound call
	CORSOrigins       []string      `yaml:"cors_origins"`
}

type FetchConfig struct {
	UserAgent         string            `yaml:"user_agent"`
	Headers           map[string]string `yaml:"headers"`
	RenderJS          bool              `yaml:"render_js"` // use headless Chrome instead of plain HTTP
	RequestsPerSecond float64           `yaml:"requests_per_second"`
}

type FixturesConfig struct {
	Source  string `yaml:"source"` // scoreboard or static
	BaseURL string `yaml:"base_url"`
}

type OddsConfig struct {
	Source   string `yaml:"source"` // proxy, oddspedia or none
	ProxyURL string `yaml:"proxy_url"`
	BaseURL  string `yaml:"base_url"`
}

type ScoringConfig struct {
	Model           string   `yaml:"model"`    // rule or logistic
	Artifact        string   `yaml:"artifact"` // local path or s3://bucket/key
	SpreadThreshold float64  `yaml:"spread_threshold"`
	TotalThreshold  float64  `yaml:"total_threshold"`
	S3              S3Config `yaml:"s3"`
}

type S3Config struct {
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type TranslationConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Translator   string `yaml:"translator"` // google or none
	Endpoint     string `yaml:"endpoint"`
	TargetLocale string `yaml:"target_locale"`
	Store        string `yaml:"store"` // file, redis or postgres
	FilePath     string `yaml:"file_path"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TelegramConfig struct {
	Token          string        `yaml:"token"`
	ChatIDs        []int64       `yaml:"chat_ids"`         // push recipients
	AllowedUserIDs []int64       `yaml:"allowed_user_ids"` // optional: restrict commands to these users
	Mode           string        `yaml:"mode"`             // polling or webhook
	WebhookSecret  string        `yaml:"webhook_secret"`
	UpdateTimeout  int           `yaml:"update_timeout"`
	SendInterval   time.Duration `yaml:"send_interval"`
	DryRun         bool          `yaml:"dry_run"` // log messages instead of sending
}

type ScheduleConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Cron       string        `yaml:"cron"`
	Timezone   string        `yaml:"timezone"`
	Sport      string        `yaml:"sport"`
	RunTimeout time.Duration `yaml:"run_timeout"`
}

// Defaults returns the configuration used for every field the YAML file omits.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		HTTP: HTTPConfig{
			Port:              3000,
			ReadHeaderTimeout: 5 * time.Second,
			Timeout:           10 * time.Second,
			CORSOrigins:       []string{"*"},
		},
		Fetch: FetchConfig{
			UserAgent:         "Mozilla/5.0",
			RequestsPerSecond: 2,
		},
		Fixtures: FixturesConfig{
			Source:  "scoreboard",
			BaseURL: "https://sofascore-proxy-production.up.railway.app",
		},
		Odds: OddsConfig{
			Source:   "proxy",
			ProxyURL: "https://line-odds-bot.up.railway.app/odds-proxy",
			BaseURL:  "https://oddspedia.com",
		},
		Scoring: ScoringConfig{
			Model:           "rule",
			SpreadThreshold: -2.5,
			TotalThreshold:  220,
		},
		Translation: TranslationConfig{
			Enabled:      true,
			Translator:   "google",
			Endpoint:     "https://translate.googleapis.com/translate_a/single",
			TargetLocale: "zh-TW",
			Store:        "file",
			FilePath:     "team_translation_cache.json",
		},
		Telegram: TelegramConfig{
			Mode:          "polling",
			UpdateTimeout: 60,
			SendInterval:  2 * time.Second,
		},
		Schedule: ScheduleConfig{
			Enabled:    true,
			Cron:       "0 * * * *",
			Timezone:   "Asia/Taipei",
			Sport:      "nba",
			RunTimeout: 2 * time.Minute,
		},
	}
}

// Load reads the YAML file at configPath over Defaults, then applies
// environment overrides (a .env file is loaded first when present).
func Load(configPath string) (*Config, error) {
	config := Defaults()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	_ = godotenv.Load()

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyEnvOverrides(cfg *Config) error {
	setStr(&cfg.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.Telegram.WebhookSecret, "WEBHOOK_SECRET")
	setStr(&cfg.Postgres.DSN, "POSTGRES_DSN")
	setStr(&cfg.Redis.Addr, "REDIS_ADDR")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setStr(&cfg.Scoring.S3.AccessKey, "AWS_ACCESS_KEY_ID")
	setStr(&cfg.Scoring.S3.SecretKey, "AWS_SECRET_ACCESS_KEY")

	if v := os.Getenv("TELEGRAM_CHAT_IDS"); v != "" {
		ids, err := ParseIDList(v)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_IDS: %w", err)
		}
		cfg.Telegram.ChatIDs = ids
	}
	return nil
}

func setStr(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// ParseIDList parses a comma-separated list of numeric ids.
func ParseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
