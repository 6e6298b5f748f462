package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xaenox/nico-bot/internal/classifier"
	"github.com/xaenox/nico-bot/internal/persona"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	FactsSourceFile     = "file"
	FactsSourcePostgres = "postgres"
)

type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Facts      FactsConfig      `mapstructure:"facts"`
	Persona    PersonaConfig    `mapstructure:"persona"`
	Moderation ModerationConfig `mapstructure:"moderation"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	Mode        string `mapstructure:"mode"`
	BaseURL     string `mapstructure:"base_url"`
	PollTimeout int    `mapstructure:"poll_timeout"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	HealthUserAgent string `mapstructure:"health_user_agent"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type FactsConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

type PersonaConfig struct {
	Active       string  `mapstructure:"active"`
	Temperature  float64 `mapstructure:"temperature"`
	TemplatePath string  `mapstructure:"template_path"`
}

type ModerationConfig struct {
	OfficialDomains []string      `mapstructure:"official_domains"`
	BlockedWords    []string      `mapstructure:"blocked_words"`
	NoiseTokens     []string      `mapstructure:"noise_tokens"`
	TopicKeywords   []string      `mapstructure:"topic_keywords"`
	SupportContact  string        `mapstructure:"support_contact"`
	GroupRules      string        `mapstructure:"group_rules"`
	WarnTemplate    string        `mapstructure:"warn_template"`
	PermissionTTL   time.Duration `mapstructure:"permission_ttl"`
}

const defaultGroupRules = `👋 *Welcome to NicoNetwork Official Group!*

📜 *Group Rules:*
- Please stay respectful, no insults or spam.
- Only NicoNetwork links are allowed (https://niconetwork.cfd).
- Group opens *10:00 AM* and closes *8:00 PM* daily.
- Help one another and stay positive.

For assistance, message support: %s
*Enjoy your time here and happy investing!* 🚀`

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  sslMode,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.mode", ModePolling)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("server.listen_addr", ":3000")
	v.SetDefault("server.health_user_agent", "cron-job.org")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("facts.source", FactsSourceFile)
	v.SetDefault("facts.path", "data/faq.json")
	v.SetDefault("persona.active", persona.Professional)
	v.SetDefault("moderation.official_domains", []string{"niconetwork.cfd"})
	v.SetDefault("moderation.blocked_words", classifier.DefaultBlockedWords)
	v.SetDefault("moderation.noise_tokens", classifier.DefaultNoiseTokens)
	v.SetDefault("moderation.topic_keywords", classifier.DefaultTopicKeywords)
	v.SetDefault("moderation.support_contact", "@NicoNetworkSupport")
	v.SetDefault("moderation.permission_ttl", 5*time.Minute)
}

// LoadConfig reads path (if non-empty) on top of defaults, then applies
// environment overrides. Callers that start the bot must call Validate.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		config.Database = dbConfig
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}
	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}
	if baseURL := v.GetString("BASE_URL"); baseURL != "" {
		config.Telegram.BaseURL = baseURL
	}
	if port := v.GetString("PORT"); port != "" {
		config.Server.ListenAddr = ":" + port
	}

	if config.Moderation.GroupRules == "" {
		config.Moderation.GroupRules = fmt.Sprintf(defaultGroupRules, config.Moderation.SupportContact)
	}

	return &config, nil
}

// Validate checks the settings the bot cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("telegram token is required"))
	}
	switch c.Telegram.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.Telegram.BaseURL == "" {
			errs = append(errs, errors.New("telegram.base_url is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown telegram mode %q", c.Telegram.Mode))
	}
	if c.Facts.Source != FactsSourceFile && c.Facts.Source != FactsSourcePostgres {
		errs = append(errs, fmt.Errorf("unknown facts source %q", c.Facts.Source))
	}
	if _, ok := persona.Lookup(c.Persona.Active); !ok {
		errs = append(errs, fmt.Errorf("unknown persona %q (available: %s)",
			c.Persona.Active, strings.Join(persona.Names(), ", ")))
	}
	if len(c.Moderation.OfficialDomains) == 0 {
		errs = append(errs, errors.New("moderation.official_domains must not be empty"))
	}

	return errors.Join(errs...)
}
