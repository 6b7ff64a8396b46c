package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

// devSecretKey is the SECRET_KEY default. It signs session cookies, so
// production refuses it.
const devSecretKey = "dev_secret_key"

// Config holds all runtime configuration. Values come from an optional
// config.yaml, overridden by environment variables (a .env file is loaded
// into the environment first). Secrets are environment-only.
type Config struct {
	Port          int    `yaml:"port" env:"PORT" env-default:"5000"`
	Env           string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	PublicBaseURL string `yaml:"public_base_url" env:"PUBLIC_BASE_URL" env-default:""`
	SecretKey     string `yaml:"-" env:"SECRET_KEY" env-default:"dev_secret_key"`

	CORSAllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`

	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Budget   BudgetConfig   `yaml:"budget"`
	Redis    RedisConfig    `yaml:"redis"`
	Mail     MailConfig     `yaml:"mail"`
	Google   GoogleConfig   `yaml:"google"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// DatabaseConfig describes the PostgreSQL connection. URL wins over the
// discrete fields when set.
type DatabaseConfig struct {
	URL           string `yaml:"-" env:"DATABASE_URL" env-default:""`
	Host          string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"DB_USERNAME" env-default:"filmdesk"`
	Password      string `yaml:"-" env:"DB_PASSWORD"`
	Name          string `yaml:"name" env:"DB_DATABASE" env-default:"filmdesk"`
	SSLMode       string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`
	AdminUser     string `yaml:"admin_user" env:"DB_ADMIN_USER" env-default:"postgres"`
	AdminPassword string `yaml:"-" env:"DB_ADMIN_PASSWORD"`
	MaxConns      int32  `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"25"`
	MinConns      int32  `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"2"`
}

type LLMConfig struct {
	Provider        string `yaml:"provider" env:"LLM_PROVIDER" env-default:"gemini"`
	Model           string `yaml:"model" env:"LLM_MODEL" env-default:""`
	BaseURL         string `yaml:"base_url" env:"LLM_BASE_URL" env-default:""`
	GeminiAPIKey    string `yaml:"-" env:"GEMINI_API_KEY"`
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`
}

// APIKey returns the key for the configured provider.
func (c *LLMConfig) APIKey() string {
	switch strings.ToLower(c.Provider) {
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

type BudgetConfig struct {
	ModelPath   string `yaml:"model_path" env:"BUDGET_MODEL_PATH" env-default:""`
	ColumnsPath string `yaml:"columns_path" env:"BUDGET_COLUMNS_PATH" env-default:""`
}

// Enabled reports whether prediction artifacts are configured.
func (c *BudgetConfig) Enabled() bool {
	return c.ModelPath != "" || c.ColumnsPath != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:""`
	Password string `yaml:"-" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type MailConfig struct {
	Server              string `yaml:"server" env:"MAIL_SERVER" env-default:""`
	Port                int    `yaml:"port" env:"MAIL_PORT" env-default:"587"`
	Username            string `yaml:"username" env:"MAIL_USERNAME" env-default:""`
	Password            string `yaml:"-" env:"MAIL_PASSWORD"`
	From                string `yaml:"from" env:"MAIL_FROM" env-default:""`
	ConfirmationEnabled bool   `yaml:"confirmation_enabled" env:"MAIL_CONFIRMATION_ENABLED" env-default:"false"`
}

// ConfirmationActive reports whether new accounts must confirm their email.
func (c *MailConfig) ConfirmationActive() bool {
	return c.ConfirmationEnabled && c.Server != ""
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID" env-default:""`
	ClientSecret string `yaml:"-" env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `yaml:"redirect_url" env:"GOOGLE_REDIRECT_URL" env-default:""`
}

func (c *GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Load reads config.yaml (when present) and the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = "config.yaml"
	}
	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.IsProduction() && c.SecretKey == devSecretKey {
		return errors.New("SECRET_KEY must be set in production")
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.Budget.Enabled() && (c.Budget.ModelPath == "" || c.Budget.ColumnsPath == "") {
		return errors.New("BUDGET_MODEL_PATH and BUDGET_COLUMNS_PATH must be set together")
	}
	if c.Mail.ConfirmationEnabled && c.Mail.Server == "" {
		return errors.New("MAIL_CONFIRMATION_ENABLED requires MAIL_SERVER")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns the application database connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return c.dsn(c.User, c.Password, c.Name)
}

// AdminDSN connects to the maintenance database with admin credentials.
func (c *DatabaseConfig) AdminDSN() string {
	return c.dsn(c.AdminUser, c.AdminPassword, "postgres")
}

// Redacted returns the DSN with the password masked, for logging.
func (c *DatabaseConfig) Redacted() string {
	u, err := url.Parse(c.DSN())
	if err != nil {
		return "<unparseable database url>"
	}
	return u.Redacted()
}

func (c *DatabaseConfig) dsn(user, password, database string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
