package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP   HTTPConfig
	Store  StoreConfig
	Blob   BlobConfig
	GitHub GitHubConfig
	Cache  CacheConfig
	SMTP   SMTPConfig
	Queue  QueueConfig
	Admin  AdminConfig
	JWT    JWTConfig
	Enrich EnrichConfig
	Log    LogConfig
	Rules  Rules
}

type HTTPConfig struct {
	Port           string `validate:"required,numeric"`
	MaxUploadBytes int64  `validate:"min=1024"`
	PublicURL      string `validate:"omitempty,url"`
	// Лимит подачи заявок с одного IP; 0 отключает.
	SubmitPerMinute int `validate:"gte=0"`
	SubmitBurst     int `validate:"gte=0"`
}

type StoreConfig struct {
	Driver      string `validate:"oneof=postgres sqlite"`
	DatabaseURL string `validate:"required_if=Driver postgres"`
	SQLitePath  string `validate:"required_if=Driver sqlite"`
}

type BlobConfig struct {
	Driver    string `validate:"oneof=local s3"`
	Dir       string `validate:"required_if=Driver local"`
	Bucket    string `validate:"required_if=Driver s3"`
	Region    string
	Endpoint  string `validate:"omitempty,url"`
	AccessKey string
	SecretKey string
	PathStyle bool
}

type GitHubConfig struct {
	APIURL            string `validate:"required,url"`
	Token             string
	Timeout           time.Duration `validate:"min=1ms"`
	RequestsPerSecond float64       `validate:"gte=0"`
}

type CacheConfig struct {
	RedisURL string        `validate:"omitempty,url"`
	TTL      time.Duration `validate:"gte=0"`
}

type SMTPConfig struct {
	Host      string
	Port      int `validate:"min=1,max=65535"`
	Username  string
	Password  string
	From      string `validate:"omitempty,email"`
	Recruiter string `validate:"omitempty,email"`
}

// Enabled reports whether mail should go through SMTP.
func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.From != "" }

type QueueConfig struct {
	URL   string
	Queue string `validate:"required"`
}

type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

type JWTConfig struct {
	Secret     string `validate:"required,min=8"`
	Issuer     string `validate:"required"`
	TTLMinutes int    `validate:"min=1"`
}

func (c JWTConfig) TTL() time.Duration { return time.Duration(c.TTLMinutes) * time.Minute }

type EnrichConfig struct {
	Mode    string        `validate:"oneof=inline async queue"`
	Timeout time.Duration `validate:"min=1ms"`
}

type LogConfig struct {
	Level  string
	Format string `validate:"omitempty,oneof=json console"`
}

var validate = validator.New()

// Load reads environment variables, optionally from a .env file if present,
// then applies the rules file named by RULES_FILE.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		HTTP: HTTPConfig{
			Port:           getEnv("PORT", "8080"),
			MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
			PublicURL:      strings.TrimRight(os.Getenv("PUBLIC_URL"), "/"),

			SubmitPerMinute: getEnvInt("SUBMIT_RATE_PER_MIN", 10),
			SubmitBurst:     getEnvInt("SUBMIT_BURST", 3),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getEnv("SQLITE_PATH", "data/internhub.db"),
		},
		Blob: BlobConfig{
			Driver:    strings.ToLower(getEnv("BLOB_DRIVER", "local")),
			Dir:       getEnv("BLOB_DIR", "uploads"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "auto"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PathStyle: getEnvBool("S3_PATH_STYLE", false),
		},
		GitHub: GitHubConfig{
			APIURL:            getEnv("GITHUB_API_URL", "https://api.github.com"),
			Token:             os.Getenv("GITHUB_TOKEN"),
			Timeout:           getEnvDuration("GITHUB_TIMEOUT", 10*time.Second),
			RequestsPerSecond: getEnvFloat("GITHUB_RPS", 1),
		},
		Cache: CacheConfig{
			RedisURL: os.Getenv("REDIS_URL"),
			TTL:      getEnvDuration("CACHE_TTL", time.Hour),
		},
		SMTP: SMTPConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getEnvInt("SMTP_PORT", 587),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			From:      os.Getenv("SMTP_FROM"),
			Recruiter: os.Getenv("RECRUITER_EMAIL"),
		},
		Queue: QueueConfig{
			URL:   os.Getenv("RABBITMQ_URL"),
			Queue: getEnv("RABBITMQ_QUEUE", "internhub.enrich"),
		},
		Admin: AdminConfig{
			Username:     os.Getenv("ADMIN_USERNAME"),
			Password:     os.Getenv("ADMIN_PASSWORD"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "dev-secret-change"),
			Issuer:     getEnv("JWT_ISSUER", "internhub"),
			TTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),
		},
		Enrich: EnrichConfig{
			Mode:    strings.ToLower(getEnv("ENRICH_MODE", "async")),
			Timeout: getEnvDuration("ENRICH_TIMEOUT", 60*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	rules, err := LoadRules(os.Getenv("RULES_FILE"))
	if err != nil {
		return Config{}, err
	}
	cfg.Rules = rules

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	if c.Enrich.Mode == "queue" && c.Queue.URL == "" {
		return errors.New("config: RABBITMQ_URL is required when ENRICH_MODE=queue")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
