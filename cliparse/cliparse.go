package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/idea-board/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Port           int      `validate:"min=1,max=65535"`
	DatabaseURL    string   `validate:"required_if=DatabaseType postgres"`
	DatabaseType   string   `validate:"oneof=memory sqlite postgres"`
	MaxTextLength  int      `validate:"min=1"`
	RateLimit      float64  `validate:"gte=0"` // requests per second per client, 0 disables
	RateBurst      int      `validate:"gte=0"`
	AllowedOrigins []string `validate:"dive,required"`
	TrustProxy     bool     // rate limit by X-Forwarded-For instead of the peer address
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, origins string

	fs := flag.NewFlagSet("idea-board", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (memory, sqlite or postgres)")
	fs.IntVar(&cfg.MaxTextLength, "max-length", 0, "Maximum idea length in characters")
	fs.Float64Var(&cfg.RateLimit, "rate", -1, "Requests per second allowed per client (0 disables)")
	fs.IntVar(&cfg.RateBurst, "burst", -1, "Burst size for the per-client rate limit")
	fs.StringVar(&origins, "origins", "", "Comma-separated CORS origins")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Trust X-Forwarded-For from a reverse proxy")
	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		cfg.DatabaseURL = "file:ideaboard.db"
	}
	if cfg.MaxTextLength == 0 {
		n, err := intFromEnv("MAX_TEXT_LENGTH", models.DefaultMaxTextLength)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxTextLength = n
	}
	if cfg.RateLimit < 0 {
		cfg.RateLimit = 5
		if s := os.Getenv("RATE_LIMIT"); s != "" {
			rate, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = rate
		}
	}
	if cfg.RateBurst < 0 {
		n, err := intFromEnv("RATE_BURST", 10)
		if err != nil {
			return Config{}, err
		}
		cfg.RateBurst = n
	}
	if !cfg.TrustProxy {
		if s := os.Getenv("TRUST_PROXY"); s != "" {
			trust, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}
	if origins == "" {
		origins = os.Getenv("CORS_ALLOWED_ORIGINS")
	}
	cfg.AllowedOrigins = splitList(origins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, describe(err)
	}
	return cfg, nil
}

// ClientConfig selects the API origin and retry policy for clients.
type ClientConfig struct {
	BaseURL    string        `validate:"required,http_url"`
	MaxRetries int           `validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `validate:"gt=0"`
}

// NewClientConfig fills blanks from IDEABOARD_API_URL (also read from
// .env) and fails fast when the base URL is missing or malformed.
func NewClientConfig(baseURL string, maxRetries int, baseDelay time.Duration) (ClientConfig, error) {
	if err := loadEnvFile(".env"); err != nil {
		return ClientConfig{}, err
	}
	if baseURL == "" {
		baseURL = os.Getenv("IDEABOARD_API_URL")
	}

	cfg := ClientConfig{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		MaxRetries: maxRetries,
		BaseDelay:  baseDelay,
	}
	if err := validate.Struct(cfg); err != nil {
		return ClientConfig{}, describe(err)
	}
	return cfg, nil
}

// loadEnvFile loads variables that are not already set. A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func intFromEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// describe turns validator errors into one readable message per field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "http_url":
			msgs = append(msgs, fmt.Sprintf("%s must be an http(s) URL, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
