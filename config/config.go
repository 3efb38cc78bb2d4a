package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	InsightTTL    time.Duration

	StandardsFile      string
	BaselineTempF      float64
	TempCoefficient    float64
	StaleFieldAgeYears float64
	AutoSuggest        bool

	JWTSecret      string
	EnableDevLogin bool

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
}

// SMTPEnabled reports whether report emails go out over SMTP.
func (c AppConfig) SMTPEnabled() bool { return c.SMTPHost != "" }

// LLMEnabled reports whether narratives come from the remote model.
func (c AppConfig) LLMEnabled() bool { return c.LLMEndpoint != "" && c.LLMAPIKey != "" }

// Load reads .env (if present) and the environment. A malformed numeric or
// boolean value is an error rather than a silent default.
func Load() (AppConfig, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

func load(getenv func(string) string) (AppConfig, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	var errs []string
	getInt := func(k string, def int) int {
		v := get(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q is not an integer", k, v))
			return def
		}
		return n
	}
	getFloat := func(k string, def float64) float64 {
		v := get(k, "")
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q is not a number", k, v))
			return def
		}
		return f
	}
	getBool := func(k string, def bool) bool {
		v := get(k, "")
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q is not a boolean", k, v))
			return def
		}
		return b
	}

	cfg := AppConfig{
		Port:      get("PORT", "8080"),
		DBPath:    get("DB_PATH", "fieldhealth.db"),
		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "json"),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		InsightTTL:    time.Duration(getInt("INSIGHT_CACHE_TTL_SEC", 300)) * time.Second,

		StandardsFile:      get("STANDARDS_FILE", ""),
		BaselineTempF:      getFloat("BASELINE_TEMP_F", 70),
		TempCoefficient:    getFloat("TEMP_COEFFICIENT", 0.004),
		StaleFieldAgeYears: getFloat("STALE_FIELD_AGE_YEARS", 8),
		AutoSuggest:        getBool("AUTO_SUGGEST", true),

		JWTSecret:      get("JWT_SECRET", ""),
		EnableDevLogin: getBool("ENABLE_DEV_LOGIN", false),

		SMTPHost:     get("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     get("SMTP_USER", ""),
		SMTPPassword: get("SMTP_PASSWORD", ""),
		SMTPFrom:     get("SMTP_FROM", ""),

		LLMEndpoint: get("LLM_ENDPOINT", ""),
		LLMAPIKey:   get("LLM_API_KEY", ""),
		LLMModel:    get("LLM_MODEL", "gpt-4o-mini"),
	}

	if cfg.InsightTTL < 0 {
		errs = append(errs, "INSIGHT_CACHE_TTL_SEC must not be negative")
	}
	if !cfg.EnableDevLogin && cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required unless ENABLE_DEV_LOGIN=true")
	}
	if len(errs) > 0 {
		return AppConfig{}, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	c.RedisPassword = mask(c.RedisPassword)
	c.JWTSecret = mask(c.JWTSecret)
	c.SMTPPassword = mask(c.SMTPPassword)
	c.LLMAPIKey = mask(c.LLMAPIKey)
	return c
}
