package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Lifecycle policies understood by the event service.
const (
	LifecyclePermissive = "permissive"
	LifecycleStrict     = "strict"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	Lifecycle LifecycleConfig
	Identity  IdentityConfig
	Push      PushConfig
	Seed      []StaffSeed
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	MigrationsDir string
	AutoMigrate   bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard cache tuning.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	RecentLimit  int
}

// LifecycleConfig selects the transition table enforced on events.
type LifecycleConfig struct {
	Policy string
}

// IdentityConfig controls what happens when an authenticated principal has no staff record.
type IdentityConfig struct {
	FallbackEnabled bool
	FallbackID      string
	FallbackName    string
}

// PushConfig configures realtime notification fan-out over PubNub.
type PushConfig struct {
	PublishKey   string
	SubscribeKey string
	UserID       string
	Workers      int
	Retries      int
}

// Enabled reports whether push credentials were supplied.
func (p PushConfig) Enabled() bool {
	return p.PublishKey != "" && p.SubscribeKey != ""
}

// StaffSeed is one account loaded into the staff directory at startup.
type StaffSeed struct {
	Role     string
	Email    string
	Password string
	Name     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:          v.GetString("DB_HOST"),
		Port:          v.GetInt("DB_PORT"),
		User:          v.GetString("DB_USER"),
		Password:      v.GetString("DB_PASSWORD"),
		Name:          v.GetString("DB_NAME"),
		SSLMode:       v.GetString("DB_SSL_MODE"),
		MaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		MigrationsDir: v.GetString("DB_MIGRATIONS_DIR"),
		AutoMigrate:   v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"), ",")}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("ENABLE_CACHE"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
		RecentLimit:  v.GetInt("DASHBOARD_RECENT_LIMIT"),
	}

	policy := strings.ToLower(strings.TrimSpace(v.GetString("LIFECYCLE_POLICY")))
	if policy != LifecycleStrict {
		policy = LifecyclePermissive
	}
	cfg.Lifecycle = LifecycleConfig{Policy: policy}

	cfg.Identity = IdentityConfig{
		FallbackEnabled: v.GetBool("IDENTITY_FALLBACK_ENABLED"),
		FallbackID:      v.GetString("IDENTITY_FALLBACK_ID"),
		FallbackName:    v.GetString("IDENTITY_FALLBACK_NAME"),
	}

	cfg.Push = PushConfig{
		PublishKey:   v.GetString("PUBNUB_PUBLISH_KEY"),
		SubscribeKey: v.GetString("PUBNUB_SUBSCRIBE_KEY"),
		UserID:       v.GetString("PUBNUB_USER_ID"),
		Workers:      v.GetInt("PUSH_WORKERS"),
		Retries:      v.GetInt("PUSH_RETRIES"),
	}

	seeds, err := ParseStaffSeeds(v.GetString("STAFF_SEED"))
	if err != nil {
		return nil, err
	}
	cfg.Seed = seeds

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "event_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MIGRATIONS_DIR", "migrations")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "event-planner-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("DASHBOARD_RECENT_LIMIT", 10)

	v.SetDefault("LIFECYCLE_POLICY", LifecyclePermissive)

	v.SetDefault("IDENTITY_FALLBACK_ENABLED", true)
	v.SetDefault("IDENTITY_FALLBACK_ID", "00000000-0000-0000-0000-000000000001")
	v.SetDefault("IDENTITY_FALLBACK_NAME", "Event Planner")

	v.SetDefault("PUBNUB_PUBLISH_KEY", "")
	v.SetDefault("PUBNUB_SUBSCRIBE_KEY", "")
	v.SetDefault("PUBNUB_USER_ID", "event-planner-api")
	v.SetDefault("PUSH_WORKERS", 2)
	v.SetDefault("PUSH_RETRIES", 3)

	v.SetDefault("STAFF_SEED", "PLANNER:planner@demo.com:planner123:Event Planner;ADMIN:admin@demo.com:admin123:Administrator")
}

// ParseStaffSeeds decodes "ROLE:email:password:Name" entries separated by semicolons.
func ParseStaffSeeds(raw string) ([]StaffSeed, error) {
	entries := splitAndTrim(raw, ";")
	seeds := make([]StaffSeed, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid STAFF_SEED entry %q: want ROLE:email:password:name", entry)
		}
		seed := StaffSeed{
			Role:     strings.ToUpper(strings.TrimSpace(parts[0])),
			Email:    strings.ToLower(strings.TrimSpace(parts[1])),
			Password: parts[2],
			Name:     strings.TrimSpace(parts[3]),
		}
		if seed.Email == "" || seed.Password == "" || seed.Name == "" {
			return nil, fmt.Errorf("invalid STAFF_SEED entry %q: empty field", entry)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw, sep string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
