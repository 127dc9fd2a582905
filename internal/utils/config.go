package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingTokenSecret = errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	ErrSharedTokenSecret  = errors.New("access and refresh token secrets must differ")
	ErrInvalidBcryptCost  = fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
)

type DatabaseConfig struct {
	Host             string
	Port             string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	QueryTimeout     time.Duration
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=" + c.Port +
		" sslmode=disable TimeZone=UTC"
}

type ServerConfig struct {
	Port string
}

type AdminConfig struct {
	Username string
	Password string
}

// TokenConfig holds signing secrets and lifetimes for both token kinds.
type TokenConfig struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int
}

type Config struct {
	Database *DatabaseConfig
	Server   *ServerConfig
	Admin    *AdminConfig
	Token    *TokenConfig
}

// LoadConfig reads dotenvPath into the process environment, when the file exists,
// and builds the Config from it. Variables already set in the environment win.
func LoadConfig(dotenvPath string) (*Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	queryTimeout, err := durationEnv("DB_QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	accessTTL, err := durationEnv("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := durationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cost, err := intEnv("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	dbCfg := &DatabaseConfig{
		Host:             stringEnv("POSTGRES_HOST", "localhost"),
		Port:             stringEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		QueryTimeout:     queryTimeout,
	}
	serverCfg := &ServerConfig{
		Port: stringEnv("SERVER_PORT", "8080"),
	}
	adminCfg := &AdminConfig{
		Username: os.Getenv("ADMIN_USERNAME"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	tokenCfg := &TokenConfig{
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		BcryptCost:         cost,
	}

	if tokenCfg.AccessTokenSecret == "" || tokenCfg.RefreshTokenSecret == "" {
		return nil, ErrMissingTokenSecret
	}
	if tokenCfg.AccessTokenSecret == tokenCfg.RefreshTokenSecret {
		return nil, ErrSharedTokenSecret
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, ErrInvalidBcryptCost
	}

	cfg := &Config{dbCfg, serverCfg, adminCfg, tokenCfg}
	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
