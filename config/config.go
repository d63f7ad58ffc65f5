package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	productionOrigin  = "https://airbnb-mern-app.vercel.app"
	developmentOrigin = "http://localhost:5173"
)

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Session  SessionConfig  `yaml:"session"`
	Storage  StorageConfig  `yaml:"storage"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
	// AllowedOrigin overrides the origin picked from Env.
	AllowedOrigin string `yaml:"allowed_origin"`
}

type DatabaseConfig struct {
	// URL takes precedence over the discrete fields when set.
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type SessionConfig struct {
	Secret     string `yaml:"secret"`
	CookieName string `yaml:"cookie_name"`
	// TTLMinutes of 0 issues tokens without an expiry claim.
	TTLMinutes   int  `yaml:"ttl_minutes"`
	SecureCookie bool `yaml:"secure_cookie"`
	BcryptCost   int  `yaml:"bcrypt_cost"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type StorageConfig struct {
	// Backend is "firebase" or "local".
	Backend  string         `yaml:"backend"`
	LocalDir string         `yaml:"local_dir"`
	BaseURL  string         `yaml:"base_url"`
	Firebase FirebaseConfig `yaml:"firebase"`
}

// FirebaseConfig holds what the Admin SDK needs. It authenticates with the
// service account in CredentialsFile (or application default credentials),
// so the web client keys (api key, auth domain, app id) are not read.
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	StorageBucket   string `yaml:"storage_bucket"`
	CredentialsFile string `yaml:"credentials_file"`
}

type UploadsConfig struct {
	MaxFiles               int   `yaml:"max_files"`
	DownloadTimeoutSeconds int   `yaml:"download_timeout_seconds"`
	MaxDownloadBytes       int64 `yaml:"max_download_bytes"`
}

type CacheConfig struct {
	PlacesTTLSeconds int `yaml:"places_ttl_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// envOverrides lists the environment variables that win over the YAML file.
type envOverrides struct {
	Env                     string `envconfig:"APP_ENV"`
	JWTSecret               string `envconfig:"JWT_SECRET"`
	DatabaseURL             string `envconfig:"DATABASE_URL"`
	FirebaseProjectID       string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseStorageBucket   string `envconfig:"FIREBASE_STORAGE_BUCKET"`
	FirebaseCredentialsFile string `envconfig:"FIREBASE_CREDENTIALS_FILE"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the values used for anything the config file leaves out.
func Default() *Config {
	return &Config{
		Env:  "development",
		HTTP: HTTPConfig{Address: ":4000"},
		Session: SessionConfig{
			CookieName: "token",
			BcryptCost: 10,
		},
		Storage: StorageConfig{
			Backend:  "local",
			LocalDir: "uploads",
			BaseURL:  "/uploads",
		},
		Uploads: UploadsConfig{
			MaxFiles:               100,
			DownloadTimeoutSeconds: 30,
			MaxDownloadBytes:       10 << 20,
		},
		Cache: CacheConfig{PlacesTTLSeconds: 60},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return err
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Env, env.Env)
	set(&c.Session.Secret, env.JWTSecret)
	set(&c.Database.URL, env.DatabaseURL)

	fb := &c.Storage.Firebase
	set(&fb.ProjectID, env.FirebaseProjectID)
	set(&fb.StorageBucket, env.FirebaseStorageBucket)
	set(&fb.CredentialsFile, env.FirebaseCredentialsFile)
	return nil
}

func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("session secret is required (JWT_SECRET)")
	}
	switch c.Storage.Backend {
	case "local":
	case "firebase":
		if c.Storage.Firebase.StorageBucket == "" {
			return errors.New("firebase storage bucket is required")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Uploads.MaxDownloadBytes <= 0 {
		return errors.New("uploads max_download_bytes must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigin is the single cross-origin caller allowed to send credentials.
func (c *Config) AllowedOrigin() string {
	if c.HTTP.AllowedOrigin != "" {
		return c.HTTP.AllowedOrigin
	}
	if c.IsProduction() {
		return productionOrigin
	}
	return developmentOrigin
}

func (c *Config) PlacesCacheTTL() time.Duration {
	return time.Duration(c.Cache.PlacesTTLSeconds) * time.Second
}

func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Uploads.DownloadTimeoutSeconds) * time.Second
}
