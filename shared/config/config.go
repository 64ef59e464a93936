package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/folio-cms/folio/shared/validation"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoragePg     = "pg"
	StorageMemory = "memory"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL     time.Duration `yaml:"jwt_ttl" validate:"required"`
	Storage    string        `yaml:"storage" validate:"required,oneof=pg memory"`
	Http       Http          `yaml:"http"`
	Log        Log           `yaml:"log"`
	Media      Media         `yaml:"media"`
	RateLimits RateLimits    `yaml:"rate_limits"`
}

type Http struct {
	Port           string        `yaml:"port" validate:"required"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Media struct {
	Root             string   `yaml:"root" validate:"required"`
	MaxUploadSize    int64    `yaml:"max_upload_size" validate:"gt=0"`
	MaxImageWidth    int      `yaml:"max_image_width" validate:"gt=0"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types" validate:"min=1"`
}

func (m Media) UploadLimits() validation.UploadLimits {
	return validation.UploadLimits{MaxFileSize: m.MaxUploadSize, AllowedMimeTypes: m.AllowedMimeTypes}
}

// RateLimits are expressed in requests per minute per identity.
type RateLimits struct {
	MessagesPerMinute float64 `yaml:"messages_per_minute" validate:"gt=0"`
	LoginPerMinute    float64 `yaml:"login_per_minute" validate:"gt=0"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode"`
}

type Private struct {
	Pg        Pg     `yaml:"pg"`
	JwtSecret string `yaml:"jwt_secret" validate:"required,min=16"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtSecret
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// applyEnv lets deployments keep secrets out of private.yaml.
func applyEnv(private *Private) {
	if v := os.Getenv("FOLIO_JWT_SECRET"); v != "" {
		private.JwtSecret = v
	}
	if v := os.Getenv("FOLIO_PG_PASSWORD"); v != "" {
		private.Pg.Password = v
	}
	if v := os.Getenv("FOLIO_PG_HOST"); v != "" {
		private.Pg.Host = v
	}
	if v := os.Getenv("FOLIO_PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			private.Pg.Port = port
		}
	}
}

func (s *Config) validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(s.Public); err != nil {
		return err
	}
	if err := validate.Var(s.Private.JwtSecret, "required,min=16"); err != nil {
		return fmt.Errorf("jwt_secret: %w", err)
	}
	if s.Public.Storage == StoragePg {
		if err := validate.Struct(s.Private.Pg); err != nil {
			return err
		}
	}
	return nil
}

func MustLoad(configFolder string) *Config {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("can't load .env: " + err.Error())
	}

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	applyEnv(&private)

	cfg := &Config{Public: public, Private: private}
	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
