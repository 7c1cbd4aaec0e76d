package config

import (
	"fmt"
	"net/url"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Timeouts in seconds
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
	IdleTimeout  int `mapstructure:"idle_timeout"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the connection string for the configured driver.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.Username, d.Password),
			Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
			Path:     d.Database,
			RawQuery: "sslmode=" + sslMode + "&TimeZone=UTC",
		}
		return u.String()
	case DriverSQLite:
		if d.Path == "" {
			return "medrecords.db"
		}
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Password hashing schemes
const (
	PasswordSchemeBcrypt = "bcrypt"
	PasswordSchemeSHA256 = "sha256"
)

type PasswordConfig struct {
	Scheme     string `mapstructure:"scheme"`
	BcryptCost int    `mapstructure:"bcrypt_cost"`
}

type SessionConfig struct {
	ExpDays int `mapstructure:"exp_days"`
}

// Lifetime returns how long a freshly issued session stays valid.
func (s SessionConfig) Lifetime() time.Duration {
	days := s.ExpDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	Session  SessionConfig  `mapstructure:"session"`
	Cookie   CookieConfig   `mapstructure:"cookie"`
}

// Blob storage drivers
const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	Prefix       string `mapstructure:"prefix"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

type StorageConfig struct {
	Driver                   string   `mapstructure:"driver"`
	BasePath                 string   `mapstructure:"base_path"`
	MaxFileSize              int64    `mapstructure:"max_file_size"`
	MaxProfileImageSize      int64    `mapstructure:"max_profile_image_size"`
	AllowedExtensions        []string `mapstructure:"allowed_extensions"`
	AllowedContentTypes      []string `mapstructure:"allowed_content_types"`
	AllowedImageExtensions   []string `mapstructure:"allowed_image_extensions"`
	AllowedImageContentTypes []string `mapstructure:"allowed_image_content_types"`
	S3                       S3Config `mapstructure:"s3"`
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// SessionSweepInterval in minutes
	SessionSweepInterval int `mapstructure:"session_sweep_interval"`
}

func (s SchedulerConfig) SweepInterval() time.Duration {
	if s.SessionSweepInterval <= 0 {
		return time.Hour
	}
	return time.Duration(s.SessionSweepInterval) * time.Minute
}
