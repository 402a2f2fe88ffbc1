package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Modos de la tienda de inventario del cliente.
const (
	ModeRemote = "remote" // catálogo servido por la API
	ModeMock   = "mock"   // catálogo local en memoria
)

// Backends de almacenamiento de sesión.
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Backends de persistencia de la API de referencia.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config agrupa la configuración del cliente y de la API de referencia (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Client  ClientConfig
	Session SessionConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	DB      DBConfig
	JWT     JWTConfig
	Mock    MockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// ClientConfig configuración del cliente de inventario.
type ClientConfig struct {
	APIBaseURL string
	Mode       string        // remote, mock
	Timeout    time.Duration // 0 = sin timeout
}

// SessionConfig almacenamiento durable de la sesión.
type SessionConfig struct {
	Backend string // file, redis, memory
	Path    string // archivo JSON para el backend file
}

// RedisConfig conexión para el backend de sesión redis.
type RedisConfig struct {
	URL    string
	Prefix string
}

// HTTPConfig configuración del servidor HTTP de la API de referencia.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Storage     string // memory, postgres
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// MockConfig datos de arranque de la API de referencia.
type MockConfig struct {
	SeedPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SESSION_PATH, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Client: ClientConfig{
			APIBaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:5000/api"), "/"),
			Mode:       getString(v, "INVENTORY_MODE", ModeRemote),
			Timeout:    time.Duration(getInt(v, "CLIENT_TIMEOUT", 0)) * time.Second,
		},
		Session: SessionConfig{
			Backend: getString(v, "SESSION_BACKEND", SessionBackendFile),
			Path:    getString(v, "SESSION_PATH", defaultSessionPath()),
		},
		Redis: RedisConfig{
			URL:    getString(v, "REDIS_URL", "redis://localhost:6379/0"),
			Prefix: getString(v, "REDIS_PREFIX", "inventario:"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5000),
		},
		DB: DBConfig{
			Storage:     getString(v, "STORAGE", StorageMemory),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "inventario"),
		},
		Mock: MockConfig{
			SeedPassword: getString(v, "MOCK_SEED_PASSWORD", "123456"),
		},
	}

	switch cfg.Client.Mode {
	case ModeRemote, ModeMock:
	default:
		return nil, fmt.Errorf("config: INVENTORY_MODE inválido %q", cfg.Client.Mode)
	}
	switch cfg.Session.Backend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
	default:
		return nil, fmt.Errorf("config: SESSION_BACKEND inválido %q", cfg.Session.Backend)
	}
	switch cfg.DB.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return nil, fmt.Errorf("config: STORAGE inválido %q", cfg.DB.Storage)
	}
	return cfg, nil
}

// defaultSessionPath ~/.config/inventario/session.json, o el directorio actual si no hay HOME.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "inventario-session.json"
	}
	return filepath.Join(dir, "inventario", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
