package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
	StaticDir    string `mapstructure:"static_dir"`
}

// DatabaseConfig содержит настройки подключения к управляемому PostgreSQL
type DatabaseConfig struct {
	URL     string `mapstructure:"url"`
	Migrate bool   `mapstructure:"migrate"`
}

// StorageConfig содержит настройки S3-совместимого бакета для файлов ассетов.
// Пустой Endpoint отключает удаление объектов
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Mode string `mapstructure:"mode"` // "development" | "production"
}

// Enabled сообщает, сконфигурировано ли хранилище
func (s *StorageConfig) Enabled() bool {
	return strings.TrimSpace(s.Endpoint) != ""
}

// Load загружает конфигурацию из файла (если он есть) и переменных окружения.
// Переменные окружения имеют приоритет над файлом.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "3000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.static_dir", "public")
	vip.SetDefault("database.migrate", true)
	vip.SetDefault("storage.bucket", "deck-assets")
	vip.SetDefault("storage.use_ssl", true)
	vip.SetDefault("log.mode", "development")

	// 2. Явная привязка переменных окружения.
	// Для порта первой проверяется SERVER_PORT, затем PORT (PaaS-платформы)
	_ = vip.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	_ = vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	_ = vip.BindEnv("server.static_dir", "STATIC_DIR")

	_ = vip.BindEnv("database.url", "DATABASE_URL")
	_ = vip.BindEnv("database.migrate", "DATABASE_MIGRATE")

	_ = vip.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	_ = vip.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	_ = vip.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")
	_ = vip.BindEnv("storage.region", "STORAGE_REGION")
	_ = vip.BindEnv("storage.bucket", "STORAGE_BUCKET")
	_ = vip.BindEnv("storage.use_ssl", "STORAGE_USE_SSL")

	_ = vip.BindEnv("log.mode", "LOG_MODE")

	// 3. Файл конфигурации необязателен
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database url is required (check DATABASE_URL env var)")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty (check SERVER_PORT or PORT env var)")
	}
	if c.Storage.Enabled() {
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage credentials are required when STORAGE_ENDPOINT is set (check STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY env vars)")
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket must not be empty (check STORAGE_BUCKET env var)")
		}
	}
	return nil
}

// DefaultPath возвращает путь к файлу конфигурации из CONFIG_PATH или значение по умолчанию
func DefaultPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}
