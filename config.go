package iotplatform

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Mode           string
	ApiPort        string
	AllowedOrigins []string
	MainDatabase   struct {
		Host         string
		Port         string
		User         string
		Password     string
		DatabaseName string
		SSLMode      string
	}
	JWTConfig struct {
		Secret string
		Issuer string
	}
	RedisConfig struct {
		Host     string
		Port     string
		Password string
		DB       int
		CodeTTL  time.Duration
	}
	NatsConfig struct {
		URL string
	}
	DeviceConfig struct {
		OfflineAfter  time.Duration
		SweepInterval time.Duration
	}
}

var config AppConfig

func InitConfig(envfile string) {
	err := godotenv.Load(envfile)
	if err != nil {
		log.Fatal(fmt.Sprintf("Error loading %s file: %s", envfile, err))
	}
	config = loadConfig()

	Logger = InitLogger()
	DB = connectToPostgres(config.MainDatabase.Host, config.MainDatabase.User, config.MainDatabase.Password, config.MainDatabase.DatabaseName, config.MainDatabase.Port, config.MainDatabase.SSLMode)
	if config.RedisConfig.Host != "" {
		Redis = connectToRedis(config.RedisConfig.Host, config.RedisConfig.Port, config.RedisConfig.Password, config.RedisConfig.DB)
	}
	if config.NatsConfig.URL != "" {
		Nats = connectToNats(config.NatsConfig.URL)
	}
}

func loadConfig() AppConfig {
	var c AppConfig
	c.Mode = getEnvOrPanic("RUN_MODE")
	c.ApiPort = getEnvOrPanic("API_PORT")
	c.AllowedOrigins = splitList(GetEnv("ALLOWED_ORIGINS", "*"))

	c.MainDatabase.Host = getEnvOrPanic("DB_HOSTNAME")
	c.MainDatabase.Port = getEnvOrPanic("DB_PORT")
	c.MainDatabase.User = getEnvOrPanic("DB_USERNAME")
	c.MainDatabase.Password = getEnvOrPanic("DB_PASSWORD")
	c.MainDatabase.DatabaseName = getEnvOrPanic("DB_NAME")
	c.MainDatabase.SSLMode = GetEnv("DB_SSL_MODE", "disable")

	c.JWTConfig.Secret = getEnvOrPanic("JWT_SECRET")
	c.JWTConfig.Issuer = GetEnv("JWT_ISSUER", "")

	c.RedisConfig.Host = GetEnv("REDIS_HOST", "")
	c.RedisConfig.Port = GetEnv("REDIS_PORT", "6379")
	c.RedisConfig.Password = GetEnv("REDIS_PASSWORD", "")
	c.RedisConfig.DB = getIntEnvOrDefault("REDIS_DB", 0)
	c.RedisConfig.CodeTTL = time.Duration(getIntEnvOrDefault("CODE_CACHE_TTL_SECONDS", 600)) * time.Second

	c.NatsConfig.URL = GetEnv("NATS_URL", "")

	c.DeviceConfig.OfflineAfter = time.Duration(getIntEnvOrDefault("DEVICE_OFFLINE_AFTER_SECONDS", 120)) * time.Second
	c.DeviceConfig.SweepInterval = time.Duration(getIntEnvOrDefault("DEVICE_SWEEP_SECONDS", 30)) * time.Second
	return c
}

func GetConfig() AppConfig {
	return config
}

// SetConfig replaces the loaded configuration. Used by tests and tools that skip InitConfig.
func SetConfig(c AppConfig) {
	config = c
}

func getEnvOrPanic(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s must be set", key)
	}
	return value
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func connectToPostgres(host string, username string, password string, dbname string, port string, ssl string) *gorm.DB {
	var err error
	var db *gorm.DB
	var conn *sql.DB

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, username, password, dbname, port, ssl)
	if db, err = gorm.Open(postgres.Open(dsn), GormConfig()); err != nil {
		panic(err)
	}
	if conn, err = db.DB(); err != nil {
		panic(err)
	}
	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxLifetime(time.Hour)
	return db
}

// GormConfig is shared by the postgres connection and the in-memory test databases
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold: 0,
				LogLevel:      logger.Error,
			},
		),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}
}

// InitLogger builds the console logger used by every binary
func InitLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
		NoColor:    false,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("  %s  ", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}

	return zerolog.New(output).With().Timestamp().Caller().Logger()
}

func connectToRedis(host string, port string, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	return client
}

func connectToNats(url string) *nats.Conn {
	nc, err := nats.Connect(url,
		nats.Name("iotplatform-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				Logger.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			Logger.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to NATS: %v", err))
	}
	return nc
}
