package iotplatform

import (
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	DB     *gorm.DB
	Logger zerolog.Logger
	// Redis is nil when no cache is configured
	Redis *redis.Client
	// Nats is nil when no message bus is configured
	Nats *nats.Conn
)
