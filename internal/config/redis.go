package config

import (
	"crypto/tls"
	"os"
	"strconv"
	"time"
)

const (
	redisAddrEnv             = "REDIS_ADDR"
	redisPasswordEnv         = "REDIS_PASSWORD"
	redisDBEnv               = "REDIS_DB"
	redisTLSEnv              = "REDIS_TLS"
	redisSnapshotTTLHoursEnv = "REDIS_SNAPSHOT_TTL_HOURS"

	defaultRedisAddr        = "localhost:6379"
	defaultSnapshotTTLHours = 24
)

// RedisConfig backs the reminder snapshot store and the dispatch ledger.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	// SnapshotTTL bounds how stale a seeded snapshot may be.
	SnapshotTTL time.Duration
}

func LoadRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		addr = defaultRedisAddr
	}

	var db int
	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidRedisDB
		}
		db = parsed
	}

	ttlHours := defaultSnapshotTTLHours
	if raw := os.Getenv(redisSnapshotTTLHoursEnv); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttlHours = parsed
		}
	}

	return &RedisConfig{
		Addr:        addr,
		Password:    os.Getenv(redisPasswordEnv),
		DB:          db,
		TLS:         os.Getenv(redisTLSEnv) == "true",
		SnapshotTTL: time.Duration(ttlHours) * time.Hour,
	}, nil
}

// TLSConfig returns nil unless REDIS_TLS is enabled.
func (c *RedisConfig) TLSConfig() *tls.Config {
	if !c.TLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
