package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("USE_REDIS", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.False(t, cfg.UseRedis)
	assert.Equal(t, []string{"localhost:9093"}, cfg.KafkaBrokers)
	assert.Equal(t, 300, cfg.CacheTTLSeconds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("USE_KAFKA", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.UseKafka)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
}

func TestParseUsers(t *testing.T) {
	users := parseUsers("admin:$2a$10$abc, operator:$2a$10$def,broken,:nohash")

	assert.Len(t, users, 2)
	assert.Equal(t, "$2a$10$abc", users["admin"])
	assert.Equal(t, "$2a$10$def", users["operator"])
}
