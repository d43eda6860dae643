package redis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRedisClientUnreachableHost(t *testing.T) {
	config := &RedisConfig{
		Host: "redis-host-that-does-not-exist.invalid",
		Port: 6379,
	}

	client, err := NewRedisClient(config)
	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestNewRedisClientEmptyConfig(t *testing.T) {
	client, err := NewRedisClient(&RedisConfig{})
	require.Error(t, err)
	require.Nil(t, client)
}

func TestNewRedisSentinelClientUnreachableHost(t *testing.T) {
	config := &RedisSentinelConfig{
		SentinelHost: "sentinel-host-that-does-not-exist.invalid",
		SentinelPort: 26379,
		MasterName:   "mymaster",
	}

	client, err := NewRedisSentinelClient(config)
	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "failed to connect to Redis through Sentinel")
}
