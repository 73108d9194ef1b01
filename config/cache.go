package config

import "time"

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	MaxSize int
}

func GetCacheConfig() (*CacheConfig, error) {
	ttlSeconds, err := getEnvInt("CACHE_TTL", 3600)
	if err != nil {
		return nil, err
	}

	maxSize, err := getEnvInt("CACHE_MAX_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	return &CacheConfig{
		Enabled: getEnvBool("CACHE_ENABLED"),
		TTL:     time.Duration(ttlSeconds) * time.Second,
		MaxSize: maxSize,
	}, nil
}
