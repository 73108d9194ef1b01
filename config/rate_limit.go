package config

import "time"

type RateLimitConfig struct {
	Enabled bool
	Window  time.Duration
	Max     int
}

func GetRateLimitConfig() (*RateLimitConfig, error) {
	windowMs, err := getEnvInt("RATE_LIMIT_WINDOW", 60000)
	if err != nil {
		return nil, err
	}

	maxRequests, err := getEnvInt("RATE_LIMIT_MAX", 100)
	if err != nil {
		return nil, err
	}

	return &RateLimitConfig{
		Enabled: getEnvBool("RATE_LIMIT_ENABLED"),
		Window:  time.Duration(windowMs) * time.Millisecond,
		Max:     maxRequests,
	}, nil
}
