package config

import "time"

type PollConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

func GetPollConfig() (*PollConfig, error) {
	maxAttempts, err := getEnvInt("POLL_MAX_ATTEMPTS", 30)
	if err != nil {
		return nil, err
	}

	intervalMs, err := getEnvInt("POLL_INTERVAL_MS", 1000)
	if err != nil {
		return nil, err
	}

	return &PollConfig{
		MaxAttempts: maxAttempts,
		Interval:    time.Duration(intervalMs) * time.Millisecond,
	}, nil
}
