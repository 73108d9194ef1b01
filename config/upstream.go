package config

import (
	"fmt"
	"os"
	"time"
)

// HudunsoftConfig carries the vendor-specific form fields and headers the
// hudunsoft API expects on every call.
type HudunsoftConfig struct {
	XDomain     string
	XProduct    string
	XVersion    string
	Client      string
	Source      string
	SoftVersion string
	DeviceID    string
	Token       string
	BgID        string
	BgVolume    string
	Volume      string
	PitchRate   string
	BgURL       string
}

type UpstreamConfig struct {
	URL           string
	TaskStatusURL string
	APIKey        string
	Timeout       time.Duration
	RetryCount    int
	Hudunsoft     HudunsoftConfig
}

func GetUpstreamConfig() (*UpstreamConfig, error) {
	apiKey := os.Getenv("TTS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TTS_API_KEY must be set")
	}

	timeoutMs, err := getEnvInt("TARGET_API_TIMEOUT", 30000)
	if err != nil {
		return nil, err
	}

	retryCount, err := getEnvInt("TARGET_API_RETRY_COUNT", 2)
	if err != nil {
		return nil, err
	}

	return &UpstreamConfig{
		URL:           getEnv("TARGET_TTS_API_URL", "https://user.api.hudunsoft.com/v1/alivoice/texttoaudio"),
		TaskStatusURL: getEnv("TARGET_TTS_TASK_STATUS_URL", "https://user.api.hudunsoft.com/v1/alivoice/textTaskInfo"),
		APIKey:        apiKey,
		Timeout:       time.Duration(timeoutMs) * time.Millisecond,
		RetryCount:    retryCount,
		Hudunsoft: HudunsoftConfig{
			XDomain:     getEnv("HUDUNSOFT_X_DOMAIN", "user.api.hudunsoft.com"),
			XProduct:    getEnv("HUDUNSOFT_X_PRODUCT", "335"),
			XVersion:    getEnv("HUDUNSOFT_X_VERSION", "5.7.0.0"),
			Client:      getEnv("HUDUNSOFT_CLIENT", "web"),
			Source:      getEnv("HUDUNSOFT_SOURCE", "335"),
			SoftVersion: getEnv("HUDUNSOFT_SOFT_VERSION", "V4.4.0.0"),
			DeviceID:    getEnv("HUDUNSOFT_DEVICE_ID", ""),
			Token:       getEnv("HUDUNSOFT_TOKEN", ""),
			BgID:        getEnv("HUDUNSOFT_BG_ID", "0"),
			BgVolume:    getEnv("HUDUNSOFT_BG_VOLUME", "5"),
			Volume:      getEnv("HUDUNSOFT_VOLUME", "5"),
			PitchRate:   getEnv("HUDUNSOFT_PITCH_RATE", "5"),
			BgURL:       getEnv("HUDUNSOFT_BG_URL", ""),
		},
	}, nil
}
