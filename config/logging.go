package config

type LoggingConfig struct {
	Level string
	File  string
}

func GetLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: getEnv("LOG_LEVEL", "info"),
		File:  getEnv("LOG_FILE", ""),
	}
}
