package config

type ServerConfig struct {
	Host string
	Port string
}

func GetServerConfig() *ServerConfig {
	return &ServerConfig{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "3000"),
	}
}
