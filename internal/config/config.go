package config

import "time"

type Config interface {
	ClientConfig
	ServerConfig
}

type ClientConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetTokenFile() string
	GetLogFile() string
	GetHTTPTimeout() time.Duration
}

type ServerConfig interface {
	GetPort() string
	GetDatabasePath() string
	GetSecretKey() string
	GetAccessTokenExpiry() time.Duration
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
