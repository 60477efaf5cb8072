package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	apiURLEnvVar    = "PEOPLECTL_API_URL"
	tokenFileEnvVar = "PEOPLECTL_TOKEN_FILE"
	logFileEnvVar   = "PEOPLECTL_LOG_FILE"
	timeoutEnvVar   = "PEOPLECTL_HTTP_TIMEOUT"
	dbPathEnvVar    = "PEOPLECTL_DB"
	secretKeyEnvVar = "SECRET_KEY"
	tokenExpiryVar  = "ACCESS_TOKEN_EXPIRE_MINUTES"
)

type EnvVars struct{}

var _ ClientConfig = EnvVars{}
var _ ServerConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "People Manager")
}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "http://localhost:8000")
}

// GetTokenFile returns the path of the file holding the persisted session
// token. Defaults to peoplectl/session.json under the user config directory.
func (EnvVars) GetTokenFile() string {
	if path := os.Getenv(tokenFileEnvVar); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".peoplectl-session.json")
	}
	return filepath.Join(configDir, "peoplectl", "session.json")
}

func (EnvVars) GetLogFile() string {
	return GetEnv(logFileEnvVar, "")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	return durationEnv(timeoutEnvVar, 15*time.Second)
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8000")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetDatabasePath() string {
	return GetEnv(dbPathEnvVar, "./app.db")
}

func (EnvVars) GetSecretKey() string {
	return GetEnv(secretKeyEnvVar, "supersecretkey_change_me")
}

func (EnvVars) GetAccessTokenExpiry() time.Duration {
	minutes, err := strconv.Atoi(GetEnv(tokenExpiryVar, "60"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
