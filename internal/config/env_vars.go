package config

import (
	"os"
	"strconv"
)

const (
	appNameVar          = "APP_NAME"
	identityEndpointVar = "IDENTITY_ENDPOINT"
	refreshEndpointVar  = "REFRESH_ENDPOINT"
	attributeFileVar    = "ATTRIBUTE_FILE"
	stateFileVar        = "STATE_FILE"
	includeCredsVar     = "INCLUDE_CREDENTIALS_ON_REFRESH"
	clearCounterVar     = "CLEAR_COUNTER_ON_LOGOUT"
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Session Keeper")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetIdentityEndpoint() string {
	return GetEnv(identityEndpointVar, "https://api.atlassian.com/me")
}

func (EnvVars) GetRefreshEndpoint() string {
	return GetEnv(refreshEndpointVar, "http://localhost:5000/refresh")
}

// GetAttributeFile returns the path of the file standing in for the client
// attribute store.
func (EnvVars) GetAttributeFile() string {
	return GetEnv(attributeFileVar, "./session.attributes")
}

// GetStateFile returns the path of the durable key-value store file.
func (EnvVars) GetStateFile() string {
	return GetEnv(stateFileVar, "./session.state")
}

func (EnvVars) GetIncludeCredentialsOnRefresh() bool {
	return GetBoolEnv(includeCredsVar, false)
}

func (EnvVars) GetClearCounterOnLogout() bool {
	return GetBoolEnv(clearCounterVar, true)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetBoolEnv(envVar string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}
