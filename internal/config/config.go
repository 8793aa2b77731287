package config

type Config interface {
	GetAppName() string
	GetEnv() string
	GetIdentityEndpoint() string
	GetRefreshEndpoint() string
	GetAttributeFile() string
	GetStateFile() string
	GetIncludeCredentialsOnRefresh() bool
	GetClearCounterOnLogout() bool
}

func New() Config {
	return EnvVars{}
}
