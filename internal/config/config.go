package config

type Config interface {
	EnvConfig
	CorsConfig
	GoogleConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetAPIBaseURL() string
	GetWithCredentials() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Google
	Session
}

func New() Config {
	return mainConfig{}
}
