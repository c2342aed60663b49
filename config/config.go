package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	JWTSecret    string
	ListenAddr   string
	CORSOrigins  []string
}
