package config

// DemoServerConfig holds configuration for the local stand-in shop
type DemoServerConfig struct {
	Port string
}

// LoadDemoServerConfig loads demo server configuration from environment variables
func LoadDemoServerConfig(getenv func(string) string) DemoServerConfig {
	port := getenv("DEMO_PORT")
	if port == "" {
		port = "8080"
	}

	return DemoServerConfig{
		Port: port,
	}
}
