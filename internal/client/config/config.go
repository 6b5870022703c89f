// Package config holds runtime settings for the identity CLI. Values are
// loaded from defaults, then environment variables, then command-line flags,
// with later sources taking precedence.
package config

type Config struct {
	ServerEndpointAddr string `env:"SERVER_ADDRESS"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
