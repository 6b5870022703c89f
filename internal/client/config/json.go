package config

import (
	"encoding/json"
	"os"

	"github.com/famly-app/identity/internal/flagx"
)

// JsonConfig is an intermediate DTO for reading JSON configuration files.
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path is taken from the -c or -config command-line flags;
// without them nothing is loaded. Fields absent from the file keep their
// current values. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
}
