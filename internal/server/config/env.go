package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// portEnv supports the conventional PORT variable next to HTTP_ADDRESS.
type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv loads dotenvPath (when it exists) into the process environment
// without overriding variables that are already set, then overlays every
// variable named in Config's env tags. PORT=n is shorthand for HTTP_ADDRESS=:n.
func parseEnv(config *Config, dotenvPath string) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	var p portEnv
	if err := env.Parse(&p); err != nil {
		panic(err)
	}
	if p.Port != "" {
		config.EndpointAddrHTTP = ":" + p.Port
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
