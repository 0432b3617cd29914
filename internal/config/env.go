package config

import (
	"os"
	"strings"
)

// ApplyEnv overrides loaded configuration from environment variables.
// Unset variables leave the config untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GROWTHOS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GROWTHOS_CORS_ORIGINS"); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.Server.CORSOrigins = origins
		}
	}
	if v := os.Getenv("GROWTHOS_STORAGE"); v != "" {
		c.Storage.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("GROWTHOS_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("GROWTHOS_SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("GROWTHOS_SEED_QUOTES"); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes":
			c.Quotes.Seed = true
		case "0", "false", "no":
			c.Quotes.Seed = false
		}
	}
}
