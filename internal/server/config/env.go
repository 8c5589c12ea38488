package config

import (
	"os"
	"strings"
)

// parseEnv reads the variables a hosted deployment usually provides.
//
//	PORT              listen port, bound on all interfaces
//	DATABASE_URL      PostgreSQL DSN
//	JWT_SECRET        token signing secret
//	GOOGLE_CLIENT_ID  expected ID-token audience
//	CORS_ORIGINS      comma separated list of allowed origins
//	LOG_LEVEL         debug, info, warn or error
func parseEnv(config *Config) {
	if v, ok := lookup("PORT"); ok {
		config.EndpointAddrHTTP = ":" + v
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := lookup("GOOGLE_CLIENT_ID"); ok {
		config.GoogleClientID = v
	}
	if v, ok := lookup("CORS_ORIGINS"); ok {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
