package config

import (
	"log"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default probe target. The dependency this entrypoint fronts is the Redis
// instance the API needs before it can serve traffic.
const (
	DefaultHost = "redis"
	DefaultPort = "6379"
)

// Config holds entrypoint configuration
type Config struct {
	Host             string
	Port             string
	Target           string // normalized host:port; WAIT_TARGET wins over Host/Port
	Interval         time.Duration
	DialTimeout      time.Duration
	StartupDelay     time.Duration
	EnvFile          string
	ExpandCommandEnv bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	host := GetEnvOrDefault("WAIT_HOST", DefaultHost)

	// Ports are numeric; a WAIT_PORT that isn't falls back to the default.
	port := DefaultPort
	if n := GetEnvAsInt("WAIT_PORT", -1); n > 0 && n <= 65535 {
		port = strconv.Itoa(n)
	} else if raw := strings.TrimSpace(os.Getenv("WAIT_PORT")); raw != "" {
		log.Printf("Warning: could not parse WAIT_PORT '%s', using default %s", raw, DefaultPort)
	}

	target := NormalizeTargetAddress(os.Getenv("WAIT_TARGET"))
	if target == "" {
		target = net.JoinHostPort(host, port)
	}

	return &Config{
		Host:             host,
		Port:             port,
		Target:           target,
		Interval:         GetEnvAsDuration("WAIT_INTERVAL", 1*time.Second),
		DialTimeout:      GetEnvAsDuration("WAIT_DIAL_TIMEOUT", 3*time.Second),
		StartupDelay:     GetEnvAsDuration("STARTUP_DELAY", 0),
		EnvFile:          strings.TrimSpace(os.Getenv("ENV_FILE")),
		ExpandCommandEnv: GetEnvAsBool("EXPAND_COMMAND_ENV", false),
	}
}

// GetEnvOrDefault returns environment variable value or default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt parses environment variable as integer
func GetEnvAsInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsBool parses environment variable as boolean
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		value = strings.ToLower(value)
		if value == "true" || value == "1" || value == "yes" {
			return true
		}
		if value == "false" || value == "0" || value == "no" {
			return false
		}
	}
	return defaultValue
}

// GetEnvAsDuration parses environment variable as a duration. Bare integers
// are accepted as seconds so compose files can say WAIT_INTERVAL=1.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: could not parse %s '%s', using default %v", key, value, defaultValue)
	return defaultValue
}

// NormalizeTargetAddress converts redis:// or tcp:// URLs into the host:port
// form the dialer expects. Plain host:port values pass through unchanged.
func NormalizeTargetAddress(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	if !strings.Contains(trimmed, "://") {
		return ensurePort(trimmed)
	}
	u, err := neturl.Parse(trimmed)
	if err != nil {
		log.Printf("Warning: could not parse WAIT_TARGET '%s': %v", trimmed, err)
		return trimmed
	}
	if u.Host != "" {
		return ensurePort(u.Host)
	}
	return trimmed
}

// ensurePort appends the default port when the address carries none.
func ensurePort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, DefaultPort)
}
