package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"redirect-gateway/middleware/redirect"
)

type config struct {
	listenAddr     string
	adminAddr      string
	upstreamURL    string
	logDevelopment bool

	redirectMode   redirect.Mode
	redirectStatus int

	rulesSource        string
	rulesFile          string
	rulesSQLitePath    string
	rulesSQLiteTable   string
	rulesRedisAddr     string
	rulesRedisPassword string
	rulesRedisDB       int
	rulesRedisKey      string

	reloadEvery time.Duration
	reloadRPS   float64
	reloadBurst int

	statsRedisEnabled bool
	statsRedisPrefix  string
	statsRedisTTL     time.Duration
	statsTrackPaths   bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.adminAddr = getenvDefault("ADMIN_ADDR", "127.0.0.1:9090")
	cfg.upstreamURL = os.Getenv("UPSTREAM_URL")
	cfg.logDevelopment = getenvBoolDefault("LOG_DEVELOPMENT", false)

	mode, err := redirect.ParseMode(os.Getenv("REDIRECT_MODE"))
	if err != nil {
		return config{}, err
	}
	cfg.redirectMode = mode
	cfg.redirectStatus = getenvIntDefault("REDIRECT_STATUS", 301)

	cfg.rulesSource = strings.ToLower(getenvDefault("RULES_SOURCE", "file"))
	cfg.rulesFile = getenvDefault("RULES_FILE", "redirects.yaml")
	cfg.rulesSQLitePath = os.Getenv("RULES_SQLITE_PATH")
	cfg.rulesSQLiteTable = getenvDefault("RULES_SQLITE_TABLE", "redirects")
	cfg.rulesRedisAddr = os.Getenv("RULES_REDIS_ADDR")
	cfg.rulesRedisPassword = os.Getenv("RULES_REDIS_PASSWORD")
	cfg.rulesRedisDB = getenvIntDefault("RULES_REDIS_DB", 0)
	cfg.rulesRedisKey = getenvDefault("RULES_REDIS_KEY", "redirect:rules")

	cfg.reloadEvery = getenvDurationDefault("RELOAD_EVERY", time.Minute)
	cfg.reloadRPS = getenvFloatDefault("RELOAD_RPS", 0.2)
	cfg.reloadBurst = getenvIntDefault("RELOAD_BURST", 1)

	// estatísticas em Redis reaproveitam a conexão das regras
	cfg.statsRedisEnabled = getenvBoolDefault("STATS_REDIS_ENABLED", false)
	cfg.statsRedisPrefix = getenvDefault("STATS_REDIS_PREFIX", "redirect:stats")
	cfg.statsRedisTTL = getenvDurationDefault("STATS_REDIS_TTL", 24*time.Hour)
	cfg.statsTrackPaths = getenvBoolDefault("STATS_TRACK_PATHS", false)

	if cfg.upstreamURL == "" {
		return config{}, errors.New("UPSTREAM_URL is required")
	}
	if !redirect.ValidStatus(cfg.redirectStatus) {
		return config{}, fmt.Errorf("REDIRECT_STATUS must be 301, 302, 307 or 308, got %d", cfg.redirectStatus)
	}
	switch cfg.rulesSource {
	case "file":
		if strings.TrimSpace(cfg.rulesFile) == "" {
			return config{}, errors.New("RULES_FILE is required when RULES_SOURCE=file")
		}
	case "sqlite":
		if strings.TrimSpace(cfg.rulesSQLitePath) == "" {
			return config{}, errors.New("RULES_SQLITE_PATH is required when RULES_SOURCE=sqlite")
		}
	case "redis":
	default:
		return config{}, fmt.Errorf("RULES_SOURCE must be file, sqlite or redis, got %q", cfg.rulesSource)
	}
	if (cfg.rulesSource == "redis" || cfg.statsRedisEnabled) && strings.TrimSpace(cfg.rulesRedisAddr) == "" {
		return config{}, errors.New("RULES_REDIS_ADDR is required when RULES_SOURCE=redis or STATS_REDIS_ENABLED=true")
	}
	if cfg.reloadRPS <= 0 {
		return config{}, errors.New("RELOAD_RPS must be > 0")
	}
	if cfg.reloadBurst <= 0 {
		return config{}, errors.New("RELOAD_BURST must be > 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
