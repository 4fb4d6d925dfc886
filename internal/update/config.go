package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	Storage          string // "json" or "sqlite"
	DataFile         string
	DBFile           string
	StatusTTLSeconds int
	DictationCommand string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Storage:          "json",
		StatusTTLSeconds: 5,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKLINE_STORAGE"); ok {
		switch strings.ToLower(v) {
		case "json", "sqlite":
			cfg.Storage = strings.ToLower(v)
		}
	}
	if v, ok := getEnvString("TASKLINE_DATA_FILE"); ok {
		cfg.DataFile = v
	}
	if v, ok := getEnvString("TASKLINE_DB_FILE"); ok {
		cfg.DBFile = v
	}
	if v, ok := getEnvInt("TASKLINE_STATUS_TTL_SECONDS"); ok && v > 0 {
		cfg.StatusTTLSeconds = v
	}
	if v, ok := getEnvString("TASKLINE_DICTATION_COMMAND"); ok {
		cfg.DictationCommand = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
