package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read for CLI defaults
const (
	EnvConfigPath = "BUYRENT_CONFIG"
	EnvFormat     = "BUYRENT_FORMAT"
	EnvOutputDir  = "BUYRENT_OUTPUT_DIR"
	EnvLogLevel   = "BUYRENT_LOG_LEVEL"
	EnvDebug      = "BUYRENT_DEBUG"
)

// Environment holds the defaults the command line falls back to when a flag is not given.
type Environment struct {
	ConfigPath string
	Format     string
	OutputDir  string
	LogLevel   string
	Debug      bool
}

// LoadEnvironment reads the given .env files (".env" when none are named) into the process
// environment and returns the resulting defaults. Missing files are not an error; variables
// already set in the environment win over file values.
func LoadEnvironment(files ...string) (*Environment, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return &Environment{
		ConfigPath: getEnv(EnvConfigPath, ""),
		Format:     getEnv(EnvFormat, "console"),
		OutputDir:  getEnv(EnvOutputDir, ""),
		LogLevel:   getEnv(EnvLogLevel, "warn"),
		Debug:      getEnvBool(EnvDebug, false),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
