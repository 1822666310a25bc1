package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "POKEDEX_"
	tokenEnvVar = "API_TOKEN"
	dotenvFile  = ".env"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Security struct {
		APIToken string `koanf:"api_token"`
	} `koanf:"security"`
}

// Load builds the config from configs/base.yaml, an optional per-env file,
// an optional .env in the working directory and finally the process env.
func Load(pathDir, envName string) (Config, error) {
	return load(pathDir, envName, dotenvFile)
}

func load(pathDir, envName, dotenvPath string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) .env, same key mapping as the real environment
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := k.Load(file.Provider(dotenvPath), dotenv.ParserEnv("", ".", envKey)); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat %s: %w", dotenvPath, err)
	}

	// 4) API_TOKEN
	if err := k.Load(env.Provider(tokenEnvVar, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("env token: %w", err)
	}

	// 5) POKEDEX_ overrides, nested with __
	// e.g. POKEDEX_APP__HTTP_ADDR, POKEDEX_HTTP__READ_TIMEOUT
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps an environment variable name to a koanf path. Names this
// service does not own map to "" and are skipped.
func envKey(s string) string {
	switch {
	case s == tokenEnvVar:
		return "security.api_token"
	case strings.HasPrefix(s, envPrefix):
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	default:
		return ""
	}
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Security.APIToken == "" {
		return fmt.Errorf("security.api_token required (set %s)", tokenEnvVar)
	}
	return nil
}
