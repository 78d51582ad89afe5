package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/chatmodels/internal/config"
	"github.com/agentstation/chatmodels/internal/envkeys"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog sources
	KeysURL          string
	KeysAPIKey       string
	OllamaURL        string
	OpenRouterURL    string
	OpenRouterAPIKey string
	FetchTimeout     time.Duration
	GateAllProviders bool
	RegistryFile     string

	// Server
	ServerHost     string
	ServerPort     int
	ServerAPIKey   string
	MetricsEnabled bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.chatmodels.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()
	bindAPIKeys()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".chatmodels")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	return &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		KeysURL:          config.GetString("keys_url"),
		KeysAPIKey:       config.GetString("keys_api_key"),
		OllamaURL:        config.GetFirst("ollama_url", "NEXT_PUBLIC_OLLAMA_URL"),
		OpenRouterURL:    config.GetString("openrouter_url"),
		OpenRouterAPIKey: config.GetString("openrouter_api_key"),
		FetchTimeout:     config.GetDuration("fetch_timeout", constants.SourceFetchTimeout),
		GateAllProviders: viper.GetBool("gate_all_providers"),
		RegistryFile:     config.GetString("registry_file"),

		ServerHost:     viper.GetString("server_host"),
		ServerPort:     viper.GetInt("server_port"),
		ServerAPIKey:   config.GetString("server_api_key"),
		MetricsEnabled: viper.GetBool("metrics_enabled"),

		LogLevel:  config.GetString("log_level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// EnvKeys detects server-side default keys from the merged environment.
func (c *Config) EnvKeys() catalogs.EnvKeyMap {
	return envkeys.Detect(config.Lookup)
}

func setDefaults() {
	viper.SetDefault("server_host", constants.DefaultServerHost)
	viper.SetDefault("server_port", constants.DefaultServerPort)
	viper.SetDefault("metrics_enabled", true)
}

// loadEnvFiles loads environment variables from .env files in dir.
// godotenv.Load never replaces a variable that is already set, so .env.local
// is loaded first to take precedence over .env. The process environment
// wins over both.
func loadEnvFiles(dir string) {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(filepath.Join(dir, envFile))
	}
}

// bindAPIKeys binds the provider key variables so values from the config
// file count toward key detection.
func bindAPIKeys() {
	for _, p := range catalogs.Providers() {
		if name, ok := envkeys.Variable(p); ok {
			_ = viper.BindEnv(name)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
