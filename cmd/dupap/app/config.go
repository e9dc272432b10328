package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/dupap/internal/xiq"
	"github.com/agentstation/dupap/pkg/constants"
	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/reconcile"
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

	// XIQ connection
	XIQToken    string
	XIQBaseURL  string
	InsecureTLS bool
	PageSize    int

	// Quarantine workflow
	GroupName   string
	GracePeriod time.Duration
	StorePath   string

	// Logging configuration
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
	LogFile     string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (DUPAP_* and XIQ_TOKEN)
// 3. .env files
// 4. Config file (~/.dupap.yaml or ./.dupap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("xiq_token", constants.EnvPrefix+"_XIQ_TOKEN", "XIQ_TOKEN"); err != nil {
		return nil, errors.NewConfigError("env", "failed to bind XIQ_TOKEN", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".dupap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "failed to read config", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		XIQToken:    v.GetString("xiq_token"),
		XIQBaseURL:  v.GetString("xiq_base_url"),
		InsecureTLS: v.GetBool("insecure_tls"),
		PageSize:    v.GetInt("page_size"),

		GroupName:   v.GetString("group_name"),
		GracePeriod: v.GetDuration("grace_period"),
		StorePath:   v.GetString("store_path"),

		LogLevel:    v.GetString("log_level"),
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
		LogFile:     v.GetString("log_file"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("xiq_base_url", constants.DefaultBaseURL)
	v.SetDefault("insecure_tls", true)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("group_name", constants.DefaultGroupName)
	v.SetDefault("grace_period", constants.DefaultGracePeriod)
	v.SetDefault("store_path", constants.DefaultStorePath)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stdout")
	v.SetDefault("log_file", constants.DefaultLogFile)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// XIQ returns the client settings.
func (c *Config) XIQ(userAgent string) xiq.Config {
	return xiq.Config{
		Token:       c.XIQToken,
		BaseURL:     c.XIQBaseURL,
		PageSize:    c.PageSize,
		InsecureTLS: c.InsecureTLS,
		Timeout:     constants.DefaultHTTPTimeout,
		UserAgent:   userAgent,
	}
}

// Reconcile returns the workflow settings.
func (c *Config) Reconcile() reconcile.Config {
	return reconcile.Config{
		GroupName:        c.GroupName,
		GroupDescription: constants.DefaultGroupDescription,
		GracePeriod:      c.GracePeriod,
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
