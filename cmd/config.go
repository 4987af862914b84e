package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/momentumhq/momentum/internal/logger"
	"github.com/momentumhq/momentum/types"
)

const (
	configName = ".momentum"
	envPrefix  = "MOMENTUM"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance, it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., MOMENTUM_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home) // $HOME/.momentum.yaml
		viper.AddConfigPath(".")  // ./.momentum.yaml
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("data.dir", defaultDataDir())
	viper.SetDefault("data.plansFile", "plans.json")
	viper.SetDefault("data.evolutionFile", "evolution.json")
	viper.SetDefault("data.programFile", "active_program.json")
	viper.SetDefault("data.badgesFile", "badges.json")
	viper.SetDefault("data.templatesDir", "")

	// Defaults for LLMConfig
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.modelName", "gpt-4o-mini")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.maxOutputTokens", 4096)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.requestTimeoutSeconds", 60)

	viper.SetDefault("premium.entitled", false)
	viper.SetDefault("debug.dayOffset", 0)

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// The OpenAI key may also arrive via its conventional env var.
	if GlobalAppConfig.LLM.APIKey == "" {
		GlobalAppConfig.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}

	logger.SetBasePath(GlobalAppConfig.Data.Dir)
}

// defaultDataDir is ~/.momentum, falling back to ./.momentum when the home
// directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".momentum"
	}
	return filepath.Join(home, ".momentum")
}

// GetConfig returns the global application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
