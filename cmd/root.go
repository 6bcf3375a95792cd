package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hh-interviewer"
)

// Config is the process-wide configuration, unmarshalled once at startup and
// immutable afterwards.
type Config struct {
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Models       *ModelsConfig `mapstructure:"models"`
	MaxTokens    int           `mapstructure:"max-tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxRetries   int           `mapstructure:"max-retries"`
	MaxQuestions int           `mapstructure:"max-questions"`
	MinQuestions int           `mapstructure:"min-questions"`
	LogDir       string        `mapstructure:"log-dir"`
}

// ModelsConfig holds one model identifier per interview role.
type ModelsConfig struct {
	Interviewer string `mapstructure:"interviewer"`
	Observer    string `mapstructure:"observer"`
	Evaluator   string `mapstructure:"evaluator"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-interviewer is a cli for running simulated technical job interviews with adaptive difficulty",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-interviewer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	viper.SetDefault("max-tokens", 2000)
	viper.SetDefault("temperature", 0.7)
	viper.SetDefault("max-retries", 1)
	viper.SetDefault("max-questions", 10)
	viper.SetDefault("min-questions", 5)
	viper.SetDefault("log-dir", "logs")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional: the api key can arrive via environment.
	// A present but broken file is still fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
