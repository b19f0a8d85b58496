package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/cvwizard/internal/ai/gemini"
	"github.com/spigell/cvwizard/internal/export"
	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	app = "cvwizard"

	generatorBackend = "backend"
	generatorGemini  = "gemini"
)

type Config struct {
	Backend     *BackendConfig     `mapstructure:"backend"`
	Wizard      *WizardConfig      `mapstructure:"wizard"`
	Score       wizard.ScoreConfig `mapstructure:"score"`
	Generator   string             `mapstructure:"generator"`
	AI          *AIConfig          `mapstructure:"ai"`
	Export      *ExportConfig      `mapstructure:"export"`
	MetricsFile string             `mapstructure:"metrics-file"`
}

type BackendConfig struct {
	BaseURL          string        `mapstructure:"base-url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	UserAgent        string        `mapstructure:"user-agent"`
	CSRFToken        string        `mapstructure:"csrf-token"`
	CSRFTokenFile    string        `mapstructure:"csrf-token-file"`
	SessionToken     string        `mapstructure:"session-token"`
	SessionTokenFile string        `mapstructure:"session-token-file"`
}

type WizardConfig struct {
	wizard.Rules       `mapstructure:",squash"`
	SubmitTimeout      time.Duration `mapstructure:"submit-timeout"`
	DefaultResultScore int           `mapstructure:"default-result-score"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	gemini.Options `mapstructure:",squash"`
}

type ExportConfig struct {
	Directory string    `mapstructure:"directory"`
	Format    string    `mapstructure:"format"`
	S3        *S3Config `mapstructure:"s3"`
}

type S3Config struct {
	export.S3Config `mapstructure:",squash"`
	AccessKeyFile   string `mapstructure:"access-key-file"`
	SecretKeyFile   string `mapstructure:"secret-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cvwizard builds a CV step by step and generates a polished version of it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"backend.session-token-file": "CVWIZARD_SESSION_FILE",
		"backend.csrf-token-file":    "CVWIZARD_CSRF_FILE",
		"ai.gemini.api-key-file":     "GEMINI_API_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cvwizard.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("generator", generatorBackend, "who writes the CV: backend or gemini")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("generator", rootCmd.PersistentFlags().Lookup("generator"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every key has a default, so only an explicit or broken config is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	// Absent score keys keep the form weights.
	config := &Config{Score: wizard.DefaultScoreConfig()}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Backend == nil {
		config.Backend = &BackendConfig{}
	}
	if config.Wizard == nil {
		config.Wizard = &WizardConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Export == nil {
		config.Export = &ExportConfig{}
	}

	return config, nil
}
