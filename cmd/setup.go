package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/ai/gemini"
	"github.com/spigell/cvwizard/internal/backend"
	"github.com/spigell/cvwizard/internal/export"
	"github.com/spigell/cvwizard/internal/logger"
	"github.com/spigell/cvwizard/internal/secrets"
	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	exportFile      = "file"
	exportS3        = "s3"
	exportClipboard = "clipboard"
)

// setup builds the logger and reads the configuration. Failures here are
// fatal; the logger is returned so callers can report their own.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	return l, config
}

func newBackend(l *zap.Logger, cfg *BackendConfig) (*backend.Client, error) {
	csrf, err := secrets.LoadOptional(secrets.Source{Name: "csrf token", Value: cfg.CSRFToken, File: cfg.CSRFTokenFile})
	if err != nil {
		return nil, err
	}
	session, err := secrets.LoadOptional(secrets.Source{Name: "session token", Value: cfg.SessionToken, File: cfg.SessionTokenFile})
	if err != nil {
		return nil, err
	}

	client := backend.New(l, backend.Config{
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		CSRFToken:    csrf,
		SessionToken: session,
	})

	l.Debug("backend client ready", zap.String("base_url", client.BaseURL()), zap.Bool("session", session != ""))
	return client, nil
}

func newGenerator(ctx context.Context, l *zap.Logger, config *Config) (wizard.Generator, error) {
	switch provider := strings.ToLower(strings.TrimSpace(config.Generator)); provider {
	case "", generatorBackend:
		client, err := newBackend(l, config.Backend)
		if err != nil {
			return nil, err
		}
		return client, nil
	case generatorGemini:
		cfg := config.AI.Gemini
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		client, err := gemini.NewClient(ctx, l, apiKey, cfg.Options)
		if err != nil {
			return nil, err
		}
		return gemini.NewCVGenerator(client, nil, logger.WithFields(l, logger.GeneratorFields(generatorGemini, client.Model())...)), nil
	default:
		return nil, fmt.Errorf("unsupported generator: %s", config.Generator)
	}
}

func newExporter(ctx context.Context, name string, cfg *ExportConfig) (wizard.Exporter, error) {
	switch name {
	case exportClipboard:
		return export.NewClipboard(), nil
	case exportFile, "":
		return export.NewFile(cfg.Directory, cfg.Format), nil
	case exportS3:
		if cfg.S3 == nil {
			return nil, fmt.Errorf("export.s3 is not configured")
		}
		accessKey, err := secrets.Load(secrets.Source{Name: "s3 access key", File: cfg.S3.AccessKeyFile, Env: "AWS_ACCESS_KEY_ID"})
		if err != nil {
			return nil, err
		}
		secretKey, err := secrets.Load(secrets.Source{Name: "s3 secret key", File: cfg.S3.SecretKeyFile, Env: "AWS_SECRET_ACCESS_KEY"})
		if err != nil {
			return nil, err
		}
		exp, err := export.NewS3(ctx, cfg.S3.S3Config, accessKey, secretKey)
		if err != nil {
			return nil, err
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unknown exporter %q (use file, s3 or clipboard)", name)
	}
}

func newController(gen wizard.Generator, l *zap.Logger, config *Config, opts ...wizard.Option) (*wizard.Controller, error) {
	opts = append([]wizard.Option{wizard.WithLogger(l)}, opts...)
	return wizard.New(gen, wizard.Config{
		Rules:              config.Wizard.Rules,
		Score:              config.Score,
		SubmitTimeout:      config.Wizard.SubmitTimeout,
		DefaultResultScore: config.Wizard.DefaultResultScore,
	}, opts...)
}
