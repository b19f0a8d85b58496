package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/metrics"
	"github.com/spigell/cvwizard/internal/profile"
	"github.com/spigell/cvwizard/internal/wizard"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Fill in the CV form step by step and generate a professional CV",
	Run: func(cmd *cobra.Command, _ []string) {
		runCV(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cvCmd)

	cvCmd.Flags().StringP("profile", "p", "", "a YAML file with answers to prefill the form")
	cvCmd.Flags().BoolP("non-interactive", "n", false, "submit the profile without prompts")
	cvCmd.Flags().StringP("export", "e", exportFile, "where non-interactive runs send the CV: file, s3 or clipboard")
}

func runCV(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setup()
	logger.Info("starting the cvwizard", zap.String("version", version), zap.String("generator", config.Generator))

	gen, err := newGenerator(ctx, logger, config)
	if err != nil {
		logger.Fatal("creating a generator", zap.Error(err))
	}

	var opts []wizard.Option
	if config.MetricsFile != "" {
		recorder := metrics.New()
		opts = append(opts, wizard.WithObserver(recorder))
		defer func() {
			if err := recorder.WriteTextfile(config.MetricsFile); err != nil {
				logger.Warn("writing metrics", zap.String("filename", config.MetricsFile), zap.Error(err))
			}
		}()
	}

	build := func(fields wizard.Fields) (*wizard.Controller, error) {
		c, err := newController(gen, logger, config, opts...)
		if err != nil {
			return nil, err
		}
		return c, prefill(c, fields)
	}

	var fields wizard.Fields
	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		if fields, err = profile.Load(path); err != nil {
			logger.Fatal("loading a profile", zap.Error(err))
		}
	}

	c, err := build(fields)
	if err != nil {
		logger.Fatal("creating the wizard", zap.Error(err))
	}

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if nonInteractive || !isInteractive() {
		target, _ := cmd.Flags().GetString("export")
		location, err := submitAndExport(ctx, c, target, config.Export)
		if err != nil {
			logger.Fatal("generating the cv", zap.Error(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), location)
		return
	}

	s := &session{
		ctx:     ctx,
		logger:  logger,
		config:  config,
		out:     cmd.OutOrStdout(),
		width:   terminalWidth(),
		c:       c,
		rebuild: build,
	}
	if err := s.run(); err != nil {
		logger.Error("wizard stopped", zap.Error(err))
	}
}

func prefill(c *wizard.Controller, fields wizard.Fields) error {
	for _, step := range c.Steps() {
		value, ok := fields[step.Field]
		if step.Field == "" || !ok {
			continue
		}
		if err := c.SetField(step.Field, value); err != nil {
			return err
		}
	}
	return nil
}

// complete walks the wizard to the last step and submits it. The walk stops
// at the first invalid step.
func complete(ctx context.Context, c *wizard.Controller) (*wizard.Document, error) {
	for {
		err := c.Next()
		if errors.Is(err, wizard.ErrNoNextStep) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return c.Submit(ctx)
}

func submitAndExport(ctx context.Context, c *wizard.Controller, target string, cfg *ExportConfig) (string, error) {
	exp, err := newExporter(ctx, target, cfg)
	if err != nil {
		return "", err
	}

	if _, err := complete(ctx, c); err != nil {
		return "", err
	}

	return c.Export(ctx, exp)
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
