package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/backend"
)

func newWriterCmd(use, short string, call func(*backend.Client, context.Context, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			logger, config := setup()

			client, err := newBackend(logger, config.Backend)
			if err != nil {
				logger.Fatal("creating a backend client", zap.Error(err))
			}

			text, err := writerInput(args, cmd.InOrStdin())
			if err != nil {
				logger.Fatal("reading input", zap.Error(err))
			}

			out, err := call(client, cmd.Context(), text)
			if err != nil {
				logger.Fatal(fmt.Sprintf("%s failed", cmd.Name()), zap.Error(err))
			}

			if err := printMarkdown(cmd.OutOrStdout(), out); err != nil {
				logger.Fatal("printing the answer", zap.Error(err))
			}
		},
	}
}

// writerInput joins the arguments, or reads stdin when there are none.
func writerInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(
		newWriterCmd("paraphrase [text]", "Rewrite text clearly and concisely", (*backend.Client).Paraphrase),
		newWriterCmd("write [topic]", "Write a short article about a topic", (*backend.Client).GenerateContent),
		newWriterCmd("script [prompt]", "Write a video script", (*backend.Client).GenerateScript),
	)
}
