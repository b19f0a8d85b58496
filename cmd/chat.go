package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/backend"
	"github.com/spigell/cvwizard/internal/render"
	"github.com/spigell/cvwizard/internal/ui"
)

const (
	chatReset   = "/reset"
	chatHistory = "/history"
	chatExit    = "/exit"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the backend assistant (/history, /reset, /exit)",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger, config := setup()

		client, err := newBackend(logger, config.Backend)
		if err != nil {
			logger.Fatal("creating a backend client", zap.Error(err))
		}

		kind := backend.ChatGeneral
		if coder, _ := cmd.Flags().GetBool("coder"); coder {
			kind = backend.ChatCoder
		}

		if err := chat(ctx, cmd.OutOrStdout(), client, kind); err != nil {
			logger.Fatal("chat stopped", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("coder", false, "talk to the coding assistant")
}

type chatter interface {
	Chat(ctx context.Context, kind backend.ChatKind, message string) (string, error)
	ChatHistory(ctx context.Context, kind backend.ChatKind) ([]backend.Message, error)
	ResetChat(ctx context.Context, kind backend.ChatKind) (string, error)
}

func chat(ctx context.Context, w io.Writer, client chatter, kind backend.ChatKind) error {
	for {
		input := promptui.Prompt{Label: "You"}
		line, err := input.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := chatTurn(ctx, w, client, kind, line)
		if err != nil {
			fmt.Fprintln(w, ui.Error(err.Error()))
		}
		if done {
			return nil
		}
	}
}

// chatTurn handles one line of user input and reports whether the
// conversation is over.
func chatTurn(ctx context.Context, w io.Writer, client chatter, kind backend.ChatKind, line string) (bool, error) {
	switch line = strings.TrimSpace(line); line {
	case "":
		return false, nil
	case chatExit:
		return true, nil
	case chatReset:
		status, err := client.ResetChat(ctx, kind)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(w, status)
		return false, nil
	case chatHistory:
		history, err := client.ChatHistory(ctx, kind)
		if err != nil {
			return false, err
		}
		for _, m := range history {
			fmt.Fprintf(w, "%s: %s\n", m.Sender, m.Text)
		}
		return false, nil
	}

	reply, err := client.Chat(ctx, kind, line)
	if err != nil {
		return false, err
	}

	return false, printMarkdown(w, reply)
}

func printMarkdown(w io.Writer, text string) error {
	out, err := render.Terminal(text, terminalWidth())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
