package backend

import (
	"context"
	"fmt"
	"strings"
)

// ChatKind selects one of the backend chat assistants. Each keeps its own
// history on the server.
type ChatKind string

const (
	ChatGeneral ChatKind = "chat"
	ChatCoder   ChatKind = "coder"
)

// Message is one entry of a chat history.
type Message struct {
	Sender string `mapstructure:"sender"`
	Text   string `mapstructure:"text"`
}

func (k ChatKind) path() (string, error) {
	switch k {
	case ChatGeneral, "":
		return "/api/chat/", nil
	case ChatCoder:
		return "/api/coder/chat/", nil
	default:
		return "", fmt.Errorf("unknown chat kind %q", string(k))
	}
}

// Chat sends message and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, kind ChatKind, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message is required")
	}

	path, err := kind.path()
	if err != nil {
		return "", err
	}

	return c.reply(ctx, path, map[string]string{"message": message})
}

// ChatHistory returns the stored conversation, oldest first.
func (c *Client) ChatHistory(ctx context.Context, kind ChatKind) ([]Message, error) {
	path, err := kind.path()
	if err != nil {
		return nil, err
	}

	raw, err := c.getJSON(ctx, path+"history/")
	if err != nil {
		return nil, err
	}

	var answer struct {
		History []Message `mapstructure:"history"`
		Error   string    `mapstructure:"error"`
	}
	if err := decode(raw, &answer); err != nil {
		return nil, err
	}
	if answer.Error != "" {
		return nil, &APIError{Endpoint: path + "history/", Message: answer.Error}
	}

	return answer.History, nil
}

// ResetChat clears the stored conversation and returns the server status line.
func (c *Client) ResetChat(ctx context.Context, kind ChatKind) (string, error) {
	path, err := kind.path()
	if err != nil {
		return "", err
	}

	raw, err := c.postJSON(ctx, path+"reset/", nil)
	if err != nil {
		return "", err
	}

	var answer struct {
		Status string `mapstructure:"status"`
		Error  string `mapstructure:"error"`
	}
	if err := decode(raw, &answer); err != nil {
		return "", err
	}
	if answer.Error != "" {
		return "", &APIError{Endpoint: path + "reset/", Message: answer.Error}
	}

	return answer.Status, nil
}
