package backend

import (
	"context"
	"fmt"
	"strings"
)

const (
	paraphrasePath = "/api/paraphraser/"
	contentPath    = "/api/content/generate/"
	scriptPath     = "/api/script/generate/"
)

// Paraphrase rewrites text clearly and concisely.
func (c *Client) Paraphrase(ctx context.Context, text string) (string, error) {
	return c.writeRequest(ctx, paraphrasePath, "message", text)
}

// GenerateContent writes a short article on topic.
func (c *Client) GenerateContent(ctx context.Context, topic string) (string, error) {
	return c.writeRequest(ctx, contentPath, "topic", topic)
}

// GenerateScript writes a video script for prompt.
func (c *Client) GenerateScript(ctx context.Context, prompt string) (string, error) {
	return c.writeRequest(ctx, scriptPath, "prompt", prompt)
}

func (c *Client) writeRequest(ctx context.Context, path, key, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}

	return c.reply(ctx, path, map[string]string{key: value})
}

// reply posts payload and returns the "response" field of the answer.
func (c *Client) reply(ctx context.Context, path string, payload any) (string, error) {
	raw, err := c.postJSON(ctx, path, payload)
	if err != nil {
		return "", err
	}

	var answer struct {
		Response string `mapstructure:"response"`
		Error    string `mapstructure:"error"`
	}
	if err := decode(raw, &answer); err != nil {
		return "", err
	}

	if answer.Error != "" {
		return "", &APIError{Endpoint: path, Message: answer.Error}
	}
	if strings.TrimSpace(answer.Response) == "" {
		return "", &APIError{Endpoint: path, Message: "empty response"}
	}

	return answer.Response, nil
}
