package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/features/chat/dto"
)

var ErrNoAPIKey = errors.New("chat is not configured on this server")

var httpClient = &http.Client{Timeout: 120 * time.Second}

type completionRequest struct {
	Model    string            `json:"model"`
	Messages []dto.ChatMessage `json:"messages"`
	Stream   bool              `json:"stream"`
}

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// StreamCompletion calls an OpenAI-compatible chat completions endpoint
// with stream=true and invokes emit for every content delta. It returns
// once the upstream sends [DONE] or the context is cancelled.
func StreamCompletion(ctx context.Context, messages []dto.ChatMessage, emit func(delta string) error) error {
	apiKey := configs.OpenAIAPIKey
	if apiKey == "" {
		return ErrNoAPIKey
	}
	baseURL := strings.TrimRight(configs.OpenAIBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := configs.GetEnv("OPENAI_MODEL", "gpt-4o-mini")

	body, err := sonic.Marshal(completionRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("llm upstream returned %d: %s", resp.StatusCode, string(snippet))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return nil
		}

		var chunk completionChunk
		if err := sonic.Unmarshal([]byte(payload), &chunk); err != nil {
			continue // upstream keep-alives and comments are not fatal
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := emit(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	return scanner.Err()
}
