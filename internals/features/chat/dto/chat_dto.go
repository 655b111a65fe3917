package dto

import "strings"

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,max=40,dive"`
}

// Normalize trims content and drops client-sent system messages; the
// server owns the system prompt.
func (r *ChatRequest) Normalize() {
	out := r.Messages[:0]
	for _, m := range r.Messages {
		m.Role = strings.ToLower(strings.TrimSpace(m.Role))
		m.Content = strings.TrimSpace(m.Content)
		if m.Role == "system" || m.Content == "" {
			continue
		}
		out = append(out, m)
	}
	r.Messages = out
}
