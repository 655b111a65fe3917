package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/features/chat/dto"
	"sportku_backend/internals/features/chat/service"
	helper "sportku_backend/internals/helpers"
)

var validate = validator.New()

type ChatController struct {
	DB    *gorm.DB
	Cache *service.PromptCache
}

func NewChatController(db *gorm.DB, cache *service.PromptCache) *ChatController {
	return &ChatController{DB: db, Cache: cache}
}

// Health lets the frontend decide whether to show the chat widget at
// all. Public on purpose.
func (cc *ChatController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"configured": configs.OpenAIAPIKey != "",
	})
}

// Stream proxies the conversation to the LLM and relays deltas to the
// browser as server-sent events. The facility snapshot is prepended
// server-side so clients cannot override it.
func (cc *ChatController) Stream(c *fiber.Ctx) error {
	if configs.OpenAIAPIKey == "" {
		return helper.JsonError(c, fiber.StatusBadGateway, "Chat is not configured on this server")
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil || len(req.Messages) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "At least one user message is required")
	}

	systemPrompt, err := cc.Cache.Get(c.UserContext())
	if err != nil {
		log.Printf("❌ chat snapshot failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load facility data")
	}
	messages := append(
		[]dto.ChatMessage{{Role: "system", Content: systemPrompt}},
		req.Messages...,
	)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		err := service.StreamCompletion(ctx, messages, func(delta string) error {
			if _, err := fmt.Fprintf(w, "data: %s\n\n", sseEscape(delta)); err != nil {
				return err
			}
			return w.Flush()
		})
		switch {
		case err == nil:
			fmt.Fprint(w, "data: [DONE]\n\n")
		case errors.Is(err, service.ErrNoAPIKey):
			fmt.Fprint(w, "event: error\ndata: chat is not configured\n\n")
		default:
			log.Printf("❌ chat stream failed: %v", err)
			fmt.Fprint(w, "event: error\ndata: the assistant is unavailable right now\n\n")
		}
		w.Flush()
	}))
	return nil
}

// sseEscape keeps multi-line deltas inside a single SSE data field.
func sseEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, []byte("\ndata: ")...)
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
