package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const ssePingInterval = 15 * time.Second

// handleEvents streams hub events as SSE. ?user_id=N keeps only that
// user's events.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	var filter int64
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return s.fail(c, &service.ValidationError{Fields: map[string]string{"user_id": "must be a positive integer"}})
		}
		filter = id
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	done := s.done
	hub := s.hub
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sub := hub.Subscribe(ctx, 32)

		if writeSSE(w, "ready", []byte("{}")) != nil {
			return
		}

		ticker := time.NewTicker(ssePingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if writeSSE(w, "ping", []byte("{}")) != nil {
					return
				}
			case evt, ok := <-sub:
				if !ok {
					return
				}
				if filter > 0 && evt.UserID() != filter {
					continue
				}
				if err := writeEvent(w, evt); err != nil {
					slog.Debug("sse client gone", "error", err)
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, evt eventbus.Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return writeSSE(w, evt.Type, b)
}

// writeSSE writes one frame and flushes; a flush error means the client left.
func writeSSE(w *bufio.Writer, name string, data []byte) error {
	if _, err := w.WriteString("event: " + sanitizeSSEName(name) + "\n"); err != nil {
		return err
	}
	if _, err := w.WriteString("data: "); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}

func sanitizeSSEName(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return "message"
	}
	n = strings.ReplaceAll(n, "\n", "")
	n = strings.ReplaceAll(n, "\r", "")
	return n
}
