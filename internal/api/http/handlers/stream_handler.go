package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/mistatas/soporte-service/internal/api/dto"
	"github.com/mistatas/soporte-service/internal/stream"
)

// StreamHandler serves the live full-snapshot ticket stream over SSE. Every
// event carries the complete collection; clients replace their mirror on each
// message.
type StreamHandler struct {
	hub *stream.Hub
}

// NewStreamHandler constructs handler.
func NewStreamHandler(hub *stream.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream GET /tickets/stream.
func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	sub, err := h.hub.Subscribe(c.UserContext())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()
		for snapshot := range sub.Tickets() {
			payload, err := json.Marshal(dto.NewTicketResponses(snapshot))
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			// a failed flush means the client went away
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
