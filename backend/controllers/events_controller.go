package controllers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"project/backend/config"
	"project/backend/services"
	"project/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type EventsController struct {
	Cfg *config.Config
	Hub *services.FeedHub
}

func NewEventsController(cfg *config.Config, hub *services.FeedHub) *EventsController {
	return &EventsController{Cfg: cfg, Hub: hub}
}

// Subscribe godoc
// @Summary Subscribe to change notifications
// @Description Long-lived SSE stream of {event_kind, table_name} events for the ledger and roster tables
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /events [get]
func (ec *EventsController) Subscribe(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, ec.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch := ec.Hub.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer ec.Hub.Unsubscribe(ch)

		heartbeat := time.NewTicker(30 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case ev, open := <-ch:
				if !open {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-heartbeat.C:
				// Comment line keeps idle connections open through proxies.
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
