package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"tiendajson/internal/domain"
	"tiendajson/internal/log"
	"tiendajson/internal/realtime"
	"tiendajson/internal/repos"
	"tiendajson/internal/validate"
)

const (
	replayLimit      = 200
	defaultKeepAlive = 25 * time.Second
)

type EventsHandler struct {
	Hub       *realtime.Hub
	Journal   *repos.EventRepo
	KeepAlive time.Duration
}

// GET /api/events?limit=N returns the newest journaled change events.
func (h *EventsHandler) Recent(c *fiber.Ctx) error {
	limit, ok := validate.Limit(c.Query("limit"))
	if !ok {
		return badRequest(c, "limit", "limit must be a non-negative integer")
	}
	switch {
	case limit == 0:
		limit = 50
	case limit > replayLimit:
		limit = replayLimit
	}
	events, err := h.Journal.Latest(limit)
	if err != nil {
		return fail(c, "events.list", "", err)
	}
	return c.JSON(events)
}

// GET /events streams change events as Server-Sent Events. A client that
// reconnects with Last-Event-ID first receives what it missed from the journal.
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	live, cancel := h.Hub.Subscribe()

	var backlog []domain.Event
	if last, err := strconv.ParseInt(c.Get("Last-Event-ID"), 10, 64); err == nil && last > 0 && h.Journal != nil {
		backlog, err = h.Journal.Since(last, replayLimit)
		if err != nil {
			log.Error(c, "events.replay.fail", err, map[string]any{"last_event_id": last})
		}
	}
	log.Info(c, "events.subscribe", map[string]any{"replay": len(backlog), "subscribers": h.Hub.Subscribers()})

	keepAlive := h.KeepAlive
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		var seen int64
		fmt.Fprint(w, "retry: 3000\n\n")
		for _, e := range backlog {
			writeEvent(w, e)
			seen = e.ID
		}
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case e, ok := <-live:
				if !ok {
					return
				}
				if e.ID != 0 && e.ID <= seen {
					continue
				}
				writeEvent(w, e)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// a failed flush means the client went away
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, e domain.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	if e.ID != 0 {
		fmt.Fprintf(w, "id: %d\n", e.ID)
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, data)
}
