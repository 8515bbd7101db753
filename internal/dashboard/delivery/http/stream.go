package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	streamBufferSize = 8
	streamHeartbeat  = 30 * time.Second
)

// offer queues v without blocking the publisher. When the buffer is full the
// oldest queued snapshot is dropped, so a slow client always ends on the newest.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// streamEvents writes initial and then every update as server-sent events
// until the client goes away.
func streamEvents[T any](c echo.Context, event string, initial T, updates <-chan T) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, event, initial); err != nil {
		return err
	}

	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case v := <-updates:
			if err := writeEvent(res, event, v); err != nil {
				return err
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return err
			}
			res.Flush()
		}
	}
}

func writeEvent(res *echo.Response, event string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
