package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

const streamHeartbeat = 25 * time.Second

// requireClaims returns the signed-in user or writes a 401.
func requireClaims(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized access attempt: missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}

// streamEvents writes every value from updates as a server-sent event named
// event until updates is closed or the client goes away. Comments are sent
// as a heartbeat so idle proxies keep the connection open.
func streamEvents[T any](w http.ResponseWriter, r *http.Request, event string, updates <-chan T, logger *slog.Logger) {

	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		logger.Error("❌ Streaming not supported", slog.String("error", err.Error()))
		return
	}

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case value, ok := <-updates:
			if !ok {
				return
			}

			data, err := json.Marshal(value)
			if err != nil {
				logger.Error("❌ Failed to encode stream event", slog.String("error", err.Error()))
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
				logger.Debug("Stream client went away", slog.String("error", err.Error()))
				return
			}

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}

		case <-r.Context().Done():
			return
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}
