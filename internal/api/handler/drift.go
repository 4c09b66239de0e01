package handler

import (
	"log/slog"
	"net/http"

	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/rest/middleware"
	"github.com/browsekit/navigator/pkg/rest/response"
)

// GetDrift lists the override entries that disagreed with the
// authoritative zone on the last poll.
func (h *Handler) GetDrift(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	if h.drift == nil {
		response.Err(w, response.ErrNotFound, "drift detection is not enabled")
		return
	}

	if err := response.JSON(w, http.StatusOK, h.drift.Divergences()); err != nil {
		logger.Error("unable to create json response", slog.String("reason", err.Error()))
	}
}
