package handler

import (
	"log/slog"
	"net/http"

	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/rest/middleware"
	"github.com/browsekit/navigator/pkg/rest/response"
)

// GetResolve answers a single lookup. A hostname that resolves nowhere is
// still a 200, the source field says none.
func (h *Handler) GetResolve(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	hostname := r.PathValue("hostname")
	if hostname == "" {
		response.Err(w, response.ErrInvalidInput, "missing hostname")
		return
	}

	resolution := h.resolver.Resolve(r.Context(), hostname)
	if err := response.JSON(w, http.StatusOK, resolution); err != nil {
		logger.Error("unable to create json response", slog.String("reason", err.Error()))
	}
}
