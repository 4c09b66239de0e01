package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/rest/middleware"
	"github.com/browsekit/navigator/pkg/rest/request"
	"github.com/browsekit/navigator/pkg/rest/response"
)

type navigateRequest struct {
	Input string `json:"input"`
}

func (h *Handler) PostNavigate(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	req := navigateRequest{}
	if err := request.JSONDECODE(r.Body, &req); err != nil {
		logger.Error("could not decode request body", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "invalid request format")
		return
	}

	if strings.TrimSpace(req.Input) == "" {
		response.Err(w, response.ErrInvalidInput, "missing input")
		return
	}

	nav := h.navigator.Go(r.Context(), req.Input)
	if err := response.JSON(w, http.StatusOK, nav); err != nil {
		logger.Error("unable to create json response", slog.String("reason", err.Error()))
	}
}
