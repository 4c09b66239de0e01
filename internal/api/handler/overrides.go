package handler

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/repositories/override"
	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/rest/middleware"
	"github.com/browsekit/navigator/pkg/rest/request"
	"github.com/browsekit/navigator/pkg/rest/response"
)

func (h *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	data, err := h.overrides.ReadAll()
	if err != nil {
		logger.Error("unable to fetch overrides", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to fetch overrides from storage")
		return
	}

	params := request.NewPaginationParams()
	if err := request.MarshallParams(r.URL.Query(), params); err != nil {
		logger.Error("unable to parse request parameters", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "could not parse request parameters")
		return
	}

	response.JSON(w, http.StatusOK, model.NewOverrideResponse(data, params))
}

func (h *Handler) GetOverride(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	hostname := r.PathValue("hostname")
	if hostname == "" {
		response.Err(w, response.ErrInvalidInput, "missing hostname")
		return
	}

	entry, err := h.overrides.Read(hostname)
	if err != nil {
		if errors.Is(err, override.ErrOverrideNotFound) {
			response.Err(w, response.ErrNotFound, "no override for hostname: "+hostname)
			return
		}
		logger.Error("could not read override", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "")
		return
	}

	if err := response.JSON(w, http.StatusOK, entry); err != nil {
		logger.Error("unable to create json response", slog.String("reason", err.Error()))
	}
}

// GetOverridesHash answers with a digest over the sorted entries so the
// shell can skip refetching an unchanged table.
func (h *Handler) GetOverridesHash(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	data, err := h.overrides.ReadAll()
	if err != nil {
		logger.Error("unable to fetch overrides", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to fetch overrides from storage")
		return
	}

	// entries must stay sorted on hostname for consistent hashes
	slices.SortFunc(data, func(a, b model.Override) int {
		return cmp.Compare(a.Hostname, b.Hostname)
	})

	marshalled, err := json.Marshal(data)
	if err != nil {
		logger.Error("unable to marshall overrides", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "could not create overrides-hash")
		return
	}

	rawHash := sha256.Sum256(marshalled)
	hash := model.Hash{
		Hash: hex.EncodeToString(rawHash[:]),
	}

	if err := response.JSON(w, http.StatusOK, hash); err != nil {
		logger.Error("could not write response to client", slog.String("reason", err.Error()))
	}
}

func (h *Handler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	entry := model.Override{}
	if err := request.JSONDECODE(r.Body, &entry); err != nil {
		logger.Error("could not decode request body", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "invalid request format")
		return
	}

	if entry.Hostname == "" {
		response.Err(w, response.ErrInvalidInput, "missing hostname")
		return
	}
	if net.ParseIP(entry.IP) == nil {
		response.Err(w, response.ErrInvalidInput, "invalid ip address: "+entry.IP)
		return
	}

	if err := h.overrides.Create(entry); err != nil {
		logger.Error("could not create override", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to store override")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	hostname := r.PathValue("hostname")
	if hostname == "" {
		response.Err(w, response.ErrInvalidInput, "missing hostname")
		return
	}

	// removing an unknown hostname is a no-op, not an error
	if err := h.overrides.Delete(hostname); err != nil {
		logger.Error("could not delete override", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to delete override")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearOverrides(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	if err := h.overrides.Clear(); err != nil {
		logger.Error("could not clear overrides", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to clear overrides")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
