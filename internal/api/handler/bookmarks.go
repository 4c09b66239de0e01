package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/repositories/bookmark"
	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/rest/middleware"
	"github.com/browsekit/navigator/pkg/rest/request"
	"github.com/browsekit/navigator/pkg/rest/response"
)

func (h *Handler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	bookmarks, err := h.bookmarks.ReadAll()
	if err != nil {
		logger.Error("unable to fetch bookmarks", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to fetch bookmarks from storage")
		return
	}

	h.annotateReachability(bookmarks)

	if err := response.JSON(w, http.StatusOK, bookmarks); err != nil {
		logger.Error("unable to create json response", slog.String("reason", err.Error()))
	}
}

// annotateReachability marks bookmarks whose host the monitor probes.
// Unmonitored hosts stay unmarked, absence of probes is not unreachability.
func (h *Handler) annotateReachability(bookmarks []model.Bookmark) {
	if h.reach == nil {
		return
	}

	for i := range bookmarks {
		parsed, err := url.Parse(bookmarks[i].URL)
		if err != nil || parsed.Hostname() == "" {
			continue
		}

		if reachable, err := h.reach.Reachable(parsed.Hostname()); err == nil {
			bookmarks[i].Reachable = &reachable
		}
	}
}

func (h *Handler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	bm := model.Bookmark{}
	if err := request.JSONDECODE(r.Body, &bm); err != nil {
		logger.Error("could not decode request body", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "invalid request format")
		return
	}

	if err := h.bookmarks.Create(bm); err != nil {
		logger.Error("could not create bookmark", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "unable to create bookmark")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		response.Err(w, response.ErrInvalidInput, "index must be a number")
		return
	}

	if err := h.bookmarks.Delete(index); err != nil {
		if errors.Is(err, bookmark.ErrBookmarkIndexOutOfRange) {
			response.Err(w, response.ErrNotFound, "no bookmark at index: "+strconv.Itoa(index))
			return
		}
		logger.Error("could not delete bookmark", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInternalError, "unable to delete bookmark")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
