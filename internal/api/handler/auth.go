package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/browsekit/navigator/internal/config"
	"github.com/browsekit/navigator/pkg/auth/jwt"
	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/rest/middleware"
	"github.com/browsekit/navigator/pkg/rest/request"
	"github.com/browsekit/navigator/pkg/rest/response"
)

type loginRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// PostLogin trades the admin password for a token carrying the requested
// role's claims.
func (h *Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	logger := bslog.With(slog.String("request_id", middleware.RequestID(r.Context())))

	req := loginRequest{}
	if err := request.JSONDECODE(r.Body, &req); err != nil {
		logger.Error("could not decode request body", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "invalid request format")
		return
	}

	adminHash := config.GetInstance().API().AdminHash
	if adminHash == "" {
		logger.Error("login rejected", slog.String("reason", "no admin hash configured"))
		response.Err(w, response.ErrUnauthorized, "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(req.Password)); err != nil {
		logger.Error("login rejected", slog.String("reason", "password mismatch"))
		response.Err(w, response.ErrUnauthorized, "")
		return
	}

	if req.Role == "" {
		req.Role = "SHELL-UI"
	}

	token, err := jwt.IssueFor(req.Role, config.GetInstance().API().TokenValidity)
	if err != nil {
		logger.Error("could not issue token", slog.String("reason", err.Error()))
		response.Err(w, response.ErrInvalidInput, "unknown role: "+req.Role)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{Token: token})
}
