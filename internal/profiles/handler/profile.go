package handler

import (
	"net/http"

	authmw "tutorbook/internal/auth/middleware"
	"tutorbook/internal/profiles/service"
	httputil "tutorbook/pkg/http"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ProfileHandler struct {
	service  service.ProfileService
	verifier authmw.Verifier
	log      *logger.Logger
}

func NewProfileHandler(service service.ProfileService, verifier authmw.Verifier, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, _ := authmw.PrincipalFromContext(r.Context())
	profile, err := h.service.GetProfile(r.Context(), principal)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProfileHandler) Users(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, _ := authmw.PrincipalFromContext(r.Context())
	users, err := h.service.ListUsers(r.Context(), principal)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Users", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "Users", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProfileHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/me", authmw.Protect(h.verifier, h.Me))
	router.GET("/api/v1/admin/users", authmw.Protect(h.verifier, h.Users, model.RoleAdmin))
}
