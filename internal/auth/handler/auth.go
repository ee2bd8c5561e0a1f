package handler

import (
	"net/http"

	"tutorbook/internal/auth/service"
	httputil "tutorbook/pkg/http"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

func (h *AuthHandler) Signup(role model.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req model.SignupRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			h.writeError(w, "Signup", err)
			return
		}

		result, err := h.service.Signup(r.Context(), role, &req)
		if err != nil {
			h.writeError(w, "Signup", err)
			return
		}

		if err := httputil.WriteCreated(w, result); err != nil {
			h.log.Error("failed to write created response", "handler", "Signup", "operation", "WriteCreated", "error", err)
		}
	}
}

func (h *AuthHandler) Login(role model.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req model.LoginRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			h.writeError(w, "Login", err)
			return
		}

		var (
			result *model.AuthResult
			err    error
		)
		if role == model.RoleAdmin {
			result, err = h.service.AdminLogin(r.Context(), &req)
		} else {
			result, err = h.service.Login(r.Context(), role, &req)
		}
		if err != nil {
			h.writeError(w, "Login", err)
			return
		}

		if err := httputil.WriteSuccess(w, result); err != nil {
			h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/student/signup", h.Signup(model.RoleStudent))
	router.POST("/api/v1/auth/teacher/signup", h.Signup(model.RoleTeacher))
	router.POST("/api/v1/auth/student/login", h.Login(model.RoleStudent))
	router.POST("/api/v1/auth/teacher/login", h.Login(model.RoleTeacher))
	router.POST("/api/v1/auth/admin/login", h.Login(model.RoleAdmin))
}
