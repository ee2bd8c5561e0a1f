package handler

import (
	"net/http"

	"tutorbook/internal/accounts/service"
	httputil "tutorbook/pkg/http"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type StudentHandler struct {
	service service.AccountService
	log     *logger.Logger
}

func NewStudentHandler(service service.AccountService, log *logger.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		log:     log,
	}
}

// Ensure finds the student by email or registers a new one without a password.
func (h *StudentHandler) Ensure(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.StudentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ensure", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	student, err := h.service.EnsureStudent(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ensure", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, student); err != nil {
		h.log.Error("failed to write success response", "handler", "Ensure", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StudentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/students", h.Ensure)
}
