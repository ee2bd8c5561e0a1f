package handler

import (
	"net/http"

	"tutorbook/internal/catalog/service"
	httputil "tutorbook/pkg/http"
	"tutorbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type TeacherHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewTeacherHandler(service service.CatalogService, log *logger.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		log:     log,
	}
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	teachers, err := h.service.ListTeachers(r.Context(), httputil.QueryParam(r, "q"))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, teachers); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TeacherHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	teacher, err := h.service.GetTeacher(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, teacher); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TeacherHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.Availability(r.Context(), ps.ByName("id"), httputil.QueryParam(r, "date"))
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TeacherHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *TeacherHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/teachers", h.List)
	router.GET("/api/v1/teachers/:id", h.GetByID)
	router.GET("/api/v1/teachers/:id/availability", h.Availability)
}
