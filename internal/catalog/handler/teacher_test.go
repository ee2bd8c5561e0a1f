package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockCatalogService struct {
	listTeachersFunc func(ctx context.Context, query string) ([]*model.Teacher, error)
	getTeacherFunc   func(ctx context.Context, id string) (*model.Teacher, error)
	availabilityFunc func(ctx context.Context, teacherID, date string) ([]model.SlotAvailability, error)
}

func (m *mockCatalogService) ListTeachers(ctx context.Context, query string) ([]*model.Teacher, error) {
	return m.listTeachersFunc(ctx, query)
}

func (m *mockCatalogService) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	return m.getTeacherFunc(ctx, id)
}

func (m *mockCatalogService) Availability(ctx context.Context, teacherID, date string) ([]model.SlotAvailability, error) {
	return m.availabilityFunc(ctx, teacherID, date)
}

func newRouter(svc *mockCatalogService) *httprouter.Router {
	router := httprouter.New()
	NewTeacherHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestList(t *testing.T) {
	var gotQuery string
	router := newRouter(&mockCatalogService{
		listTeachersFunc: func(ctx context.Context, query string) ([]*model.Teacher, error) {
			gotQuery = query
			return []*model.Teacher{{ID: "t1", Name: "Alice", PasswordHash: "secret"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers?q=+alg+", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotQuery != "alg" {
		t.Errorf("expected trimmed query, got %q", gotQuery)
	}

	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("expected one teacher, got %d", len(body.Data))
	}
	if _, leaked := body.Data[0]["password_hash"]; leaked {
		t.Error("password hash must not be serialized")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	router := newRouter(&mockCatalogService{
		getTeacherFunc: func(ctx context.Context, id string) (*model.Teacher, error) {
			return nil, apperrors.NotFoundWithID("Teacher", id)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers/507f1f77bcf86cd799439011", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND code, got %q", body.Code)
	}
}

func TestAvailability(t *testing.T) {
	router := newRouter(&mockCatalogService{
		availabilityFunc: func(ctx context.Context, teacherID, date string) ([]model.SlotAvailability, error) {
			if teacherID != "t1" || date != "2025-01-02" {
				t.Errorf("unexpected arguments %q %q", teacherID, date)
			}
			return []model.SlotAvailability{{Time: "09:00", Booked: true}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers/t1/availability?date=2025-01-02", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data []model.SlotAvailability `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Data) != 1 || !body.Data[0].Booked {
		t.Errorf("unexpected body: %+v", body.Data)
	}
}
