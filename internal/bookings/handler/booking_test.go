package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type stubVerifier map[string]*model.Principal

func (s stubVerifier) Verify(raw string) (*model.Principal, error) {
	if p, ok := s[raw]; ok {
		return p, nil
	}
	return nil, apperrors.Unauthorized("Invalid or expired token")
}

type mockBookingService struct {
	createFunc func(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (*model.Booking, error)
	deleteFunc func(ctx context.Context, principal *model.Principal, id string) error
}

func (m *mockBookingService) Create(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (*model.Booking, error) {
	return m.createFunc(ctx, principal, req)
}

func (m *mockBookingService) Delete(ctx context.Context, principal *model.Principal, id string) error {
	return m.deleteFunc(ctx, principal, id)
}

func (m *mockBookingService) ListForAccount(ctx context.Context, principal *model.Principal) ([]*model.BookingDetails, error) {
	return []*model.BookingDetails{}, nil
}

func (m *mockBookingService) ListAll(ctx context.Context, principal *model.Principal) ([]*model.AdminBooking, error) {
	return []*model.AdminBooking{{Status: model.StatusPending}}, nil
}

var verifier = stubVerifier{
	"student": {ID: "s1", Role: model.RoleStudent},
	"teacher": {ID: "t1", Role: model.RoleTeacher},
	"admin":   {ID: "a1", Role: model.RoleAdmin},
}

func serve(svc *mockBookingService, method, path, token, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewBookingHandler(svc, verifier, logger.Discard()).RegisterRoutes(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (*model.Booking, error) {
			return &model.Booking{ID: "b1", StudentID: principal.ID, TeacherID: req.TeacherID, Date: req.Date, Time: req.Time}, nil
		},
	}

	rec := serve(svc, http.MethodPost, "/api/v1/bookings", "student", `{"teacher_id":"t1","date":"2025-01-02","time":"10:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data.StudentID != "s1" || body.Data.TeacherID != "t1" {
		t.Errorf("unexpected booking: %+v", body.Data)
	}

	if rec := serve(svc, http.MethodPost, "/api/v1/bookings", "", `{}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestCreate_NonStudentForbiddenBeforeDecode(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (*model.Booking, error) {
			t.Fatal("service should not be called for a non-student")
			return nil, nil
		},
	}

	tests := []struct {
		name  string
		token string
		body  string
	}{
		{name: "teacher empty body", token: "teacher", body: ""},
		{name: "teacher malformed body", token: "teacher", body: "not json"},
		{name: "teacher empty object", token: "teacher", body: "{}"},
		{name: "admin malformed body", token: "admin", body: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(svc, http.MethodPost, "/api/v1/bookings", tt.token, tt.body)
			if rec.Code != http.StatusForbidden {
				t.Errorf("expected 403, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreate_Conflict(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (*model.Booking, error) {
			return nil, apperrors.Conflict("This slot is already booked")
		},
	}

	rec := serve(svc, http.MethodPost, "/api/v1/bookings", "student", `{"teacher_id":"t1","date":"2025-01-02","time":"10:00"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	var gotID string
	svc := &mockBookingService{
		deleteFunc: func(ctx context.Context, principal *model.Principal, id string) error {
			gotID = id
			return nil
		},
	}

	rec := serve(svc, http.MethodDelete, "/api/v1/bookings/b1", "student", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotID != "b1" {
		t.Errorf("expected id b1, got %q", gotID)
	}
}

func TestAdminBookings_RequiresAdmin(t *testing.T) {
	svc := &mockBookingService{}

	if rec := serve(svc, http.MethodGet, "/api/v1/admin/bookings", "student", ""); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for student, got %d", rec.Code)
	}
	if rec := serve(svc, http.MethodGet, "/api/v1/admin/bookings", "admin", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", rec.Code)
	}
}
