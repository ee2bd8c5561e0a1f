package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "tutorbook/pkg/errors"
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

func TestProtect(t *testing.T) {
	verifier := stubVerifier{
		"student-token": {ID: "s1", Role: model.RoleStudent},
		"admin-token":   {ID: "a1", Role: model.RoleAdmin, Email: "admin@example.com"},
	}

	var seen *model.Principal
	handler := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name       string
		header     string
		roles      []model.Role
		wantStatus int
		wantID     string
	}{
		{"no header", "", nil, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized, ""},
		{"bad token", "Bearer nope", nil, http.StatusUnauthorized, ""},
		{"any role", "Bearer student-token", nil, http.StatusOK, "s1"},
		{"matching role", "Bearer admin-token", []model.Role{model.RoleAdmin}, http.StatusOK, "a1"},
		{"other role", "Bearer student-token", []model.Role{model.RoleAdmin}, http.StatusForbidden, ""},
		{"one of many", "bearer student-token", []model.Role{model.RoleStudent, model.RoleTeacher}, http.StatusOK, "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			router := httprouter.New()
			router.GET("/protected", Protect(verifier, handler, tt.roles...))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantID == "" {
				if seen != nil {
					t.Errorf("handler must not run, saw %+v", seen)
				}
				return
			}
			if seen == nil || seen.ID != tt.wantID {
				t.Errorf("expected principal %q, got %+v", tt.wantID, seen)
			}
		})
	}
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	called := false
	h := RequireRole(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	}, model.RoleAdmin)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if called || rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without principal, got %d (called=%v)", rec.Code, called)
	}
}
