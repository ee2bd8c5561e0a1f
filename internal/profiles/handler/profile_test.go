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

type stubVerifier map[string]*model.Principal

func (s stubVerifier) Verify(raw string) (*model.Principal, error) {
	if p, ok := s[raw]; ok {
		return p, nil
	}
	return nil, apperrors.Unauthorized("Invalid or expired token")
}

type mockProfileService struct {
	getProfileFunc func(ctx context.Context, principal *model.Principal) (*model.ProfileSummary, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, principal *model.Principal) (*model.ProfileSummary, error) {
	return m.getProfileFunc(ctx, principal)
}

func (m *mockProfileService) ListUsers(ctx context.Context, principal *model.Principal) ([]*model.UserSummary, error) {
	return []*model.UserSummary{{ID: "s1", Role: model.RoleStudent, BookingsCount: 2}}, nil
}

func serve(svc *mockProfileService, path, token string) *httptest.ResponseRecorder {
	router := httprouter.New()
	verifier := stubVerifier{
		"teacher": {ID: "t1", Role: model.RoleTeacher},
		"admin":   {ID: "a1", Role: model.RoleAdmin},
	}
	NewProfileHandler(svc, verifier, logger.Discard()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMe(t *testing.T) {
	svc := &mockProfileService{
		getProfileFunc: func(ctx context.Context, principal *model.Principal) (*model.ProfileSummary, error) {
			if principal.ID != "t1" {
				return nil, apperrors.NotFoundWithID("Teacher", principal.ID)
			}
			return &model.ProfileSummary{ID: "t1", Role: model.RoleTeacher, Name: "Alice"}, nil
		},
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"authenticated", "teacher", http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"bad token", "forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(svc, "/api/v1/me", tt.token)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}

	rec := serve(svc, "/api/v1/me", "teacher")
	var body struct {
		Data model.ProfileSummary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Name != "Alice" {
		t.Errorf("expected Alice, got %+v", body.Data)
	}
}

func TestUsers_AdminOnly(t *testing.T) {
	svc := &mockProfileService{}

	if rec := serve(svc, "/api/v1/admin/users", "teacher"); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for teacher, got %d", rec.Code)
	}

	rec := serve(svc, "/api/v1/admin/users", "admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data []model.UserSummary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].BookingsCount != 2 {
		t.Errorf("unexpected users: %+v", body.Data)
	}
}
