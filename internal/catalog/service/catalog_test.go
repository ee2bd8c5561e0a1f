package service

import (
	"context"
	"errors"
	"testing"

	accounts "tutorbook/internal/accounts/service"
	"tutorbook/pkg/config"
	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"
)

// mockAccounts implements only the lookups the catalog uses; any other call
// panics on the nil embedded interface.
type mockAccounts struct {
	accounts.AccountService
	listTeachersFunc func(ctx context.Context, query string) ([]*model.Teacher, error)
	getTeacherFunc   func(ctx context.Context, id string) (*model.Teacher, error)
}

func (m *mockAccounts) ListTeachers(ctx context.Context, query string) ([]*model.Teacher, error) {
	return m.listTeachersFunc(ctx, query)
}

func (m *mockAccounts) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	return m.getTeacherFunc(ctx, id)
}

type mockBookedSlots struct {
	bookedTimesFunc func(ctx context.Context, teacherID, date string) ([]string, error)
}

func (m *mockBookedSlots) BookedTimes(ctx context.Context, teacherID, date string) ([]string, error) {
	if m.bookedTimesFunc != nil {
		return m.bookedTimesFunc(ctx, teacherID, date)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.Discard()}
}

func alice() *model.Teacher {
	return &model.Teacher{
		ID:      "t1",
		Name:    "Alice Johnson",
		Subject: "Mathematics",
		Price:   25,
		Slots:   []string{"09:00", "10:00", "14:00", "16:00"},
	}
}

func TestListTeachers_PassesQuery(t *testing.T) {
	var got string
	svc := NewCatalogService(&mockAccounts{
		listTeachersFunc: func(ctx context.Context, query string) ([]*model.Teacher, error) {
			got = query
			return []*model.Teacher{alice()}, nil
		},
	}, &mockBookedSlots{}, testConfig())

	teachers, err := svc.ListTeachers(context.Background(), "math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "math" || len(teachers) != 1 {
		t.Errorf("expected query forwarded and one teacher, got %q and %d", got, len(teachers))
	}
}

func TestGetTeacher_EmptyID(t *testing.T) {
	svc := NewCatalogService(&mockAccounts{}, &mockBookedSlots{}, testConfig())

	if _, err := svc.GetTeacher(context.Background(), ""); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestAvailability(t *testing.T) {
	svc := NewCatalogService(&mockAccounts{
		getTeacherFunc: func(ctx context.Context, id string) (*model.Teacher, error) {
			if id != "t1" {
				return nil, apperrors.NotFoundWithID("Teacher", id)
			}
			return alice(), nil
		},
	}, &mockBookedSlots{
		bookedTimesFunc: func(ctx context.Context, teacherID, date string) ([]string, error) {
			if date == "2025-01-02" {
				return []string{"10:00", "16:00"}, nil
			}
			return nil, nil
		},
	}, testConfig())

	slots, err := svc.Availability(context.Background(), "t1", "2025-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.SlotAvailability{
		{Time: "09:00", Booked: false},
		{Time: "10:00", Booked: true},
		{Time: "14:00", Booked: false},
		{Time: "16:00", Booked: true},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d: expected %+v, got %+v", i, want[i], slots[i])
		}
	}

	tests := []struct {
		name      string
		teacherID string
		date      string
		wantCode  string
	}{
		{"malformed date", "t1", "02/01/2025", apperrors.CodeInvalidInput},
		{"missing date", "t1", "", apperrors.CodeInvalidInput},
		{"unknown teacher", "t9", "2025-01-02", apperrors.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Availability(context.Background(), tt.teacherID, tt.date)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestAvailability_LookupFailure(t *testing.T) {
	svc := NewCatalogService(&mockAccounts{
		getTeacherFunc: func(ctx context.Context, id string) (*model.Teacher, error) {
			return alice(), nil
		},
	}, &mockBookedSlots{
		bookedTimesFunc: func(ctx context.Context, teacherID, date string) ([]string, error) {
			return nil, errors.New("socket closed")
		},
	}, testConfig())

	if _, err := svc.Availability(context.Background(), "t1", "2025-01-02"); !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected INTERNAL_ERROR, got %v", err)
	}
}
