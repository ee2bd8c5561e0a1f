package seed

import (
	"context"
	"errors"
	"testing"

	"tutorbook/pkg/config"
	"tutorbook/pkg/logger"
	"tutorbook/pkg/model"
)

type mockTeacherStore struct {
	count   int64
	created []*model.Teacher
}

func (m *mockTeacherStore) Count(ctx context.Context) (int64, error) {
	return m.count, nil
}

func (m *mockTeacherStore) CreateMany(ctx context.Context, teachers []*model.Teacher) error {
	m.created = append(m.created, teachers...)
	return nil
}

type mockAdminStore struct {
	admins []*model.Admin
	err    error
}

func (m *mockAdminStore) UpsertAdmin(ctx context.Context, admin *model.Admin) error {
	if m.err != nil {
		return m.err
	}
	m.admins = append(m.admins, admin)
	return nil
}

type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func newConfig(seed bool, password string) *config.Config {
	return &config.Config{
		Log:           logger.Discard(),
		SeedTeachers:  seed,
		AdminEmail:    "admin@example.com",
		AdminName:     "Admin",
		AdminPassword: password,
	}
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	teachers := &mockTeacherStore{}
	admins := &mockAdminStore{}

	if err := NewSeeder(teachers, admins, prefixHasher{}, newConfig(true, "s3cret")).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(teachers.created) != 3 {
		t.Fatalf("expected 3 teachers, got %d", len(teachers.created))
	}
	alice := teachers.created[0]
	if alice.Name != "Alice Johnson" || alice.Price != 25 || len(alice.Slots) != 4 {
		t.Errorf("unexpected first teacher: %+v", alice)
	}
	if alice.ImageURL != "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=600&q=80" {
		t.Errorf("unexpected image url %q", alice.ImageURL)
	}

	if len(admins.admins) != 1 || admins.admins[0].PasswordHash != "hashed:s3cret" {
		t.Errorf("expected hashed admin, got %+v", admins.admins)
	}
}

func TestRun_SkipsWhenPopulatedOrDisabled(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		seed  bool
	}{
		{"populated", 2, true},
		{"disabled", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teachers := &mockTeacherStore{count: tt.count}
			if err := NewSeeder(teachers, &mockAdminStore{}, prefixHasher{}, newConfig(tt.seed, "")).Run(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(teachers.created) != 0 {
				t.Errorf("expected no teachers seeded, got %d", len(teachers.created))
			}
		})
	}
}

func TestRun_AdminWithoutPasswordIsSkipped(t *testing.T) {
	admins := &mockAdminStore{}
	if err := NewSeeder(&mockTeacherStore{count: 1}, admins, prefixHasher{}, newConfig(true, "")).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admins.admins) != 0 {
		t.Errorf("expected admin upsert to be skipped")
	}
}

func TestRun_AdminFailure(t *testing.T) {
	admins := &mockAdminStore{err: errors.New("boom")}
	err := NewSeeder(&mockTeacherStore{count: 1}, admins, prefixHasher{}, newConfig(true, "pw")).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}
