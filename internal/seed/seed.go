package seed

import (
	"context"
	"fmt"

	"tutorbook/pkg/config"
	"tutorbook/pkg/model"
)

const imageURLFormat = "https://images.unsplash.com/photo-%s?w=600&q=80"

// TeacherStore is the slice of the teacher repository seeding needs.
type TeacherStore interface {
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, teachers []*model.Teacher) error
}

type AdminStore interface {
	UpsertAdmin(ctx context.Context, admin *model.Admin) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Seeder struct {
	teachers TeacherStore
	admins   AdminStore
	hasher   PasswordHasher
	cfg      *config.Config
}

func NewSeeder(teachers TeacherStore, admins AdminStore, hasher PasswordHasher, cfg *config.Config) *Seeder {
	return &Seeder{
		teachers: teachers,
		admins:   admins,
		hasher:   hasher,
		cfg:      cfg,
	}
}

// DefaultTeachers returns the starter catalog inserted into an empty store.
func DefaultTeachers() []*model.Teacher {
	return []*model.Teacher{
		{
			Name:     "Alice Johnson",
			Subject:  "Mathematics",
			Bio:      "Algebra, calculus and exam preparation for high school and university students.",
			ImageURL: fmt.Sprintf(imageURLFormat, "1544005313-94ddf0286df2"),
			Price:    25,
			Slots:    []string{"09:00", "10:00", "14:00", "16:00"},
		},
		{
			Name:     "Brian Lee",
			Subject:  "Physics",
			Bio:      "Mechanics and electromagnetism explained through worked problems.",
			ImageURL: fmt.Sprintf(imageURLFormat, "1506794778202-cad84cf45f1d"),
			Price:    30,
			Slots:    []string{"11:00", "13:00", "15:00"},
		},
		{
			Name:     "Cynthia Gomez",
			Subject:  "Chemistry",
			Bio:      "Organic and general chemistry with a focus on lab intuition.",
			ImageURL: fmt.Sprintf(imageURLFormat, "1527980965255-d3b416303d12"),
			Price:    28,
			Slots:    []string{"10:00", "12:00", "14:00"},
		},
	}
}

// Run seeds teachers (when enabled and the store is empty) and the admin account.
func (s *Seeder) Run(ctx context.Context) error {
	if s.cfg.SeedTeachers {
		if err := s.seedTeachers(ctx); err != nil {
			return err
		}
	}
	return s.seedAdmin(ctx)
}

func (s *Seeder) seedTeachers(ctx context.Context) error {
	count, err := s.teachers.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count teachers: %w", err)
	}
	if count > 0 {
		s.cfg.Log.Debug("Teachers already present, skipping seed", "count", count)
		return nil
	}

	teachers := DefaultTeachers()
	if err := s.teachers.CreateMany(ctx, teachers); err != nil {
		return fmt.Errorf("failed to seed teachers: %w", err)
	}
	s.cfg.Log.Info("Seeded teachers", "count", len(teachers))
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.cfg.AdminPassword == "" {
		s.cfg.Log.Warn("ADMIN_PASSWORD not set, admin login disabled", "email", s.cfg.AdminEmail)
		return nil
	}

	hash, err := s.hasher.Hash(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.Admin{
		Name:         s.cfg.AdminName,
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
	}
	if err := s.admins.UpsertAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}
