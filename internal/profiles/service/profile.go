package service

import (
	"context"
	"net/url"
	"unicode/utf8"

	accounts "tutorbook/internal/accounts/service"
	"tutorbook/pkg/config"
	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/model"
)

const placeholderAvatar = "https://via.placeholder.com/64?text="

// BookingReader is the read side of the booking ledger needed for stats.
type BookingReader interface {
	FindByStudent(ctx context.Context, studentID string) ([]*model.Booking, error)
	FindByTeacher(ctx context.Context, teacherID string) ([]*model.Booking, error)
	CountByStudent(ctx context.Context) (map[string]int, error)
	CountByTeacher(ctx context.Context) (map[string]int, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, principal *model.Principal) (*model.ProfileSummary, error)
	ListUsers(ctx context.Context, principal *model.Principal) ([]*model.UserSummary, error)
}

type profileService struct {
	accounts accounts.AccountService
	bookings BookingReader
	cfg      *config.Config
}

func NewProfileService(accounts accounts.AccountService, bookings BookingReader, cfg *config.Config) ProfileService {
	return &profileService{
		accounts: accounts,
		bookings: bookings,
		cfg:      cfg,
	}
}

func (s *profileService) GetProfile(ctx context.Context, principal *model.Principal) (*model.ProfileSummary, error) {
	if principal == nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	switch principal.Role {
	case model.RoleStudent:
		return s.studentProfile(ctx, principal.ID)
	case model.RoleTeacher:
		return s.teacherProfile(ctx, principal.ID)
	case model.RoleAdmin:
		admin, err := s.accounts.GetAdmin(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return &model.ProfileSummary{
			ID:        admin.ID,
			Role:      model.RoleAdmin,
			Name:      admin.Name,
			Email:     admin.Email,
			AvatarURL: avatar(admin.Name, "A"),
		}, nil
	}
	return nil, apperrors.InvalidInput("Unknown account role")
}

// studentProfile prices every booking at the teacher's current price, so
// total spend moves when a teacher changes their rate.
func (s *profileService) studentProfile(ctx context.Context, id string) (*model.ProfileSummary, error) {
	student, err := s.accounts.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByStudent(ctx, student.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to load student bookings", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to load profile", err)
	}

	teacherIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		teacherIDs = append(teacherIDs, b.TeacherID)
	}
	teachers, err := s.accounts.FindTeachersByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}

	var spend float64
	for _, b := range bookings {
		if t, ok := teachers[b.TeacherID]; ok {
			spend += t.Price
		}
	}

	return &model.ProfileSummary{
		ID:        student.ID,
		Role:      model.RoleStudent,
		Name:      student.Name,
		Email:     student.Email,
		AvatarURL: avatar(student.Name, "S"),
		Stats: model.ProfileStats{
			BookingsCount: len(bookings),
			TotalSpend:    &spend,
		},
	}, nil
}

func (s *profileService) teacherProfile(ctx context.Context, id string) (*model.ProfileSummary, error) {
	teacher, err := s.accounts.GetTeacher(ctx, id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByTeacher(ctx, teacher.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to load teacher bookings", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to load profile", err)
	}

	price := teacher.Price
	earnings := price * float64(len(bookings))
	avatarURL := teacher.ImageURL
	if avatarURL == "" {
		avatarURL = avatar(teacher.Name, "T")
	}

	return &model.ProfileSummary{
		ID:        teacher.ID,
		Role:      model.RoleTeacher,
		Name:      teacher.Name,
		Email:     teacher.Email,
		AvatarURL: avatarURL,
		Subject:   teacher.Subject,
		Price:     &price,
		Stats: model.ProfileStats{
			BookingsCount: len(bookings),
			TotalEarnings: &earnings,
		},
	}, nil
}

// ListUsers returns every student followed by every teacher, each with the
// number of bookings referencing it.
func (s *profileService) ListUsers(ctx context.Context, principal *model.Principal) ([]*model.UserSummary, error) {
	if principal == nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if principal.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("Admin access required")
	}

	students, err := s.accounts.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.accounts.ListTeachers(ctx, "")
	if err != nil {
		return nil, err
	}

	studentCounts, err := s.bookings.CountByStudent(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by student", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	teacherCounts, err := s.bookings.CountByTeacher(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by teacher", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	users := make([]*model.UserSummary, 0, len(students)+len(teachers))
	for _, st := range students {
		users = append(users, &model.UserSummary{
			ID:            st.ID,
			Role:          model.RoleStudent,
			Name:          st.Name,
			Email:         st.Email,
			BookingsCount: studentCounts[st.ID],
			CreatedAt:     st.CreatedAt,
		})
	}
	for _, t := range teachers {
		price := t.Price
		users = append(users, &model.UserSummary{
			ID:            t.ID,
			Role:          model.RoleTeacher,
			Name:          t.Name,
			Email:         t.Email,
			Subject:       t.Subject,
			Price:         &price,
			ImageURL:      t.ImageURL,
			BookingsCount: teacherCounts[t.ID],
			CreatedAt:     t.CreatedAt,
		})
	}
	return users, nil
}

func avatar(name, fallback string) string {
	initial := fallback
	if r, size := utf8.DecodeRuneInString(name); size > 0 && r != utf8.RuneError {
		initial = string(r)
	}
	return placeholderAvatar + url.QueryEscape(initial)
}
