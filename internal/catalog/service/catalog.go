package service

import (
	"context"
	"time"

	accounts "tutorbook/internal/accounts/service"
	"tutorbook/pkg/config"
	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/model"
)

const dateLayout = "2006-01-02"

// BookedSlots reports the slot labels already taken for a teacher on a date.
type BookedSlots interface {
	BookedTimes(ctx context.Context, teacherID, date string) ([]string, error)
}

// CatalogService is the read-only view of teachers offered to clients.
type CatalogService interface {
	ListTeachers(ctx context.Context, query string) ([]*model.Teacher, error)
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
	Availability(ctx context.Context, teacherID, date string) ([]model.SlotAvailability, error)
}

type catalogService struct {
	accounts accounts.AccountService
	booked   BookedSlots
	cfg      *config.Config
}

func NewCatalogService(accounts accounts.AccountService, booked BookedSlots, cfg *config.Config) CatalogService {
	return &catalogService{
		accounts: accounts,
		booked:   booked,
		cfg:      cfg,
	}
}

func (s *catalogService) ListTeachers(ctx context.Context, query string) ([]*model.Teacher, error) {
	return s.accounts.ListTeachers(ctx, query)
}

func (s *catalogService) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Teacher ID cannot be empty")
	}
	return s.accounts.GetTeacher(ctx, id)
}

// Availability lists every slot of the teacher in slot order, flagging the
// ones already booked on date.
func (s *catalogService) Availability(ctx context.Context, teacherID, date string) ([]model.SlotAvailability, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperrors.InvalidInput("date must be a calendar date in YYYY-MM-DD format")
	}

	teacher, err := s.GetTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	taken, err := s.booked.BookedTimes(ctx, teacher.ID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load booked slots",
			"teacher_id", teacher.ID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		takenSet[t] = struct{}{}
	}

	slots := make([]model.SlotAvailability, 0, len(teacher.Slots))
	for _, label := range teacher.Slots {
		_, booked := takenSet[label]
		slots = append(slots, model.SlotAvailability{Time: label, Booked: booked})
	}
	return slots, nil
}
