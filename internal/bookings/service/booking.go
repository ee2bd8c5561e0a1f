package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "tutorbook/internal/bookings/errors"
	"tutorbook/internal/bookings/repository"
	"tutorbook/internal/bookings/validator"
	"tutorbook/internal/events"
	"tutorbook/pkg/config"
	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/metrics"
	"tutorbook/pkg/model"
	"tutorbook/pkg/sanitizer"
	"tutorbook/pkg/validation"

	"go.mongodb.org/mongo-driver/mongo"
)

const unknownAccount = "Unknown"

// TeacherLookup resolves a bookable teacher. Satisfied by the catalog.
type TeacherLookup interface {
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
}

// AccountLookup batch-loads the accounts referenced by bookings.
type AccountLookup interface {
	FindTeachersByIDs(ctx context.Context, ids []string) (map[string]*model.Teacher, error)
	FindStudentsByIDs(ctx context.Context, ids []string) (map[string]*model.Student, error)
}

type BookingService interface {
	Create(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (*model.Booking, error)
	Delete(ctx context.Context, principal *model.Principal, id string) error
	ListForAccount(ctx context.Context, principal *model.Principal) ([]*model.BookingDetails, error)
	ListAll(ctx context.Context, principal *model.Principal) ([]*model.AdminBooking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	teachers  TeacherLookup
	accounts  AccountLookup
	publisher events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	teachers TeacherLookup,
	accounts AccountLookup,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		teachers:  teachers,
		accounts:  accounts,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, principal *model.Principal, req *model.CreateBookingRequest) (booking *model.Booking, err error) {
	defer func() { metrics.RecordBooking("create", metrics.Outcome(err)) }()

	if principal == nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if principal.Role != model.RoleStudent {
		return nil, apperrors.Forbidden("Only students can create bookings")
	}

	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, validation.ToAppError("Booking validation failed", err)
	}

	teacher, err := s.teachers.GetTeacher(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if !teacher.HasSlot(req.Time) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Time %q is not one of the teacher's slots", req.Time)).
			WithDetails(map[string]any{"slots": teacher.Slots})
	}

	booking = &model.Booking{
		StudentID: principal.ID,
		TeacherID: teacher.ID,
		Date:      req.Date,
		Time:      req.Time,
		Note:      req.Note,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			s.cfg.Log.Info("Booking slot already taken",
				"teacher_id", booking.TeacherID,
				"date", booking.Date,
				"time", booking.Time,
			)
			return nil, apperrors.Conflict("This slot is already booked")
		}
		s.cfg.Log.Error("Failed to create booking",
			"student_id", booking.StudentID,
			"teacher_id", booking.TeacherID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"student_id", booking.StudentID,
		"teacher_id", booking.TeacherID,
		"date", booking.Date,
		"time", booking.Time,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.BookingCreated, booking.ID, bookingPayload(booking, principal.ID))

	return booking, nil
}

// Delete removes a booking owned by the principal. Lookup, ownership check
// and removal share one transaction.
func (s *bookingService) Delete(ctx context.Context, principal *model.Principal, id string) (err error) {
	defer func() { metrics.RecordBooking("delete", metrics.Outcome(err)) }()

	if principal == nil {
		return apperrors.Unauthorized("Authentication required")
	}
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	var deleted *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		booking, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.mapLookupError(id, err)
		}
		if !ownsBooking(principal, booking) {
			return apperrors.Forbidden("You can only delete your own bookings")
		}

		if err := s.repo.Delete(sessCtx, id); err != nil {
			return s.mapLookupError(id, err)
		}
		deleted = booking
		return nil
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
			return apperrors.Internal("Failed to delete booking", err)
		}
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully",
		"id", id,
		"by", principal.ID,
		"role", principal.Role,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.BookingDeleted, id, bookingPayload(deleted, principal.ID))

	return nil
}

func (s *bookingService) ListForAccount(ctx context.Context, principal *model.Principal) ([]*model.BookingDetails, error) {
	if principal == nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	var (
		bookings []*model.Booking
		err      error
	)
	switch principal.Role {
	case model.RoleStudent:
		bookings, err = s.repo.FindByStudent(ctx, principal.ID)
	case model.RoleTeacher:
		bookings, err = s.repo.FindByTeacher(ctx, principal.ID)
	default:
		return nil, apperrors.Forbidden("Only students and teachers have bookings")
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings",
			"account_id", principal.ID,
			"role", principal.Role,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return s.withDetails(ctx, bookings)
}

func (s *bookingService) ListAll(ctx context.Context, principal *model.Principal) ([]*model.AdminBooking, error) {
	if principal == nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if principal.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("Admin access required")
	}

	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list all bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	details, err := s.withDetails(ctx, bookings)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]*model.AdminBooking, 0, len(details))
	for _, d := range details {
		out = append(out, &model.AdminBooking{
			BookingDetails: *d,
			Status:         DeriveStatus(d.Date, d.Time, now, s.cfg.Location),
		})
	}
	return out, nil
}

// withDetails attaches teacher and student summaries. Accounts that no longer
// exist are rendered as "Unknown".
func (s *bookingService) withDetails(ctx context.Context, bookings []*model.Booking) ([]*model.BookingDetails, error) {
	teacherIDs := make([]string, 0, len(bookings))
	studentIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		teacherIDs = append(teacherIDs, b.TeacherID)
		studentIDs = append(studentIDs, b.StudentID)
	}

	teachers, err := s.accounts.FindTeachersByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}
	students, err := s.accounts.FindStudentsByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*model.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		d := &model.BookingDetails{
			Booking: *b,
			Teacher: model.TeacherSummary{ID: b.TeacherID, Name: unknownAccount},
			Student: model.StudentSummary{ID: b.StudentID, Name: unknownAccount},
		}
		if t, ok := teachers[b.TeacherID]; ok {
			d.Teacher = model.TeacherSummary{
				ID:       t.ID,
				Name:     t.Name,
				Subject:  t.Subject,
				ImageURL: t.ImageURL,
				Price:    t.Price,
			}
		}
		if st, ok := students[b.StudentID]; ok {
			d.Student = model.StudentSummary{ID: st.ID, Name: st.Name, Email: st.Email}
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *bookingService) sanitize(req *model.CreateBookingRequest) {
	req.TeacherID = sanitizer.SanitizeText(req.TeacherID)
	req.Date = sanitizer.SanitizeText(req.Date)
	req.Time = sanitizer.SanitizeSlot(req.Time)
	req.Note = sanitizer.SanitizeText(req.Note)
}

func (s *bookingService) mapLookupError(id string, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return fmt.Errorf("failed to access booking %s: %w", id, err)
}

func ownsBooking(p *model.Principal, b *model.Booking) bool {
	switch p.Role {
	case model.RoleStudent:
		return b.StudentID == p.ID
	case model.RoleTeacher:
		return b.TeacherID == p.ID
	}
	return false
}

func bookingPayload(b *model.Booking, actorID string) events.BookingPayload {
	return events.BookingPayload{
		BookingID: b.ID,
		StudentID: b.StudentID,
		TeacherID: b.TeacherID,
		Date:      b.Date,
		Time:      b.Time,
		Note:      b.Note,
		ActorID:   actorID,
	}
}
