package service

import (
	"context"
	"errors"
	"strings"

	accountserrors "tutorbook/internal/accounts/errors"
	"tutorbook/internal/accounts/repository"
	"tutorbook/internal/accounts/validator"
	"tutorbook/pkg/config"
	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/model"
	"tutorbook/pkg/sanitizer"
	"tutorbook/pkg/validation"
)

// AccountService owns the Students, Teachers and Admins collections.
type AccountService interface {
	CreateStudent(ctx context.Context, student *model.Student) error
	CreateTeacher(ctx context.Context, teacher *model.Teacher) error
	EnsureStudent(ctx context.Context, req *model.StudentRequest) (*model.Student, error)
	UpsertAdmin(ctx context.Context, admin *model.Admin) error

	// FindByEmail and FindByID return nil without error when the account
	// does not exist.
	FindByEmail(ctx context.Context, role model.Role, email string) (*model.AccountSummary, error)
	FindByID(ctx context.Context, role model.Role, id string) (*model.AccountSummary, error)
	FindCredentials(ctx context.Context, role model.Role, email string) (*model.Credentials, error)

	GetStudent(ctx context.Context, id string) (*model.Student, error)
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)

	ListStudents(ctx context.Context) ([]*model.Student, error)
	ListTeachers(ctx context.Context, query string) ([]*model.Teacher, error)
	FindStudentsByIDs(ctx context.Context, ids []string) (map[string]*model.Student, error)
	FindTeachersByIDs(ctx context.Context, ids []string) (map[string]*model.Teacher, error)
}

type accountService struct {
	students  repository.StudentRepository
	teachers  repository.TeacherRepository
	admins    repository.AdminRepository
	validator *validator.AccountValidator
	cfg       *config.Config
}

func NewAccountService(
	students repository.StudentRepository,
	teachers repository.TeacherRepository,
	admins repository.AdminRepository,
	validator *validator.AccountValidator,
	cfg *config.Config,
) AccountService {
	return &accountService{
		students:  students,
		teachers:  teachers,
		admins:    admins,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *accountService) CreateStudent(ctx context.Context, student *model.Student) error {
	student.Name = sanitizer.SanitizeName(student.Name)
	student.Email = sanitizer.SanitizeEmail(student.Email)

	if err := s.validator.ValidateStudent(student); err != nil {
		s.cfg.Log.Warn("Student validation failed", "email", student.Email, "error", err)
		return validation.ToAppError("Student validation failed", err)
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, accountserrors.ErrDuplicate) {
			return apperrors.Conflict("A student with this email already exists")
		}
		s.cfg.Log.Error("Failed to create student", "email", student.Email, "error", err)
		return apperrors.Internal("Failed to create student", err)
	}

	s.cfg.Log.Info("Student created successfully", "id", student.ID, "email", student.Email)
	return nil
}

func (s *accountService) CreateTeacher(ctx context.Context, teacher *model.Teacher) error {
	teacher.Name = sanitizer.SanitizeName(teacher.Name)
	teacher.Email = sanitizer.SanitizeEmail(teacher.Email)
	teacher.Subject = sanitizer.SanitizeName(teacher.Subject)
	teacher.Bio = sanitizer.SanitizeText(teacher.Bio)
	teacher.ImageURL = sanitizer.SanitizeURL(teacher.ImageURL)
	teacher.Slots = sanitizer.SanitizeSlots(teacher.Slots)

	if err := s.validator.ValidateTeacher(teacher); err != nil {
		s.cfg.Log.Warn("Teacher validation failed", "email", teacher.Email, "error", err)
		return validation.ToAppError("Teacher validation failed", err)
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		if errors.Is(err, accountserrors.ErrDuplicate) {
			return apperrors.Conflict("A teacher with this email already exists")
		}
		s.cfg.Log.Error("Failed to create teacher", "email", teacher.Email, "error", err)
		return apperrors.Internal("Failed to create teacher", err)
	}

	s.cfg.Log.Info("Teacher created successfully",
		"id", teacher.ID,
		"subject", teacher.Subject,
		"slots", len(teacher.Slots),
	)
	return nil
}

// EnsureStudent returns the student registered under the email, creating a
// credential-less one when none exists.
func (s *accountService) EnsureStudent(ctx context.Context, req *model.StudentRequest) (*model.Student, error) {
	email := sanitizer.SanitizeEmail(req.Email)
	if email != "" {
		existing, err := s.students.FindByEmail(ctx, email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, accountserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to look up student", "email", email, "error", err)
			return nil, apperrors.Internal("Failed to look up student", err)
		}
	}

	student := &model.Student{Name: req.Name, Email: email}
	err := s.CreateStudent(ctx, student)
	if apperrors.HasCode(err, apperrors.CodeConflict) {
		// Lost a race with a concurrent insert of the same email.
		existing, findErr := s.students.FindByEmail(ctx, email)
		if findErr == nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *accountService) UpsertAdmin(ctx context.Context, admin *model.Admin) error {
	admin.Name = sanitizer.SanitizeName(admin.Name)
	admin.Email = sanitizer.SanitizeEmail(admin.Email)

	if admin.Email == "" || admin.PasswordHash == "" {
		return apperrors.InvalidInput("Admin email and password are required")
	}

	if err := s.admins.Upsert(ctx, admin); err != nil {
		s.cfg.Log.Error("Failed to upsert admin", "email", admin.Email, "error", err)
		return apperrors.Internal("Failed to save admin account", err)
	}

	s.cfg.Log.Info("Admin account ready", "id", admin.ID, "email", admin.Email)
	return nil
}

func (s *accountService) FindByEmail(ctx context.Context, role model.Role, email string) (*model.AccountSummary, error) {
	creds, err := s.FindCredentials(ctx, role, email)
	if err != nil || creds == nil {
		return nil, err
	}
	return &model.AccountSummary{ID: creds.ID, Role: role, Name: creds.Name, Email: creds.Email}, nil
}

func (s *accountService) FindByID(ctx context.Context, role model.Role, id string) (*model.AccountSummary, error) {
	var (
		summary *model.AccountSummary
		err     error
	)

	switch role {
	case model.RoleStudent:
		var st *model.Student
		if st, err = s.students.FindByID(ctx, id); err == nil {
			summary = &model.AccountSummary{ID: st.ID, Role: role, Name: st.Name, Email: st.Email}
		}
	case model.RoleTeacher:
		var t *model.Teacher
		if t, err = s.teachers.FindByID(ctx, id); err == nil {
			summary = &model.AccountSummary{ID: t.ID, Role: role, Name: t.Name, Email: t.Email}
		}
	case model.RoleAdmin:
		var a *model.Admin
		if a, err = s.admins.FindByID(ctx, id); err == nil {
			summary = &model.AccountSummary{ID: a.ID, Role: role, Name: a.Name, Email: a.Email}
		}
	default:
		return nil, apperrors.InvalidInput("Unknown account role")
	}

	if errors.Is(err, accountserrors.ErrNotFound) || errors.Is(err, accountserrors.ErrInvalidID) {
		return nil, nil
	}
	if err != nil {
		s.cfg.Log.Error("Failed to find account", "role", role, "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve account", err)
	}
	return summary, nil
}

func (s *accountService) FindCredentials(ctx context.Context, role model.Role, email string) (*model.Credentials, error) {
	email = sanitizer.SanitizeEmail(email)
	if email == "" {
		return nil, nil
	}

	var (
		creds *model.Credentials
		err   error
	)
	switch role {
	case model.RoleStudent:
		creds, err = s.students.FindCredentials(ctx, email)
	case model.RoleTeacher:
		creds, err = s.teachers.FindCredentials(ctx, email)
	case model.RoleAdmin:
		creds, err = s.admins.FindCredentials(ctx, email)
	default:
		return nil, apperrors.InvalidInput("Unknown account role")
	}

	if errors.Is(err, accountserrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.cfg.Log.Error("Failed to load credentials", "role", role, "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve account", err)
	}
	return creds, nil
}

func (s *accountService) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError("Student", id, err)
	}
	return student, nil
}

func (s *accountService) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError("Teacher", id, err)
	}
	return teacher, nil
}

func (s *accountService) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError("Admin", id, err)
	}
	return admin, nil
}

func (s *accountService) ListStudents(ctx context.Context) ([]*model.Student, error) {
	students, err := s.students.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list students", "error", err)
		return nil, apperrors.Internal("Failed to retrieve students", err)
	}
	return students, nil
}

func (s *accountService) ListTeachers(ctx context.Context, query string) ([]*model.Teacher, error) {
	teachers, err := s.teachers.Search(ctx, sanitizer.SanitizeText(query))
	if err != nil {
		s.cfg.Log.Error("Failed to list teachers", "query", query, "error", err)
		return nil, apperrors.Internal("Failed to retrieve teachers", err)
	}
	return teachers, nil
}

func (s *accountService) FindStudentsByIDs(ctx context.Context, ids []string) (map[string]*model.Student, error) {
	students, err := s.students.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to load students", "count", len(ids), "error", err)
		return nil, apperrors.Internal("Failed to retrieve students", err)
	}

	byID := make(map[string]*model.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}
	return byID, nil
}

func (s *accountService) FindTeachersByIDs(ctx context.Context, ids []string) (map[string]*model.Teacher, error) {
	teachers, err := s.teachers.FindByIDs(ctx, ids)
	if err != nil {
		s.cfg.Log.Error("Failed to load teachers", "count", len(ids), "error", err)
		return nil, apperrors.Internal("Failed to retrieve teachers", err)
	}

	byID := make(map[string]*model.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}
	return byID, nil
}

func (s *accountService) lookupError(resource, id string, err error) error {
	if errors.Is(err, accountserrors.ErrNotFound) {
		return apperrors.NotFoundWithID(resource, id)
	}
	if errors.Is(err, accountserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid " + strings.ToLower(resource) + " ID format")
	}
	s.cfg.Log.Error("Failed to get account by ID", "resource", resource, "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve "+strings.ToLower(resource), err)
}
