package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/event-planner-api/internal/dto"
	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/internal/repository"
	"github.com/noah-isme/event-planner-api/pkg/config"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

type staffRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	List(ctx context.Context, role *models.StaffRole) ([]models.Staff, error)
	Create(ctx context.Context, staff *models.Staff) error
	ToggleActive(ctx context.Context, id string) (*models.Staff, error)
}

type eventCounter interface {
	Count(ctx context.Context, filter models.EventFilter) (int, error)
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// StaffService manages the staff directory.
type StaffService struct {
	repo      staffRepository
	events    eventCounter
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs the service. audit may be nil.
func NewStaffService(repo staffRepository, events eventCounter, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerValidations(validate)
	return &StaffService{repo: repo, events: events, audit: audit, validator: validate, logger: logger}
}

// ByEmail returns the staff member registered under email.
func (s *StaffService) ByEmail(ctx context.Context, email string) (*models.Staff, error) {
	staff, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	return staff, nil
}

// Get returns a staff member by id.
func (s *StaffService) Get(ctx context.Context, id string) (*models.Staff, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	return staff, nil
}

// List returns the whole directory.
func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// ListByRole returns staff holding role.
func (s *StaffService) ListByRole(ctx context.Context, role models.StaffRole) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx, &role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// Create registers a new staff member on behalf of actor.
func (s *StaffService) Create(ctx context.Context, actor *models.Staff, req dto.CreateStaffRequest) (*models.Staff, error) {
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	if actor == nil || actor.Transient {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "a registered account is required to add staff")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	staff := &models.Staff{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.StaffRole(req.Role),
		Active:       true,
	}
	if err := s.persist(ctx, staff); err != nil {
		return nil, err
	}

	s.record(ctx, actor, models.AuditActionStaffCreate, staff.ID, map[string]interface{}{"email": staff.Email, "role": staff.Role})
	return staff, nil
}

// ToggleActive flips the active flag of staff id.
func (s *StaffService) ToggleActive(ctx context.Context, actor *models.Staff, id string) (*models.Staff, error) {
	staff, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff")
	}
	s.record(ctx, actor, models.AuditActionStaffToggle, staff.ID, map[string]interface{}{"active": staff.Active})
	return staff, nil
}

// Details returns a staff member with the number of events they own.
func (s *StaffService) Details(ctx context.Context, id string) (*dto.StaffDetails, error) {
	staff, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	assigned, err := s.events.Count(ctx, models.EventFilter{PlannerID: staff.ID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count events")
	}
	return &dto.StaffDetails{Staff: *staff, AssignedEvents: assigned}, nil
}

// EnsureSeed registers every configured account whose email is not yet in the directory.
func (s *StaffService) EnsureSeed(ctx context.Context, seeds []config.StaffSeed) (int, error) {
	created := 0
	for _, seed := range seeds {
		role := models.StaffRole(seed.Role)
		if !role.Valid() {
			return created, appErrors.Clone(appErrors.ErrValidation, "unknown role in staff seed: "+seed.Role)
		}
		_, err := s.repo.FindByEmail(ctx, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return created, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		if err := s.persist(ctx, &models.Staff{
			Email:        seed.Email,
			Name:         seed.Name,
			PasswordHash: string(hash),
			Role:         role,
			Active:       true,
		}); err != nil {
			return created, err
		}
		created++
		s.logger.Info("seeded staff account", zap.String("email", seed.Email), zap.String("role", seed.Role))
	}
	return created, nil
}

func (s *StaffService) persist(ctx context.Context, staff *models.Staff) error {
	if staff.Transient {
		return appErrors.Clone(appErrors.ErrForbidden, "transient identities cannot be stored")
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Clone(appErrors.ErrConflict, "email already registered")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff")
	}
	return nil
}

func (s *StaffService) record(ctx context.Context, actor *models.Staff, action, staffID string, values map[string]interface{}) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(values)
	entry := &models.AuditLog{
		Action:     action,
		Resource:   models.AuditResourceStaff,
		ResourceID: &staffID,
		NewValues:  payload,
	}
	if actor != nil && !actor.Transient {
		entry.ActorID = &actor.ID
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record staff audit log", zap.String("action", action), zap.Error(err))
	}
}
