package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/event-planner-api/internal/models"
	"github.com/noah-isme/event-planner-api/pkg/config"
	appErrors "github.com/noah-isme/event-planner-api/pkg/errors"
)

type identityRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
}

// IdentityService maps an authenticated principal onto a staff record.
type IdentityService struct {
	repo   identityRepository
	cfg    config.IdentityConfig
	logger *zap.Logger
}

// NewIdentityService constructs the resolver.
func NewIdentityService(repo identityRepository, cfg config.IdentityConfig, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{repo: repo, cfg: cfg, logger: logger}
}

// Resolve looks up principal in the directory. A principal without a record resolves to the
// transient fallback planner when the fallback is enabled.
func (s *IdentityService) Resolve(ctx context.Context, principal string) (*models.Staff, error) {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing principal")
	}

	staff, err := s.repo.FindByEmail(ctx, principal)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve identity")
		}
		if !s.cfg.FallbackEnabled {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no staff record for principal")
		}
		s.logger.Debug("resolved principal to fallback identity", zap.String("principal", principal))
		return s.Fallback(principal), nil
	}

	if !staff.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}
	return staff, nil
}

// Fallback builds the transient placeholder planner for principal. It is never stored.
func (s *IdentityService) Fallback(principal string) *models.Staff {
	return &models.Staff{
		ID:        s.cfg.FallbackID,
		Email:     strings.ToLower(strings.TrimSpace(principal)),
		Name:      s.cfg.FallbackName,
		Role:      models.RolePlanner,
		Active:    true,
		Transient: true,
	}
}
