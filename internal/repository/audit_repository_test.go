package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-planner-api/internal/models"
)

func TestAuditCreateAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	resourceID := "e1"
	entry := &models.AuditLog{
		Action:     models.AuditActionEventApprove,
		Resource:   models.AuditResourceEvent,
		ResourceID: &resourceID,
		NewValues:  []byte(`{"status":"PUBLISHED"}`),
	}
	require.NoError(t, repo.CreateAuditLog(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditCreateWrapsDriverError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("disk full"))

	err := repo.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionEventExport, Resource: "events"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create audit log")
	assert.NoError(t, mock.ExpectationsWereMet())
}
