package services

import (
	"context"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/uptrace/bun"
)

// AccessLogService appends audit rows after successful lookups.
type AccessLogService struct {
	db bun.IDB
}

func NewAccessLogService(db bun.IDB) *AccessLogService {
	return &AccessLogService{db: db}
}

// Record appends one (user, resource) entry. Callers treat the error
// as advisory: a failed audit write never fails the lookup.
func (s *AccessLogService) Record(ctx context.Context, userID int64, resource string) error {
	entry := &models.AccessLogEntry{
		UserID:   userID,
		Resource: resource,
	}
	_, err := s.db.NewInsert().Model(entry).Exec(ctx)
	return err
}
