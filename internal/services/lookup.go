package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/uptrace/bun"
)

// LookupService runs the indexed record queries. A miss is (nil, nil),
// never an error; errors always mean the storage layer failed.
type LookupService struct {
	db bun.IDB
}

func NewLookupService(db bun.IDB) *LookupService {
	return &LookupService{db: db}
}

// FindByIP returns the first record stored for the exact IP string.
// Multiple records may share an IP; storage order breaks the tie.
func (s *LookupService) FindByIP(ctx context.Context, ip string) (*models.Record, error) {
	rec := new(models.Record)
	err := s.db.NewSelect().
		Model(rec).
		Where("d.ip = ?", ip).
		Order("d.id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByPhone returns the first record whose home or cell phone equals
// the 10-digit national number.
func (s *LookupService) FindByPhone(ctx context.Context, national string) (*models.Record, error) {
	rec := new(models.Record)
	err := s.db.NewSelect().
		Model(rec).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("d.cell_phone = ?", national).
				WhereOr("d.home_phone = ?", national)
		}).
		Order("d.id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByCoordinates returns every record at exactly (lat, lng). Unlike
// the other lookups this is a full set, not a first match.
func (s *LookupService) FindByCoordinates(ctx context.Context, lat, lng float64) ([]models.Record, error) {
	var recs []models.Record
	err := s.db.NewSelect().
		Model(&recs).
		Where("d.latitude = ?", lat).
		Where("d.longitude = ?", lng).
		Order("d.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByName returns the first record matching the exact first/last
// name pair.
func (s *LookupService) FindByName(ctx context.Context, first, last string) (*models.Record, error) {
	rec := new(models.Record)
	err := s.db.NewSelect().
		Model(rec).
		Where("d.first_name = ?", first).
		Where("d.last_name = ?", last).
		Order("d.id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
