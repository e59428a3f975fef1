package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// AccessLogEntry is one row of the append-only API audit trail. There
// is no uniqueness constraint; writes are best-effort.
type AccessLogEntry struct {
	bun.BaseModel `bun:"table:log,alias:l"`

	ID       int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID   int64     `bun:"user_id,notnull" json:"user_id"`
	Resource string    `bun:"resource,default:'ipdata'" json:"resource"`
	LogDate  time.Time `bun:"log_date,nullzero" json:"log_date"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

var _ bun.BeforeInsertHook = (*AccessLogEntry)(nil)

func (e *AccessLogEntry) BeforeInsert(ctx context.Context, query *bun.InsertQuery) error {
	if e.LogDate.IsZero() {
		e.LogDate = time.Now()
	}
	return nil
}
