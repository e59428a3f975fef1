package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             int64      `bun:"id,pk,autoincrement" json:"id"`
	FirstName      string     `bun:"first_name,notnull" json:"first_name"`
	LastName       string     `bun:"last_name,notnull" json:"last_name"`
	Username       string     `bun:"username,notnull,unique" json:"username"`
	PasswordHash   string     `bun:"password,notnull" json:"-"`
	Active         bool       `bun:"active,default:true" json:"active"`
	Email          *string    `bun:"email,unique" json:"email,omitempty"`
	LastLogin      *time.Time `bun:"last_login" json:"last_login,omitempty"`
	LoginCount     int        `bun:"login_count,default:0" json:"-"`
	FailLoginCount int        `bun:"fail_login_count,default:0" json:"-"`
	CreatedOn      time.Time  `bun:"created_on,nullzero,default:now()" json:"created_on"`
	ChangedOn      time.Time  `bun:"changed_on,nullzero,default:now()" json:"changed_on"`
	APIKey         string     `bun:"api_key" json:"-"`

	// Current bearer token; overwritten wholesale by the refresh sweep
	// (single token per user, last write wins).
	Token           *string    `bun:"token,unique" json:"-"`
	TokenLastUpdate *time.Time `bun:"token_last_update" json:"-"`
}

// UserResponse is the safe representation for API responses.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Active    bool   `json:"active"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Active:    u.Active,
	}
}

var _ bun.BeforeInsertHook = (*User)(nil)

func (u *User) BeforeInsert(ctx context.Context, query *bun.InsertQuery) error {
	u.CreatedOn = time.Now()
	u.ChangedOn = time.Now()
	return nil
}

var _ bun.BeforeUpdateHook = (*User)(nil)

func (u *User) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	u.ChangedOn = time.Now()
	return nil
}
