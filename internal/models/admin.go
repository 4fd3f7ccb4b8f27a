package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AdminUser is an authentication principal. Password holds the bcrypt hash
// and is never serialized.
type AdminUser struct {
	bun.BaseModel `bun:"table:admin_users"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Username    string    `bun:"username,notnull,unique" json:"username"`
	Password    string    `bun:"password,notnull" json:"-"`
	DisplayName string    `bun:"display_name,nullzero" json:"displayName"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

type AdminInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
