package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	NotificationLevelInfo    = "info"
	NotificationLevelSuccess = "success"
	NotificationLevelError   = "error"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Level     string    `bun:",nullzero" json:"level"`
	Title     string    `bun:",nullzero" json:"title"`
	Message   string    `bun:",notnull" json:"message"`
}
