// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	IsDefault   bool       `db:"is_default" json:"isDefault"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
