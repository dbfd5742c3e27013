// internal/model/channel.go
package model

import "time"

// Supported channel types. The catalog is seeded once and never mutated.
const (
	ChannelTypeX         = "x"
	ChannelTypeInstagram = "instagram"
	ChannelTypeLinkedIn  = "linkedin"
	ChannelTypeTikTok    = "tiktok"
	ChannelTypeFacebook  = "facebook"
	ChannelTypeYouTube   = "youtube"
)

type Channel struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Type      string     `db:"type" json:"type"`
	IconKey   string     `db:"icon_key" json:"iconKey"`
	Config    JSONMap    `db:"config" json:"config"`
	Metadata  JSONMap    `db:"metadata" json:"metadata"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

type UserChannel struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	ChannelID   string     `db:"channel_id" json:"channelId"`
	AccountID   *string    `db:"account_id" json:"accountId"`
	IconKey     string     `db:"icon_key" json:"iconKey"`
	Credentials JSONMap    `db:"credentials" json:"credentials"`
	Settings    JSONMap    `db:"settings" json:"settings"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// ConnectedChannel is the joined row returned by GET /api/user-channels:
// the catalog channel fields plus the user's connection details.
type ConnectedChannel struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	IconKey       string     `json:"iconKey"`
	Config        JSONMap    `json:"config"`
	Metadata      JSONMap    `json:"metadata"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	UserChannelID string     `json:"userChannelId"`
	AccountID     *string    `json:"accountId"`
	Credentials   JSONMap    `json:"credentials"`
	Settings      JSONMap    `json:"settings"`
	IsActive      bool       `json:"isActive"`
}
