// internal/model/post.go
package model

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// MaxPostContentLength bounds post content, counted in runes.
const MaxPostContentLength = 5000

type Post struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"userId"`
	ChannelID        string     `db:"channel_id" json:"channelId"`
	CampaignID       *string    `db:"campaign_id" json:"campaignId"`
	Title            *string    `db:"title" json:"title"`
	Content          string     `db:"content" json:"content"`
	Status           string     `db:"status" json:"status"`
	PostType         string     `db:"post_type" json:"postType"`
	ScheduledAt      *time.Time `db:"scheduled_at" json:"scheduledAt"`
	PublishedAt      *time.Time `db:"published_at" json:"publishedAt"`
	Metadata         JSONMap    `db:"metadata" json:"metadata"`
	MediaAttachments JSONList   `db:"media_attachments" json:"mediaAttachments"`
	Analytics        JSONMap    `db:"analytics" json:"analytics"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// IsDraft reports whether the post sits in the drafts column of the timeline.
func (p *Post) IsDraft() bool {
	return p.Status == PostStatusDraft
}

// PostVersion is an append-only snapshot of a post's content and metadata,
// written on every create and update. Never mutated once created.
type PostVersion struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"postId"`
	Content   string    `db:"content" json:"content"`
	Metadata  JSONMap   `db:"metadata" json:"metadata"`
	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
