package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
)

type PostRepositoryInterface interface {
	// Post CRUD
	ListByUser(userID, campaignID string) ([]*model.Post, error)
	GetByID(id, userID string) (*model.Post, error)
	GetAny(id string) (*model.Post, error)
	Create(p *model.Post) error
	Update(p *model.Post) error
	CountByCampaign(campaignID string) (int, error)

	// Publishing
	ListDue(now time.Time, limit int) ([]*model.Post, error)
	MarkPublished(id string, publishedAt time.Time) error
	MarkFailed(id string, lastError string) error

	// Versions
	CreateVersion(postID, content string, metadata model.JSONMap) (*model.PostVersion, error)
	ListVersions(postID string) ([]*model.PostVersion, error)
}

type PostRepository struct {
	DB *sql.DB
}

const postColumns = `id, user_id, channel_id, campaign_id, title, content, status, post_type,
scheduled_at, published_at, metadata, media_attachments, analytics, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	p := &model.Post{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.ChannelID, &p.CampaignID, &p.Title, &p.Content, &p.Status, &p.PostType,
		&p.ScheduledAt, &p.PublishedAt, &p.Metadata, &p.MediaAttachments, &p.Analytics, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ====================== Post CRUD ======================

// ListByUser returns the user's posts, optionally scoped to one campaign.
func (r *PostRepository) ListByUser(userID, campaignID string) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id=$1`
	args := []any{userID}
	if campaignID != "" {
		query += ` AND campaign_id=$2`
		args = append(args, campaignID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetByID(id, userID string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id=$1 AND user_id=$2`
	p, err := scanPost(r.DB.QueryRow(query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewPostNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

// GetAny looks up a post without user scoping. Only the delivery path uses it;
// everything user-facing goes through GetByID.
func (r *PostRepository) GetAny(id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id=$1`
	p, err := scanPost(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewPostNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(p *model.Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	query := `
        INSERT INTO posts (id, user_id, channel_id, campaign_id, title, content, status, post_type,
                           scheduled_at, metadata, media_attachments, analytics, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.DB.Exec(query,
		p.ID, p.UserID, p.ChannelID, p.CampaignID, p.Title, p.Content, p.Status, p.PostType,
		p.ScheduledAt, p.Metadata, p.MediaAttachments, p.Analytics, p.CreatedAt,
	)
	return err
}

// Update replaces the editable fields wholesale (the edit modal has full-replace
// semantics).
func (r *PostRepository) Update(p *model.Post) error {
	query := `
        UPDATE posts
        SET channel_id=$1, campaign_id=$2, title=$3, content=$4, status=$5, post_type=$6,
            scheduled_at=$7, metadata=$8, media_attachments=$9, updated_at=NOW()
        WHERE id=$10 AND user_id=$11
    `
	res, err := r.DB.Exec(query,
		p.ChannelID, p.CampaignID, p.Title, p.Content, p.Status, p.PostType,
		p.ScheduledAt, p.Metadata, p.MediaAttachments, p.ID, p.UserID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewPostNotFound(p.ID)
	}
	return nil
}

func (r *PostRepository) CountByCampaign(campaignID string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM posts WHERE campaign_id=$1`, campaignID).Scan(&count)
	return count, err
}

// ====================== Publishing ======================

// ListDue returns scheduled posts whose scheduled_at has passed.
func (r *PostRepository) ListDue(now time.Time, limit int) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
        WHERE status=$1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
        ORDER BY scheduled_at LIMIT $3`
	rows, err := r.DB.Query(query, model.PostStatusScheduled, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) MarkPublished(id string, publishedAt time.Time) error {
	query := `UPDATE posts SET status=$1, published_at=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, model.PostStatusPublished, publishedAt, id)
	return err
}

func (r *PostRepository) MarkFailed(id string, lastError string) error {
	query := `
        UPDATE posts
        SET status=$1, metadata = metadata || jsonb_build_object('lastError', $2::text), updated_at=NOW()
        WHERE id=$3
    `
	_, err := r.DB.Exec(query, model.PostStatusFailed, lastError, id)
	return err
}

// ====================== Versions ======================

// CreateVersion appends a snapshot with the next version number for the post.
func (r *PostRepository) CreateVersion(postID, content string, metadata model.JSONMap) (*model.PostVersion, error) {
	query := `
        INSERT INTO post_versions (id, post_id, content, metadata, version, created_at)
        VALUES ($1, $2, $3, $4,
                (SELECT COALESCE(MAX(version), 0) + 1 FROM post_versions WHERE post_id=$2),
                NOW())
        RETURNING id, post_id, content, metadata, version, created_at
    `
	var v model.PostVersion
	err := r.DB.QueryRow(query, uuid.New().String(), postID, content, metadata).Scan(
		&v.ID, &v.PostID, &v.Content, &v.Metadata, &v.Version, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostRepository) ListVersions(postID string) ([]*model.PostVersion, error) {
	query := `
        SELECT id, post_id, content, metadata, version, created_at
        FROM post_versions WHERE post_id=$1 ORDER BY version
    `
	rows, err := r.DB.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := []*model.PostVersion{}
	for rows.Next() {
		v := &model.PostVersion{}
		if err := rows.Scan(&v.ID, &v.PostID, &v.Content, &v.Metadata, &v.Version, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

var _ PostRepositoryInterface = (*PostRepository)(nil)
