package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
)

type CampaignRepositoryInterface interface {
	ListByUser(userID string) ([]*model.Campaign, error)
	GetByID(id, userID string) (*model.Campaign, error)
	Create(c *model.Campaign) error
	Update(c *model.Campaign) error
	Delete(id, userID string) (*model.Campaign, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) ListByUser(userID string) ([]*model.Campaign, error) {
	query := `
        SELECT id, user_id, name, description, is_default, created_at, updated_at
        FROM campaigns WHERE user_id=$1 ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) GetByID(id, userID string) (*model.Campaign, error) {
	query := `
        SELECT id, user_id, name, description, is_default, created_at, updated_at
        FROM campaigns WHERE id=$1 AND user_id=$2
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	query := `
        INSERT INTO campaigns (id, user_id, name, description, is_default, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.DB.Exec(query, c.ID, c.UserID, c.Name, c.Description, c.IsDefault, c.CreatedAt)
	return err
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name=$1, description=$2, is_default=$3, updated_at=NOW()
        WHERE id=$4 AND user_id=$5
    `
	res, err := r.DB.Exec(query, c.Name, c.Description, c.IsDefault, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCampaignNotFound(c.ID)
	}
	return nil
}

// Delete removes the campaign and returns the deleted row.
func (r *CampaignRepository) Delete(id, userID string) (*model.Campaign, error) {
	query := `
        DELETE FROM campaigns WHERE id=$1 AND user_id=$2
        RETURNING id, user_id, name, description, is_default, created_at, updated_at
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
