package repository

import (
	"database/sql"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
)

type ChannelRepositoryInterface interface {
	ListAll() ([]*model.Channel, error)
	GetByID(id string) (*model.Channel, error)
	Upsert(ch *model.Channel) error
}

type ChannelRepository struct {
	DB *sql.DB
}

func (r *ChannelRepository) ListAll() ([]*model.Channel, error) {
	query := `
        SELECT id, name, type, icon_key, config, metadata, created_at, updated_at
        FROM channels ORDER BY name
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []*model.Channel{}
	for rows.Next() {
		ch := &model.Channel{}
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Type, &ch.IconKey, &ch.Config, &ch.Metadata, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

func (r *ChannelRepository) GetByID(id string) (*model.Channel, error) {
	query := `
        SELECT id, name, type, icon_key, config, metadata, created_at, updated_at
        FROM channels WHERE id=$1
    `
	var ch model.Channel
	err := r.DB.QueryRow(query, id).Scan(&ch.ID, &ch.Name, &ch.Type, &ch.IconKey, &ch.Config, &ch.Metadata, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewChannelNotFound(id)
		}
		return nil, err
	}
	return &ch, nil
}

// Upsert is used by the seeder; catalog rows are otherwise immutable.
func (r *ChannelRepository) Upsert(ch *model.Channel) error {
	query := `
        INSERT INTO channels (id, name, type, icon_key, config, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.DB.Exec(query, ch.ID, ch.Name, ch.Type, ch.IconKey, ch.Config, ch.Metadata)
	return err
}

var _ ChannelRepositoryInterface = (*ChannelRepository)(nil)
