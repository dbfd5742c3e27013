package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/MarcusGasberg/somemellier/internal/model"
)

type UserChannelRepositoryInterface interface {
	ListConnected(userID string) ([]*model.ConnectedChannel, error)
	Get(userID, channelID string) (*model.UserChannel, error)
	Create(uc *model.UserChannel) error
}

type UserChannelRepository struct {
	DB *sql.DB
}

// ListConnected returns the user's connections joined with the channel catalog,
// one row per connected channel.
func (r *UserChannelRepository) ListConnected(userID string) ([]*model.ConnectedChannel, error) {
	query := `
        SELECT c.id, c.name, c.type, c.icon_key, c.config, c.metadata, c.created_at, c.updated_at,
               uc.id, uc.account_id, uc.credentials, uc.settings, uc.is_active
        FROM user_channels uc
        INNER JOIN channels c ON uc.channel_id = c.id
        WHERE uc.user_id=$1
        ORDER BY uc.created_at
    `
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	connected := []*model.ConnectedChannel{}
	for rows.Next() {
		cc := &model.ConnectedChannel{}
		if err := rows.Scan(
			&cc.ID, &cc.Name, &cc.Type, &cc.IconKey, &cc.Config, &cc.Metadata, &cc.CreatedAt, &cc.UpdatedAt,
			&cc.UserChannelID, &cc.AccountID, &cc.Credentials, &cc.Settings, &cc.IsActive,
		); err != nil {
			return nil, err
		}
		connected = append(connected, cc)
	}
	return connected, rows.Err()
}

// Get returns the connection for (user, channel), or nil when none exists.
func (r *UserChannelRepository) Get(userID, channelID string) (*model.UserChannel, error) {
	query := `
        SELECT id, user_id, channel_id, account_id, icon_key, credentials, settings, is_active, created_at, updated_at
        FROM user_channels WHERE user_id=$1 AND channel_id=$2
    `
	var uc model.UserChannel
	err := r.DB.QueryRow(query, userID, channelID).Scan(
		&uc.ID, &uc.UserID, &uc.ChannelID, &uc.AccountID, &uc.IconKey,
		&uc.Credentials, &uc.Settings, &uc.IsActive, &uc.CreatedAt, &uc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &uc, nil
}

func (r *UserChannelRepository) Create(uc *model.UserChannel) error {
	if uc.ID == "" {
		uc.ID = uuid.New().String()
	}
	uc.CreatedAt = time.Now()
	query := `
        INSERT INTO user_channels (id, user_id, channel_id, account_id, icon_key, credentials, settings, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.DB.Exec(query,
		uc.ID, uc.UserID, uc.ChannelID, uc.AccountID, uc.IconKey,
		uc.Credentials, uc.Settings, uc.IsActive, uc.CreatedAt,
	)
	return err
}

var _ UserChannelRepositoryInterface = (*UserChannelRepository)(nil)
