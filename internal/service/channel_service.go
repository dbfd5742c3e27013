// internal/service/channel_service.go
package service

import (
	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/repository"
)

type ChannelService struct {
	ChannelRepo     repository.ChannelRepositoryInterface
	UserChannelRepo repository.UserChannelRepositoryInterface
}

func (s *ChannelService) ListCatalog() ([]model.Channel, error) {
	ptrs, err := s.ChannelRepo.ListAll()
	if err != nil {
		return nil, err
	}
	channels := make([]model.Channel, len(ptrs))
	for i, ch := range ptrs {
		channels[i] = *ch
	}
	return channels, nil
}

func (s *ChannelService) ListConnected(userID string) ([]*model.ConnectedChannel, error) {
	return s.UserChannelRepo.ListConnected(userID)
}

// ConnectChannel creates the (user, channel) connection. The channel must exist
// in the catalog, and a user can hold at most one connection per channel.
func (s *ChannelService) ConnectChannel(userID, channelID string, accountID *string) (*model.UserChannel, error) {
	channel, err := s.ChannelRepo.GetByID(channelID)
	if err != nil {
		return nil, err
	}

	existing, err := s.UserChannelRepo.Get(userID, channelID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewChannelAlreadyConnected(channelID)
	}

	uc := &model.UserChannel{
		UserID:      userID,
		ChannelID:   channelID,
		AccountID:   accountID,
		IconKey:     channel.IconKey,
		Credentials: model.JSONMap{},
		Settings:    model.JSONMap{},
		IsActive:    true,
	}
	if err := s.UserChannelRepo.Create(uc); err != nil {
		return nil, err
	}
	return uc, nil
}
