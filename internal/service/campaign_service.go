// internal/service/campaign_service.go
package service

import (
	"strings"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	PostRepo     repository.PostRepositoryInterface
}

func (s *CampaignService) ListCampaigns(userID string) ([]model.Campaign, error) {
	ptrs, err := s.CampaignRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}
	return campaigns, nil
}

func (s *CampaignService) GetCampaign(id, userID string) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id, userID)
}

func (s *CampaignService) CreateCampaign(userID, name string, description *string, isDefault bool) (*model.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.NewValidation("campaign name is required")
	}

	c := &model.Campaign{
		UserID:      userID,
		Name:        name,
		Description: description,
		IsDefault:   isDefault,
	}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCampaign patches the provided fields onto the stored campaign.
func (s *CampaignService) UpdateCampaign(id, userID string, name *string, description *string, isDefault *bool) (*model.Campaign, error) {
	c, err := s.CampaignRepo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, appErrors.NewValidation("campaign name is required")
		}
		c.Name = *name
	}
	if description != nil {
		c.Description = description
	}
	if isDefault != nil {
		c.IsDefault = *isDefault
	}
	if err := s.CampaignRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCampaign refuses to delete a campaign that still has posts.
func (s *CampaignService) DeleteCampaign(id, userID string) (*model.Campaign, error) {
	count, err := s.PostRepo.CountByCampaign(id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, appErrors.NewValidation("Cannot delete campaign with existing posts. Please reassign or delete posts first.")
	}
	return s.CampaignRepo.Delete(id, userID)
}
