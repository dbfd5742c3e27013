// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/middleware"
	"github.com/MarcusGasberg/somemellier/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

// GetCampaigns serves GET /api/campaigns, returning either the full list or a
// single campaign when ?id= is present.
func (c *CampaignController) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	if id := r.URL.Query().Get("id"); id != "" {
		campaign, err := c.CampaignService.GetCampaign(id, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"campaign": campaign})
		return
	}

	campaigns, err := c.CampaignService.ListCampaigns(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var body struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		IsDefault   bool    `json:"isDefault"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(userID, body.Name, body.Description, body.IsDefault)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"campaign": campaign})
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, appErrors.NewValidation("Campaign ID required"))
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsDefault   *bool   `json:"isDefault"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}

	campaign, err := c.CampaignService.UpdateCampaign(id, userID, body.Name, body.Description, body.IsDefault)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaign": campaign})
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, appErrors.NewValidation("Campaign ID required"))
		return
	}

	campaign, err := c.CampaignService.DeleteCampaign(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaign": campaign})
}
