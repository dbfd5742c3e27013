// internal/controller/channel_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/middleware"
	"github.com/MarcusGasberg/somemellier/internal/service"
)

type ChannelController struct {
	ChannelService *service.ChannelService
}

// ListChannels serves the full catalog.
func (c *ChannelController) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := c.ChannelService.ListCatalog()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
}

// ListUserChannels returns the user's connections joined with channel details.
// The response is a bare array, matching what the dashboard consumes.
func (c *ChannelController) ListUserChannels(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	connected, err := c.ChannelService.ListConnected(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, connected)
}

func (c *ChannelController) ConnectChannel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var body struct {
		ChannelID string  `json:"channelId"`
		AccountID *string `json:"accountId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, appErrors.NewValidation("invalid body"))
		return
	}
	if body.ChannelID == "" {
		writeError(w, appErrors.NewValidation("channelId is required"))
		return
	}

	uc, err := c.ChannelService.ConnectChannel(userID, body.ChannelID, body.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uc)
}
