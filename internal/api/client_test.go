package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcusGasberg/somemellier/internal/api"
	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
)

func TestListCampaignsUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/campaigns", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"campaigns": []model.Campaign{
			{ID: "campaign-1", Name: "Launch"},
		}})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "token-1")
	campaigns, err := client.ListCampaigns(context.Background())
	assert.NoError(t, err)
	assert.Len(t, campaigns, 1)
	assert.Equal(t, "Launch", campaigns[0].Name)
}

func TestErrorKindsFollowStatusCodes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		message string
		check   func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, "Unauthorized", appErrors.IsUnauthorized},
		{"not found", http.StatusNotFound, "campaign missing not found", appErrors.IsNotFound},
		{"conflict", http.StatusConflict, "Channel already connected", appErrors.IsConflict},
		{"validation", http.StatusBadRequest, "Campaign ID required", appErrors.IsValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]string{"error": tc.message})
			}))
			defer server.Close()

			client := api.NewClient(server.URL, "token-1")
			_, err := client.ListCampaigns(context.Background())
			assert.Error(t, err)
			assert.True(t, tc.check(err))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestServerErrorIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "token-1")
	_, err := client.ListCampaigns(context.Background())
	assert.Error(t, err)
	assert.Equal(t, appErrors.KindTransport, appErrors.KindOf(err))
}

func TestUnreachableServerIsTransport(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1", "token-1")
	_, err := client.ListCampaigns(context.Background())
	assert.Error(t, err)
	assert.Equal(t, appErrors.KindTransport, appErrors.KindOf(err))
}
