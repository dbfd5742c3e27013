// Package api is the HTTP client the client-side collections fetch and
// persist through. Every failure comes back tagged with its kind so the
// collection layer can distinguish auth, not-found, conflict and validation
// failures from plain transport trouble.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
)

type Client struct {
	http *resty.Client
}

type errorBody struct {
	Error string `json:"error"`
}

func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

// wrap maps a response onto the domain error taxonomy.
func wrap(resp *resty.Response, err error) error {
	if err != nil {
		return appErrors.NewTransport("request failed", err)
	}
	if resp.IsSuccess() {
		return nil
	}

	message := http.StatusText(resp.StatusCode())
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		message = body.Error
	}

	var kind appErrors.Kind
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		kind = appErrors.KindUnauthorized
	case http.StatusNotFound:
		kind = appErrors.KindNotFound
	case http.StatusConflict:
		kind = appErrors.KindConflict
	case http.StatusBadRequest:
		kind = appErrors.KindValidation
	default:
		return appErrors.NewTransport(fmt.Sprintf("unexpected status %d: %s", resp.StatusCode(), message), nil)
	}
	return &appErrors.Error{Kind: kind, Message: message}
}

// ====================== Campaigns ======================

type campaignEnvelope struct {
	Campaign *model.Campaign `json:"campaign"`
}

type campaignsEnvelope struct {
	Campaigns []model.Campaign `json:"campaigns"`
}

func (c *Client) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	var out campaignsEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetResult(&out).SetError(&errorBody{}).
		Get("/api/campaigns")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Campaigns, nil
}

func (c *Client) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var out campaignEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("id", id).
		SetResult(&out).SetError(&errorBody{}).
		Get("/api/campaigns")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Campaign, nil
}

func (c *Client) CreateCampaign(ctx context.Context, campaign model.Campaign) (*model.Campaign, error) {
	var out campaignEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetBody(campaign).
		SetResult(&out).SetError(&errorBody{}).
		Post("/api/campaigns")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Campaign, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, campaign model.Campaign) (*model.Campaign, error) {
	var out campaignEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("id", campaign.ID).
		SetBody(campaign).
		SetResult(&out).SetError(&errorBody{}).
		Put("/api/campaigns")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Campaign, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var out campaignEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("id", id).
		SetResult(&out).SetError(&errorBody{}).
		Delete("/api/campaigns")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Campaign, nil
}

// ====================== Channels ======================

type channelsEnvelope struct {
	Channels []model.Channel `json:"channels"`
}

func (c *Client) ListChannels(ctx context.Context) ([]model.Channel, error) {
	var out channelsEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetResult(&out).SetError(&errorBody{}).
		Get("/api/channels")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Channels, nil
}

func (c *Client) ListUserChannels(ctx context.Context) ([]model.ConnectedChannel, error) {
	var out []model.ConnectedChannel
	resp, err := c.http.R().SetContext(ctx).
		SetResult(&out).SetError(&errorBody{}).
		Get("/api/user-channels")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ConnectChannel(ctx context.Context, channelID string, accountID *string) (*model.UserChannel, error) {
	var out model.UserChannel
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"channelId": channelID, "accountId": accountID}).
		SetResult(&out).SetError(&errorBody{}).
		Post("/api/user-channels")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ====================== Posts ======================

type postEnvelope struct {
	Post *model.Post `json:"post"`
}

type postsEnvelope struct {
	Posts []model.Post `json:"posts"`
}

func (c *Client) ListPosts(ctx context.Context, campaignID string) ([]model.Post, error) {
	req := c.http.R().SetContext(ctx)
	if campaignID != "" {
		req.SetQueryParam("campaignId", campaignID)
	}
	var out postsEnvelope
	resp, err := req.SetResult(&out).SetError(&errorBody{}).Get("/api/posts")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) CreatePost(ctx context.Context, post model.Post) (*model.Post, error) {
	var out postEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetBody(post).
		SetResult(&out).SetError(&errorBody{}).
		Post("/api/posts")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Post, nil
}

func (c *Client) UpdatePost(ctx context.Context, post model.Post) (*model.Post, error) {
	var out postEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetBody(post).
		SetResult(&out).SetError(&errorBody{}).
		Put("/api/posts")
	if err := wrap(resp, err); err != nil {
		return nil, err
	}
	return out.Post, nil
}
