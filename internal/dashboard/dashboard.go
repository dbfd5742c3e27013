// Package dashboard holds the client-side state behind the timeline view:
// the four entity collections, current-campaign resolution, the one-shot
// default-campaign creation, and the available-channels computation.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MarcusGasberg/somemellier/internal/api"
	"github.com/MarcusGasberg/somemellier/internal/collection"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/timeline"
)

// DefaultCreationState is the explicit state machine behind the "create a
// Default campaign for new users" side effect. Only NotAttempted and
// Retryable may start a creation, so rapid re-renders trigger exactly one.
type DefaultCreationState int

const (
	DefaultNotAttempted DefaultCreationState = iota
	DefaultInFlight
	DefaultDone
	DefaultRetryable
)

type Dashboard struct {
	Campaigns    *collection.Collection[model.Campaign]
	Channels     *collection.Collection[model.Channel]
	UserChannels *collection.Collection[model.ConnectedChannel]
	Posts        *collection.Collection[model.Post]

	mu           sync.Mutex
	defaultState DefaultCreationState
}

// New builds a dashboard whose collections load from and persist through the
// given API client.
func New(client *api.Client) *Dashboard {
	return &Dashboard{
		Campaigns: collection.New(collection.Config[model.Campaign]{
			GetKey: func(c model.Campaign) string { return c.ID },
			Fetch:  client.ListCampaigns,
			OnInsert: func(ctx context.Context, c model.Campaign) (model.Campaign, error) {
				created, err := client.CreateCampaign(ctx, c)
				if err != nil {
					return c, err
				}
				return *created, nil
			},
			OnUpdate: func(ctx context.Context, c model.Campaign) (model.Campaign, error) {
				updated, err := client.UpdateCampaign(ctx, c)
				if err != nil {
					return c, err
				}
				return *updated, nil
			},
		}),
		Channels: collection.New(collection.Config[model.Channel]{
			GetKey: func(ch model.Channel) string { return ch.ID },
			Fetch:  client.ListChannels,
		}),
		UserChannels: collection.New(collection.Config[model.ConnectedChannel]{
			GetKey: func(cc model.ConnectedChannel) string { return cc.ID },
			Fetch:  client.ListUserChannels,
			OnInsert: func(ctx context.Context, cc model.ConnectedChannel) (model.ConnectedChannel, error) {
				created, err := client.ConnectChannel(ctx, cc.ID, cc.AccountID)
				if err != nil {
					return cc, err
				}
				cc.UserChannelID = created.ID
				cc.IsActive = created.IsActive
				return cc, nil
			},
		}),
		Posts: collection.New(collection.Config[model.Post]{
			GetKey: func(p model.Post) string { return p.ID },
			Fetch: func(ctx context.Context) ([]model.Post, error) {
				return client.ListPosts(ctx, "")
			},
			OnInsert: func(ctx context.Context, p model.Post) (model.Post, error) {
				created, err := client.CreatePost(ctx, p)
				if err != nil {
					return p, err
				}
				return *created, nil
			},
			OnUpdate: func(ctx context.Context, p model.Post) (model.Post, error) {
				updated, err := client.UpdatePost(ctx, p)
				if err != nil {
					return p, err
				}
				return *updated, nil
			},
		}),
	}
}

// Load refreshes every collection. The first error is returned; the view
// decides how to render around it.
func (d *Dashboard) Load(ctx context.Context) error {
	if err := d.Channels.Load(ctx); err != nil {
		return err
	}
	if err := d.UserChannels.Load(ctx); err != nil {
		return err
	}
	if err := d.Campaigns.Load(ctx); err != nil {
		return err
	}
	return d.Posts.Load(ctx)
}

// CurrentCampaign resolves the campaign to display: the explicitly requested
// one when present, otherwise the newest default campaign.
func (d *Dashboard) CurrentCampaign(campaignID string) (model.Campaign, bool) {
	if campaignID != "" {
		if c, ok := d.Campaigns.Get(campaignID); ok {
			return c, true
		}
	}
	return d.Campaigns.Query().
		Where(func(c model.Campaign) bool { return c.IsDefault }).
		OrderBy(func(a, b model.Campaign) bool { return a.CreatedAt.After(b.CreatedAt) }).
		Limit(1).
		First()
}

// EnsureDefaultCampaign creates the "Default" campaign when the user has
// none. Safe to call on every render pass: the state machine admits a single
// in-flight creation, marks itself done on success, and falls back to
// Retryable on failure so a later pass may try again.
func (d *Dashboard) EnsureDefaultCampaign(ctx context.Context) *collection.Mutation {
	if d.Campaigns.Len() > 0 {
		return nil
	}

	d.mu.Lock()
	if d.defaultState == DefaultInFlight || d.defaultState == DefaultDone {
		d.mu.Unlock()
		return nil
	}
	d.defaultState = DefaultInFlight
	d.mu.Unlock()

	description := "Your default campaign"
	mut := d.Campaigns.Insert(ctx, model.Campaign{
		ID:          uuid.New().String(),
		Name:        "Default",
		Description: &description,
		IsDefault:   true,
		CreatedAt:   time.Now(),
	})

	go func() {
		<-mut.Done()
		d.mu.Lock()
		if mut.Err() != nil {
			d.defaultState = DefaultRetryable
		} else {
			d.defaultState = DefaultDone
		}
		d.mu.Unlock()
	}()

	return mut
}

// DefaultState exposes the creation state machine for the view and tests.
func (d *Dashboard) DefaultState() DefaultCreationState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.defaultState
}

// AvailableChannels is the live "catalog minus already connected" query,
// recomputed as either collection changes.
func (d *Dashboard) AvailableChannels() *collection.JoinQuery[model.Channel, model.ConnectedChannel] {
	return collection.LeftJoin(d.Channels, d.UserChannels,
		func(ch model.Channel, cc model.ConnectedChannel) bool { return ch.ID == cc.ID },
	).Missing()
}

// ConnectChannel optimistically adds the connection and persists it.
func (d *Dashboard) ConnectChannel(ctx context.Context, channel model.Channel, accountID *string) *collection.Mutation {
	return d.UserChannels.Insert(ctx, model.ConnectedChannel{
		ID:        channel.ID,
		Name:      channel.Name,
		Type:      channel.Type,
		IconKey:   channel.IconKey,
		Config:    channel.Config,
		Metadata:  channel.Metadata,
		CreatedAt: channel.CreatedAt,
		AccountID: accountID,
		IsActive:  true,
	})
}

// Grid assembles the timeline display model for the current collections,
// scoped to one campaign when campaignID is non-empty.
func (d *Dashboard) Grid(campaignID string, dates []timeline.Date, showDrafts bool, columnWidth int, today time.Time) timeline.Grid {
	posts := d.Posts.Query().
		Where(func(p model.Post) bool {
			return campaignID == "" || (p.CampaignID != nil && *p.CampaignID == campaignID)
		}).
		All()
	return timeline.Assemble(d.UserChannels.List(), posts, dates, showDrafts, columnWidth, today)
}
