package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MarcusGasberg/somemellier/internal/controller"
	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/middleware"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/service"
)

// In-memory repositories backing the controllers under test.

type fakeCampaignRepo struct {
	campaigns map[string]*model.Campaign
	nextID    int
}

func (f *fakeCampaignRepo) ListByUser(userID string) ([]*model.Campaign, error) {
	out := []*model.Campaign{}
	for _, c := range f.campaigns {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) GetByID(id, userID string) (*model.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok || c.UserID != userID {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignRepo) Create(c *model.Campaign) error {
	f.nextID++
	c.ID = "campaign-" + string(rune('0'+f.nextID))
	c.CreatedAt = time.Now()
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) Update(c *model.Campaign) error {
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) Delete(id, userID string) (*model.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok || c.UserID != userID {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	delete(f.campaigns, id)
	return c, nil
}

type fakeChannelRepo struct {
	channels []*model.Channel
}

func (f *fakeChannelRepo) ListAll() ([]*model.Channel, error) { return f.channels, nil }

func (f *fakeChannelRepo) GetByID(id string) (*model.Channel, error) {
	for _, ch := range f.channels {
		if ch.ID == id {
			return ch, nil
		}
	}
	return nil, appErrors.NewChannelNotFound(id)
}

func (f *fakeChannelRepo) Upsert(ch *model.Channel) error { return nil }

type fakeUserChannelRepo struct {
	connections []*model.UserChannel
	channels    *fakeChannelRepo
}

func (f *fakeUserChannelRepo) ListConnected(userID string) ([]*model.ConnectedChannel, error) {
	out := []*model.ConnectedChannel{}
	for _, uc := range f.connections {
		if uc.UserID != userID {
			continue
		}
		ch, err := f.channels.GetByID(uc.ChannelID)
		if err != nil {
			return nil, err
		}
		out = append(out, &model.ConnectedChannel{
			ID:            ch.ID,
			Name:          ch.Name,
			Type:          ch.Type,
			IconKey:       ch.IconKey,
			UserChannelID: uc.ID,
			AccountID:     uc.AccountID,
			IsActive:      uc.IsActive,
		})
	}
	return out, nil
}

func (f *fakeUserChannelRepo) Get(userID, channelID string) (*model.UserChannel, error) {
	for _, uc := range f.connections {
		if uc.UserID == userID && uc.ChannelID == channelID {
			return uc, nil
		}
	}
	return nil, nil
}

func (f *fakeUserChannelRepo) Create(uc *model.UserChannel) error {
	uc.ID = "uc-1"
	f.connections = append(f.connections, uc)
	return nil
}

type fakePostRepo struct {
	posts    map[string]*model.Post
	versions map[string][]*model.PostVersion
	nextID   int
}

func (f *fakePostRepo) ListByUser(userID, campaignID string) ([]*model.Post, error) {
	out := []*model.Post{}
	for _, p := range f.posts {
		if p.UserID != userID {
			continue
		}
		if campaignID != "" && (p.CampaignID == nil || *p.CampaignID != campaignID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostRepo) GetByID(id, userID string) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return nil, appErrors.NewPostNotFound(id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) GetAny(id string) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, appErrors.NewPostNotFound(id)
	}
	return p, nil
}

func (f *fakePostRepo) Create(p *model.Post) error {
	f.nextID++
	p.ID = "post-" + string(rune('0'+f.nextID))
	p.CreatedAt = time.Now()
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostRepo) Update(p *model.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return appErrors.NewPostNotFound(p.ID)
	}
	f.posts[p.ID] = p
	return nil
}

func (f *fakePostRepo) CountByCampaign(campaignID string) (int, error) {
	count := 0
	for _, p := range f.posts {
		if p.CampaignID != nil && *p.CampaignID == campaignID {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) ListDue(now time.Time, limit int) ([]*model.Post, error) { return nil, nil }
func (f *fakePostRepo) MarkPublished(id string, publishedAt time.Time) error    { return nil }
func (f *fakePostRepo) MarkFailed(id string, lastError string) error            { return nil }

func (f *fakePostRepo) CreateVersion(postID, content string, metadata model.JSONMap) (*model.PostVersion, error) {
	v := &model.PostVersion{
		ID:      "version-1",
		PostID:  postID,
		Version: len(f.versions[postID]) + 1,
		Content: content,
	}
	f.versions[postID] = append(f.versions[postID], v)
	return v, nil
}

func (f *fakePostRepo) ListVersions(postID string) ([]*model.PostVersion, error) {
	return f.versions[postID], nil
}

type testEnv struct {
	router    chi.Router
	campaigns *fakeCampaignRepo
	channels  *fakeChannelRepo
	posts     *fakePostRepo
}

// newTestEnv wires controllers over in-memory repositories behind the same
// routes the server mounts, with a stub auth middleware injecting "user-1".
func newTestEnv() *testEnv {
	campaigns := &fakeCampaignRepo{campaigns: map[string]*model.Campaign{}}
	channels := &fakeChannelRepo{}
	userChannels := &fakeUserChannelRepo{channels: channels}
	posts := &fakePostRepo{posts: map[string]*model.Post{}, versions: map[string][]*model.PostVersion{}}

	campaignController := &controller.CampaignController{
		CampaignService: &service.CampaignService{CampaignRepo: campaigns, PostRepo: posts},
	}
	channelController := &controller.ChannelController{
		ChannelService: &service.ChannelService{ChannelRepo: channels, UserChannelRepo: userChannels},
	}
	postController := &controller.PostController{
		PostService: &service.PostService{PostRepo: posts},
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), "user-1")))
			})
		})

		r.Get("/campaigns", campaignController.GetCampaigns)
		r.Post("/campaigns", campaignController.CreateCampaign)
		r.Put("/campaigns", campaignController.UpdateCampaign)
		r.Delete("/campaigns", campaignController.DeleteCampaign)

		r.Get("/channels", channelController.ListChannels)
		r.Get("/user-channels", channelController.ListUserChannels)
		r.Post("/user-channels", channelController.ConnectChannel)

		r.Get("/posts", postController.ListPosts)
		r.Post("/posts", postController.CreatePost)
		r.Put("/posts", postController.UpdatePost)
		r.Get("/posts/{id}/versions", postController.ListPostVersions)
	})

	return &testEnv{router: r, campaigns: campaigns, channels: channels, posts: posts}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
