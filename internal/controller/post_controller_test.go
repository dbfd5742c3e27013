package controller_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcusGasberg/somemellier/internal/model"
)

func TestCreateAndListPosts(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/posts", `{"channelId":"x","content":"hello","postType":"text"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created model.Post
	body := decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["post"], &created))
	assert.Equal(t, model.PostStatusDraft, created.Status)

	rec = env.do(t, http.MethodGet, "/api/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var posts []model.Post
	body = decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["posts"], &posts))
	assert.Len(t, posts, 1)
}

func TestListPostsFiltersByCampaign(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/posts", `{"channelId":"x","content":"in campaign","postType":"text","campaignId":"campaign-1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/posts", `{"channelId":"x","content":"no campaign","postType":"text"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/posts?campaignId=campaign-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var posts []model.Post
	body := decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["posts"], &posts))
	assert.Len(t, posts, 1)
	assert.Equal(t, "in campaign", posts[0].Content)
}

func TestCreatePostScheduled(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/posts",
		`{"channelId":"x","content":"later","postType":"text","scheduledAt":"2026-09-01T10:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created model.Post
	body := decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["post"], &created))
	assert.Equal(t, model.PostStatusScheduled, created.Status)
}

func TestCreatePostValidationError(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/posts", `{"channelId":"x","postType":"text"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePostRequiresID(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPut, "/api/posts", `{"channelId":"x","content":"edited","postType":"text"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Post ID required"}`, rec.Body.String())
}

func TestUpdatePost(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/posts", `{"channelId":"x","content":"first","postType":"text"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created model.Post
	body := decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["post"], &created))

	rec = env.do(t, http.MethodPut, "/api/posts",
		`{"id":"`+created.ID+`","channelId":"x","content":"second","postType":"text"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var updated model.Post
	body = decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["post"], &updated))
	assert.Equal(t, "second", updated.Content)
}

func TestListPostVersions(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/posts", `{"channelId":"x","content":"v1","postType":"text"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created model.Post
	body := decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["post"], &created))

	rec = env.do(t, http.MethodPut, "/api/posts",
		`{"id":"`+created.ID+`","channelId":"x","content":"v2","postType":"text"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/posts/"+created.ID+"/versions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var versions []model.PostVersion
	body = decodeBody(t, rec)
	assert.NoError(t, json.Unmarshal(body["versions"], &versions))
	assert.Len(t, versions, 2)
	assert.Equal(t, "v1", versions[0].Content)
	assert.Equal(t, "v2", versions[1].Content)
}
