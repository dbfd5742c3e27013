// internal/service/post_service.go
package service

import (
	"log"
	"strings"
	"unicode/utf8"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/repository"
)

type PostService struct {
	PostRepo repository.PostRepositoryInterface
}

func (s *PostService) ListPosts(userID, campaignID string) ([]model.Post, error) {
	ptrs, err := s.PostRepo.ListByUser(userID, campaignID)
	if err != nil {
		return nil, err
	}
	posts := make([]model.Post, len(ptrs))
	for i, p := range ptrs {
		posts[i] = *p
	}
	return posts, nil
}

// CreatePost validates and stores a new post, derives its status from
// scheduledAt, and appends the first content version.
func (s *PostService) CreatePost(userID string, p *model.Post) (*model.Post, error) {
	if err := validatePost(p); err != nil {
		return nil, err
	}

	p.UserID = userID
	p.Status = deriveStatus(p)
	if p.Metadata == nil {
		p.Metadata = model.JSONMap{}
	}
	if p.MediaAttachments == nil {
		p.MediaAttachments = model.JSONList{}
	}
	if p.Analytics == nil {
		p.Analytics = model.JSONMap{}
	}

	if err := s.PostRepo.Create(p); err != nil {
		return nil, err
	}
	if _, err := s.PostRepo.CreateVersion(p.ID, p.Content, p.Metadata); err != nil {
		// The post itself is stored; a missing version row is not worth failing
		// the create over.
		log.Println("failed to snapshot post version:", err)
	}
	return p, nil
}

// UpdatePost replaces the editable fields of an existing post (full-replace
// semantics from the edit modal), re-derives status and appends a new version.
func (s *PostService) UpdatePost(userID string, p *model.Post) (*model.Post, error) {
	if p.ID == "" {
		return nil, appErrors.NewValidation("post id is required")
	}
	if err := validatePost(p); err != nil {
		return nil, err
	}

	existing, err := s.PostRepo.GetByID(p.ID, userID)
	if err != nil {
		return nil, err
	}

	p.UserID = userID
	p.CreatedAt = existing.CreatedAt
	p.PublishedAt = existing.PublishedAt
	p.Analytics = existing.Analytics
	p.Status = deriveStatus(p)
	if p.Metadata == nil {
		p.Metadata = model.JSONMap{}
	}
	if p.MediaAttachments == nil {
		p.MediaAttachments = model.JSONList{}
	}

	if err := s.PostRepo.Update(p); err != nil {
		return nil, err
	}
	if _, err := s.PostRepo.CreateVersion(p.ID, p.Content, p.Metadata); err != nil {
		log.Println("failed to snapshot post version:", err)
	}
	return p, nil
}

func (s *PostService) ListVersions(postID, userID string) ([]*model.PostVersion, error) {
	if _, err := s.PostRepo.GetByID(postID, userID); err != nil {
		return nil, err
	}
	return s.PostRepo.ListVersions(postID)
}

func validatePost(p *model.Post) error {
	if strings.TrimSpace(p.Content) == "" {
		return appErrors.NewValidation("post content is required")
	}
	if utf8.RuneCountInString(p.Content) > model.MaxPostContentLength {
		return appErrors.NewValidation("post content is too long")
	}
	if p.ChannelID == "" {
		return appErrors.NewValidation("post channel is required")
	}
	if strings.TrimSpace(p.PostType) == "" {
		return appErrors.NewValidation("post type is required")
	}
	return nil
}

// deriveStatus applies the scheduling rule: a post with a scheduled time is
// scheduled, otherwise it is a draft. Terminal statuses are left alone.
func deriveStatus(p *model.Post) string {
	if p.Status == model.PostStatusPublished || p.Status == model.PostStatusFailed {
		return p.Status
	}
	if p.ScheduledAt != nil {
		return model.PostStatusScheduled
	}
	return model.PostStatusDraft
}
