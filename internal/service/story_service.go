package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type StoryService interface {
	ListOpenActive(ctx context.Context, page, pageSize int) (*transfer.Page, error)
	Create(ctx context.Context, userID int64, caption string, file *multipart.FileHeader) (*models.Story, error)
	Get(ctx context.Context, req authz.Requester, storyID int64) (*models.Story, error)
	Remove(ctx context.Context, req authz.Requester, storyID int64) error
	Likes(ctx context.Context, req authz.Requester, storyID int64) ([]*models.Like, error)
	Comments(ctx context.Context, req authz.Requester, storyID int64) ([]*models.Comment, error)
	AddComment(ctx context.Context, req authz.Requester, storyID int64, text string) (*models.Comment, error)
}

type storyService struct {
	sr repository.StoryRepository
	p  repository.ProfileRepository
	f  repository.FollowerRepository
	l  repository.LikeRepository
	c  repository.CommentRepository
	m  MediaService
}

func NewStoryService(sr repository.StoryRepository, p repository.ProfileRepository, f repository.FollowerRepository, l repository.LikeRepository, c repository.CommentRepository, m MediaService) StoryService {
	return &storyService{
		sr: sr,
		p:  p,
		f:  f,
		l:  l,
		c:  c,
		m:  m,
	}
}

func (s *storyService) ListOpenActive(ctx context.Context, page, pageSize int) (*transfer.Page, error) {
	page, pageSize = normalizePage(page, pageSize)

	since := time.Now().Add(-models.StoryTTL)
	stories, total, err := s.sr.ListOpenActive(ctx, since, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &transfer.Page{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  stories,
	}, nil
}

func (s *storyService) Create(ctx context.Context, userID int64, caption string, file *multipart.FileHeader) (*models.Story, error) {
	if caption == "" && file == nil {
		return nil, apperr.Validation("story", "a caption or a media file is required")
	}
	if len(caption) > 2200 {
		return nil, apperr.Validation("caption", "caption is too long")
	}

	story := &models.Story{
		UserID:  userID,
		Caption: caption,
	}

	if file != nil {
		url, kind, err := s.m.Upload(ctx, file)
		if err != nil {
			return nil, err
		}
		switch kind {
		case MediaKindImage:
			story.ImageURL = url
		case MediaKindVideo:
			story.VideoURL = url
		}
	}

	storyID, err := s.sr.Create(ctx, nil, story)
	if err != nil {
		return nil, err
	}

	story.ID = storyID
	return story, nil
}

// get enforces the visibility gate and the 24-hour window: an expired
// story reads as absent to everyone but its owner and staff.
func (s *storyService) get(ctx context.Context, req authz.Requester, storyID int64, action authz.Action) (*models.Story, error) {
	story, exists, err := s.sr.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	if story.Expired(time.Now()) && !req.IsStaff && req.ID != story.UserID {
		return nil, apperr.ErrNotFound
	}

	tgt, err := contentTarget(ctx, s.p, s.f, req, story.UserID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, action, tgt)); err != nil {
		return nil, err
	}

	return story, nil
}

func (s *storyService) Get(ctx context.Context, req authz.Requester, storyID int64) (*models.Story, error) {
	return s.get(ctx, req, storyID, authz.ActionView)
}

func (s *storyService) Remove(ctx context.Context, req authz.Requester, storyID int64) error {
	story, err := s.get(ctx, req, storyID, authz.ActionDelete)
	if err != nil {
		return err
	}
	return s.sr.Remove(ctx, story.ID)
}

func (s *storyService) Likes(ctx context.Context, req authz.Requester, storyID int64) ([]*models.Like, error) {
	story, err := s.get(ctx, req, storyID, authz.ActionView)
	if err != nil {
		return nil, err
	}

	if !req.IsStaff && req.ID != story.UserID {
		liked, err := s.l.Exists(ctx, req.ID, models.LikeTargetStory, story.ID)
		if err != nil {
			return nil, err
		}
		if !liked {
			return nil, apperr.Denied(string(authz.ReasonNotOwner))
		}
	}

	return s.l.ListByTarget(ctx, models.LikeTargetStory, story.ID)
}

func (s *storyService) Comments(ctx context.Context, req authz.Requester, storyID int64) ([]*models.Comment, error) {
	story, err := s.get(ctx, req, storyID, authz.ActionView)
	if err != nil {
		return nil, err
	}
	return s.c.ListByStoryID(ctx, story.ID)
}

func (s *storyService) AddComment(ctx context.Context, req authz.Requester, storyID int64, text string) (*models.Comment, error) {
	if text == "" {
		return nil, apperr.Validation("text", "comment text is required")
	}
	if len(text) > 2200 {
		return nil, apperr.Validation("text", "comment is too long")
	}

	story, err := s.get(ctx, req, storyID, authz.ActionLike)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:  req.ID,
		StoryID: story.ID,
		Text:    text,
	}

	commentID, err := s.c.Create(ctx, nil, comment)
	if err != nil {
		return nil, err
	}

	comment.ID = commentID
	return comment, nil
}
