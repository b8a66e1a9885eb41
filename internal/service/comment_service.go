package service

import (
	"context"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
)

type CommentService interface {
	Update(ctx context.Context, req authz.Requester, commentID int64, text string) (*models.Comment, error)
	Remove(ctx context.Context, req authz.Requester, commentID int64) error
}

type commentService struct {
	c repository.CommentRepository
	p repository.ProfileRepository
	f repository.FollowerRepository
}

func NewCommentService(c repository.CommentRepository, p repository.ProfileRepository, f repository.FollowerRepository) CommentService {
	return &commentService{
		c: c,
		p: p,
		f: f,
	}
}

func (s *commentService) get(ctx context.Context, req authz.Requester, commentID int64, action authz.Action) (*models.Comment, error) {
	comment, exists, err := s.c.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	tgt, err := contentTarget(ctx, s.p, s.f, req, comment.UserID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, action, tgt)); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) Update(ctx context.Context, req authz.Requester, commentID int64, text string) (*models.Comment, error) {
	if text == "" {
		return nil, apperr.Validation("text", "comment text is required")
	}
	if len(text) > 2200 {
		return nil, apperr.Validation("text", "comment is too long")
	}

	comment, err := s.get(ctx, req, commentID, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := s.c.UpdateText(ctx, comment.ID, text); err != nil {
		return nil, err
	}

	comment.Text = text
	return comment, nil
}

func (s *commentService) Remove(ctx context.Context, req authz.Requester, commentID int64) error {
	comment, err := s.get(ctx, req, commentID, authz.ActionDelete)
	if err != nil {
		return err
	}
	return s.c.Remove(ctx, comment.ID)
}
