package service

import (
	"context"
	"database/sql"
	"log/slog"
	"mime/multipart"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type PostService interface {
	ListOpen(ctx context.Context, page, pageSize int) (*transfer.Page, error)
	Create(ctx context.Context, userID int64, caption string, file *multipart.FileHeader) (*models.Post, error)
	Get(ctx context.Context, req authz.Requester, postID int64) (*models.Post, error)
	UpdateCaption(ctx context.Context, req authz.Requester, postID int64, caption string) (*models.Post, error)
	Remove(ctx context.Context, req authz.Requester, postID int64) error
	Likes(ctx context.Context, req authz.Requester, postID int64) ([]*models.Like, error)
	Comments(ctx context.Context, req authz.Requester, postID int64) ([]*models.Comment, error)
	AddComment(ctx context.Context, req authz.Requester, postID int64, text string) (*models.Comment, error)
}

type postService struct {
	db *sql.DB
	pr repository.PostRepository
	p  repository.ProfileRepository
	f  repository.FollowerRepository
	l  repository.LikeRepository
	c  repository.CommentRepository
	m  MediaService
}

func NewPostService(db *sql.DB, pr repository.PostRepository, p repository.ProfileRepository, f repository.FollowerRepository, l repository.LikeRepository, c repository.CommentRepository, m MediaService) PostService {
	return &postService{
		db: db,
		pr: pr,
		p:  p,
		f:  f,
		l:  l,
		c:  c,
		m:  m,
	}
}

func (s *postService) ListOpen(ctx context.Context, page, pageSize int) (*transfer.Page, error) {
	page, pageSize = normalizePage(page, pageSize)

	posts, total, err := s.pr.ListOpen(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &transfer.Page{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  posts,
	}, nil
}

func (s *postService) Create(ctx context.Context, userID int64, caption string, file *multipart.FileHeader) (*models.Post, error) {
	if caption == "" && file == nil {
		return nil, apperr.Validation("post", "a caption or a media file is required")
	}
	if len(caption) > 2200 {
		return nil, apperr.Validation("caption", "caption is too long")
	}

	post := &models.Post{
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
			post.ImageURL = url
		case MediaKindVideo:
			post.VideoURL = url
		}
	}

	postID, err := s.pr.Create(ctx, nil, post)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	post.ID = postID
	return post, nil
}

func (s *postService) get(ctx context.Context, req authz.Requester, postID int64, action authz.Action) (*models.Post, error) {
	post, exists, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	tgt, err := contentTarget(ctx, s.p, s.f, req, post.UserID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, action, tgt)); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) Get(ctx context.Context, req authz.Requester, postID int64) (*models.Post, error) {
	return s.get(ctx, req, postID, authz.ActionView)
}

func (s *postService) UpdateCaption(ctx context.Context, req authz.Requester, postID int64, caption string) (*models.Post, error) {
	if len(caption) > 2200 {
		return nil, apperr.Validation("caption", "caption is too long")
	}

	post, err := s.get(ctx, req, postID, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := s.pr.UpdateCaption(ctx, post.ID, caption); err != nil {
		return nil, err
	}

	post.Caption = caption
	return post, nil
}

func (s *postService) Remove(ctx context.Context, req authz.Requester, postID int64) error {
	post, err := s.get(ctx, req, postID, authz.ActionDelete)
	if err != nil {
		return err
	}
	return s.pr.Remove(ctx, post.ID)
}

// Likes is visible to the post owner and to accounts that have liked the
// post themselves; staff always.
func (s *postService) Likes(ctx context.Context, req authz.Requester, postID int64) ([]*models.Like, error) {
	post, err := s.get(ctx, req, postID, authz.ActionView)
	if err != nil {
		return nil, err
	}

	if !req.IsStaff && req.ID != post.UserID {
		liked, err := s.l.Exists(ctx, req.ID, models.LikeTargetPost, post.ID)
		if err != nil {
			return nil, err
		}
		if !liked {
			return nil, apperr.Denied(string(authz.ReasonNotOwner))
		}
	}

	return s.l.ListByTarget(ctx, models.LikeTargetPost, post.ID)
}

func (s *postService) Comments(ctx context.Context, req authz.Requester, postID int64) ([]*models.Comment, error) {
	post, err := s.get(ctx, req, postID, authz.ActionView)
	if err != nil {
		return nil, err
	}
	return s.c.ListByPostID(ctx, post.ID)
}

func (s *postService) AddComment(ctx context.Context, req authz.Requester, postID int64, text string) (*models.Comment, error) {
	if text == "" {
		return nil, apperr.Validation("text", "comment text is required")
	}
	if len(text) > 2200 {
		return nil, apperr.Validation("text", "comment is too long")
	}

	// Commenting follows the like gate: open profiles accept comments
	// from any authenticated account, private ones from followers.
	post, err := s.get(ctx, req, postID, authz.ActionLike)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID: req.ID,
		PostID: post.ID,
		Text:   text,
	}

	commentID, err := s.c.Create(ctx, nil, comment)
	if err != nil {
		return nil, err
	}

	comment.ID = commentID
	return comment, nil
}
