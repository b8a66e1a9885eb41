package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
)

type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type LikeService interface {
	Toggle(ctx context.Context, req authz.Requester, target string, targetID int64) (*LikeResult, error)
}

type likeService struct {
	db *sql.DB
	l  repository.LikeRepository
	pr repository.PostRepository
	sr repository.StoryRepository
	cr repository.CommentRepository
	p  repository.ProfileRepository
	f  repository.FollowerRepository
}

func NewLikeService(db *sql.DB, l repository.LikeRepository, pr repository.PostRepository, sr repository.StoryRepository, cr repository.CommentRepository, p repository.ProfileRepository, f repository.FollowerRepository) LikeService {
	return &likeService{
		db: db,
		l:  l,
		pr: pr,
		sr: sr,
		cr: cr,
		p:  p,
		f:  f,
	}
}

// ownerOf resolves the liked entity's owning account.
func (s *likeService) ownerOf(ctx context.Context, req authz.Requester, target string, targetID int64) (int64, error) {
	switch target {
	case models.LikeTargetPost:
		post, exists, err := s.pr.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, apperr.ErrNotFound
		}
		return post.UserID, nil
	case models.LikeTargetStory:
		story, exists, err := s.sr.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, apperr.ErrNotFound
		}
		if story.Expired(time.Now()) && !req.IsStaff && req.ID != story.UserID {
			return 0, apperr.ErrNotFound
		}
		return story.UserID, nil
	case models.LikeTargetComment:
		comment, exists, err := s.cr.GetByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, apperr.ErrNotFound
		}
		return comment.UserID, nil
	}
	return 0, apperr.ErrNotFound
}

// Toggle flips the like state for (requester, target). The row check,
// row change and counter move happen in one transaction so concurrent
// toggles from the same account cannot double-create; an insert that
// still loses the race resolves as already-liked.
func (s *likeService) Toggle(ctx context.Context, req authz.Requester, target string, targetID int64) (*LikeResult, error) {
	ownerID, err := s.ownerOf(ctx, req, target, targetID)
	if err != nil {
		return nil, err
	}

	tgt, err := contentTarget(ctx, s.p, s.f, req, ownerID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, authz.ActionLike, tgt)); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	liked := false

	existing, found, err := s.l.GetForUpdate(ctx, tx, req.ID, target, targetID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if found {
		if err := s.l.Remove(ctx, tx, existing.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.l.AdjustCounter(ctx, tx, target, targetID, -1); err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		like := &models.Like{UserID: req.ID}
		switch target {
		case models.LikeTargetPost:
			like.PostID = targetID
		case models.LikeTargetStory:
			like.StoryID = targetID
		case models.LikeTargetComment:
			like.CommentID = targetID
		}

		if _, err := s.l.Create(ctx, tx, like); err != nil {
			tx.Rollback()
			if errors.Is(err, repository.ErrDuplicate) {
				// Lost a race against ourselves; the like exists.
				count, countErr := s.l.CountByTarget(ctx, target, targetID)
				if countErr != nil {
					return nil, countErr
				}
				return &LikeResult{Liked: true, LikeCount: count}, nil
			}
			return nil, err
		}
		if err := s.l.AdjustCounter(ctx, tx, target, targetID, 1); err != nil {
			tx.Rollback()
			return nil, err
		}
		liked = true
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	count, err := s.l.CountByTarget(ctx, target, targetID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: liked, LikeCount: count}, nil
}
