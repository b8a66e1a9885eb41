package service

import (
	"context"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type ProfileService interface {
	Search(ctx context.Context, query string, page, pageSize int) (*transfer.Page, error)
	Get(ctx context.Context, req authz.Requester, profileID int64) (*models.Profile, error)
	Update(ctx context.Context, req authz.Requester, profileID int64, update transfer.ProfileUpdate) (*models.Profile, error)
	Followers(ctx context.Context, req authz.Requester, profileID int64) ([]*models.Profile, error)
	Followings(ctx context.Context, req authz.Requester, profileID int64) ([]*models.Profile, error)
	Follow(ctx context.Context, req authz.Requester, profileID int64) error
	Unfollow(ctx context.Context, req authz.Requester, profileID int64) error
}

type profileService struct {
	p repository.ProfileRepository
	f repository.FollowerRepository
}

func NewProfileService(p repository.ProfileRepository, f repository.FollowerRepository) ProfileService {
	return &profileService{
		p: p,
		f: f,
	}
}

func (s *profileService) Search(ctx context.Context, query string, page, pageSize int) (*transfer.Page, error) {
	page, pageSize = normalizePage(page, pageSize)

	profiles, total, err := s.p.Search(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &transfer.Page{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  profiles,
	}, nil
}

// load fetches the profile and the requester's relation to it in one
// step; every profile operation starts here.
func (s *profileService) load(ctx context.Context, req authz.Requester, profileID int64) (*models.Profile, authz.Target, error) {
	profile, exists, err := s.p.GetByID(ctx, profileID)
	if err != nil {
		return nil, authz.Target{}, err
	}
	if !exists {
		return nil, authz.Target{}, apperr.ErrNotFound
	}

	tgt := authz.Target{
		OwnerID:     profile.UserID,
		ProfileOpen: profile.Status == models.ProfileStatusOpen,
	}

	if !req.Anonymous() && req.ID != profile.UserID {
		follows, err := s.f.Exists(ctx, profile.ID, req.ID)
		if err != nil {
			return nil, authz.Target{}, err
		}
		tgt.RequesterFollows = follows
	}

	return profile, tgt, nil
}

func (s *profileService) Get(ctx context.Context, req authz.Requester, profileID int64) (*models.Profile, error) {
	profile, tgt, err := s.load(ctx, req, profileID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, authz.ActionView, tgt)); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *profileService) Update(ctx context.Context, req authz.Requester, profileID int64, update transfer.ProfileUpdate) (*models.Profile, error) {
	profile, tgt, err := s.load(ctx, req, profileID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, authz.ActionUpdate, tgt)); err != nil {
		return nil, err
	}

	if update.Status != "" {
		if update.Status != models.ProfileStatusOpen && update.Status != models.ProfileStatusPrivate {
			return nil, apperr.Validation("status", "status must be open or private")
		}
		profile.Status = update.Status
	}
	if update.Bio != "" {
		profile.Bio = update.Bio
	}
	if update.WebsiteLink != "" {
		profile.WebsiteLink = update.WebsiteLink
	}

	if err := s.p.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Followers(ctx context.Context, req authz.Requester, profileID int64) ([]*models.Profile, error) {
	profile, tgt, err := s.load(ctx, req, profileID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, authz.ActionView, tgt)); err != nil {
		return nil, err
	}

	return s.f.ListFollowers(ctx, profile.ID)
}

func (s *profileService) Followings(ctx context.Context, req authz.Requester, profileID int64) ([]*models.Profile, error) {
	profile, tgt, err := s.load(ctx, req, profileID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, authz.ActionView, tgt)); err != nil {
		return nil, err
	}

	return s.f.ListFollowings(ctx, profile.UserID)
}

func (s *profileService) Follow(ctx context.Context, req authz.Requester, profileID int64) error {
	profile, tgt, err := s.load(ctx, req, profileID)
	if err != nil {
		return err
	}

	if err := decide(authz.Authorize(req, authz.ActionFollow, tgt)); err != nil {
		return err
	}

	// A concurrent duplicate insert resolves to the desired state inside
	// the repository.
	return s.f.Add(ctx, profile.ID, req.ID)
}

func (s *profileService) Unfollow(ctx context.Context, req authz.Requester, profileID int64) error {
	profile, tgt, err := s.load(ctx, req, profileID)
	if err != nil {
		return err
	}

	if err := decide(authz.Authorize(req, authz.ActionUnfollow, tgt)); err != nil {
		return err
	}

	_, err = s.f.Remove(ctx, profile.ID, req.ID)
	return err
}
