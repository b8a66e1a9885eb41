package service

import (
	"context"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
)

// contentTarget builds the authz snapshot for content owned by ownerID:
// the owning profile's visibility plus the requester's membership in its
// follower set.
func contentTarget(ctx context.Context, p repository.ProfileRepository, f repository.FollowerRepository, req authz.Requester, ownerID int64) (authz.Target, error) {
	profile, exists, err := p.GetByUserID(ctx, ownerID)
	if err != nil {
		return authz.Target{}, err
	}
	if !exists {
		return authz.Target{}, apperr.ErrNotFound
	}

	tgt := authz.Target{
		OwnerID:     ownerID,
		ProfileOpen: profile.Status == models.ProfileStatusOpen,
	}

	if !req.Anonymous() && req.ID != ownerID {
		follows, err := f.Exists(ctx, profile.ID, req.ID)
		if err != nil {
			return authz.Target{}, err
		}
		tgt.RequesterFollows = follows
	}

	return tgt, nil
}

// decide maps a Deny decision onto the error taxonomy.
func decide(d authz.Decision) error {
	if d.Allowed {
		return nil
	}
	if d.Reason == authz.ReasonAnonymous {
		return apperr.ErrAuthentication
	}
	return apperr.Denied(string(d.Reason))
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
