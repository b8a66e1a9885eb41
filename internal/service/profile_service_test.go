package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (ProfileService, *fakeProfileRepo, *fakeFollowerRepo) {
	profiles := newFakeProfileRepo()
	followers := newFakeFollowerRepo()
	return NewProfileService(profiles, followers), profiles, followers
}

func TestGetPrivateProfileRequiresFollow(t *testing.T) {
	s, profiles, followers := newProfileFixture()
	private := profiles.add(1, models.ProfileStatusPrivate)

	_, err := s.Get(context.Background(), authz.Requester{ID: 2}, private.ID)
	assert.True(t, apperr.IsDenied(err))

	_, err = s.Get(context.Background(), authz.Requester{}, private.ID)
	assert.True(t, apperr.IsDenied(err), "anonymous view of a private profile is denied, not a 401")

	require.NoError(t, followers.Add(context.Background(), private.ID, 2))
	got, err := s.Get(context.Background(), authz.Requester{ID: 2}, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)
}

func TestGetOpenProfileAnonymous(t *testing.T) {
	s, profiles, _ := newProfileFixture()
	open := profiles.add(1, models.ProfileStatusOpen)

	got, err := s.Get(context.Background(), authz.Requester{}, open.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, got.ID)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	s, profiles, _ := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusOpen)

	_, err := s.Update(context.Background(), authz.Requester{ID: 2}, profile.ID, transfer.ProfileUpdate{Bio: "hacked"})
	assert.True(t, apperr.IsDenied(err))

	updated, err := s.Update(context.Background(), authz.Requester{ID: 1}, profile.ID, transfer.ProfileUpdate{Status: models.ProfileStatusPrivate})
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStatusPrivate, updated.Status)
}

func TestUpdateProfileRejectsUnknownStatus(t *testing.T) {
	s, profiles, _ := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusOpen)

	_, err := s.Update(context.Background(), authz.Requester{ID: 1}, profile.ID, transfer.ProfileUpdate{Status: "hidden"})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestFollowSelfDenied(t *testing.T) {
	s, profiles, _ := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusOpen)

	err := s.Follow(context.Background(), authz.Requester{ID: 1}, profile.ID)
	assert.True(t, apperr.IsDenied(err))

	// Staff get no exemption from the self-follow rule.
	err = s.Follow(context.Background(), authz.Requester{ID: 1, IsStaff: true}, profile.ID)
	assert.True(t, apperr.IsDenied(err))
}

func TestFollowDuplicateDenied(t *testing.T) {
	s, profiles, followers := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusOpen)

	require.NoError(t, s.Follow(context.Background(), authz.Requester{ID: 2}, profile.ID))
	exists, err := followers.Exists(context.Background(), profile.ID, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	err = s.Follow(context.Background(), authz.Requester{ID: 2}, profile.ID)
	assert.True(t, apperr.IsDenied(err))
}

func TestUnfollowWithoutFollowDenied(t *testing.T) {
	s, profiles, _ := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusOpen)

	err := s.Unfollow(context.Background(), authz.Requester{ID: 2}, profile.ID)
	assert.True(t, apperr.IsDenied(err))
}

func TestFollowThenUnfollowRoundTrip(t *testing.T) {
	s, profiles, followers := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusPrivate)

	// Following a private profile is allowed; only viewing is gated.
	require.NoError(t, s.Follow(context.Background(), authz.Requester{ID: 2}, profile.ID))
	require.NoError(t, s.Unfollow(context.Background(), authz.Requester{ID: 2}, profile.ID))

	exists, err := followers.Exists(context.Background(), profile.ID, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowAnonymousRejected(t *testing.T) {
	s, profiles, _ := newProfileFixture()
	profile := profiles.add(1, models.ProfileStatusOpen)

	err := s.Follow(context.Background(), authz.Requester{}, profile.ID)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestFollowUnknownProfile(t *testing.T) {
	s, _, _ := newProfileFixture()

	err := s.Follow(context.Background(), authz.Requester{ID: 2}, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
