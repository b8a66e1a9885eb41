package service

import (
	"context"
	"testing"
	"time"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/stretchr/testify/assert"
)

// The toggle's deny paths all resolve before the transaction opens, so
// they run against the fakes alone.

func newLikeFixture() (LikeService, *fakeStoryRepo, *fakeProfileRepo) {
	stories := newFakeStoryRepo()
	profiles := newFakeProfileRepo()
	s := NewLikeService(nil, newFakeLikeRepo(), newFakePostRepo(), stories, newFakeCommentRepo(), profiles, newFakeFollowerRepo())
	return s, stories, profiles
}

func TestToggleAnonymousRejected(t *testing.T) {
	s, stories, profiles := newLikeFixture()
	profiles.add(1, models.ProfileStatusOpen)
	story := stories.add(1, time.Now().Add(-time.Hour))

	_, err := s.Toggle(context.Background(), authz.Requester{}, models.LikeTargetStory, story.ID)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestTogglePrivateProfileNonFollower(t *testing.T) {
	s, stories, profiles := newLikeFixture()
	profiles.add(1, models.ProfileStatusPrivate)
	story := stories.add(1, time.Now().Add(-time.Hour))

	_, err := s.Toggle(context.Background(), authz.Requester{ID: 2}, models.LikeTargetStory, story.ID)
	assert.True(t, apperr.IsDenied(err))
}

func TestToggleUnknownTarget(t *testing.T) {
	s, _, _ := newLikeFixture()

	_, err := s.Toggle(context.Background(), authz.Requester{ID: 2}, models.LikeTargetPost, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestToggleExpiredStoryReadsAsAbsent(t *testing.T) {
	s, stories, profiles := newLikeFixture()
	profiles.add(1, models.ProfileStatusOpen)
	story := stories.add(1, time.Now().Add(-25*time.Hour))

	_, err := s.Toggle(context.Background(), authz.Requester{ID: 2}, models.LikeTargetStory, story.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
