package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture() (CommentService, *fakeCommentRepo, *fakeProfileRepo) {
	comments := newFakeCommentRepo()
	profiles := newFakeProfileRepo()
	s := NewCommentService(comments, profiles, newFakeFollowerRepo())
	return s, comments, profiles
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	s, comments, profiles := newCommentFixture()
	profiles.add(1, models.ProfileStatusOpen)
	id, err := comments.Create(context.Background(), nil, &models.Comment{UserID: 1, PostID: 5, Text: "original"})
	require.NoError(t, err)

	_, err = s.Update(context.Background(), authz.Requester{ID: 2}, id, "vandalized")
	assert.True(t, apperr.IsDenied(err))

	updated, err := s.Update(context.Background(), authz.Requester{ID: 1}, id, "fixed typo")
	require.NoError(t, err)
	assert.Equal(t, "fixed typo", updated.Text)
}

func TestUpdateCommentEmptyText(t *testing.T) {
	s, comments, profiles := newCommentFixture()
	profiles.add(1, models.ProfileStatusOpen)
	id, err := comments.Create(context.Background(), nil, &models.Comment{UserID: 1, PostID: 5, Text: "original"})
	require.NoError(t, err)

	_, err = s.Update(context.Background(), authz.Requester{ID: 1}, id, "")

	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRemoveCommentStaffAllowed(t *testing.T) {
	s, comments, profiles := newCommentFixture()
	profiles.add(1, models.ProfileStatusOpen)
	id, err := comments.Create(context.Background(), nil, &models.Comment{UserID: 1, PostID: 5, Text: "spam"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), authz.Requester{ID: 9, IsStaff: true}, id))
	assert.Empty(t, comments.comments)
}

func TestRemoveUnknownComment(t *testing.T) {
	s, _, _ := newCommentFixture()

	err := s.Remove(context.Background(), authz.Requester{ID: 1}, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
