package service

import (
	"context"
	"testing"
	"time"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageFixture() (MessageService, *fakeMessageRepo, *fakeProfileRepo, *fakeFollowerRepo, *fakePostRepo) {
	messages := newFakeMessageRepo()
	profiles := newFakeProfileRepo()
	followers := newFakeFollowerRepo()
	posts := newFakePostRepo()
	s := NewMessageService(messages, profiles, followers, posts, newFakeStoryRepo(), nil)
	return s, messages, profiles, followers, posts
}

func TestSendMessageSelfDenied(t *testing.T) {
	s, _, profiles, _, _ := newMessageFixture()
	own := profiles.add(1, models.ProfileStatusOpen)

	_, err := s.Send(context.Background(), authz.Requester{ID: 1}, own.ID, transfer.MessageCreation{Text: "hi me"}, nil)
	assert.True(t, apperr.IsDenied(err))

	_, err = s.Send(context.Background(), authz.Requester{ID: 1, IsStaff: true}, own.ID, transfer.MessageCreation{Text: "hi me"}, nil)
	assert.True(t, apperr.IsDenied(err), "staff cannot message themselves either")
}

func TestSendMessagePrivateProfileRequiresFollow(t *testing.T) {
	s, messages, profiles, followers, _ := newMessageFixture()
	private := profiles.add(1, models.ProfileStatusPrivate)

	_, err := s.Send(context.Background(), authz.Requester{ID: 2}, private.ID, transfer.MessageCreation{Text: "hello"}, nil)
	assert.True(t, apperr.IsDenied(err))

	require.NoError(t, followers.Add(context.Background(), private.ID, 2))
	sent, err := s.Send(context.Background(), authz.Requester{ID: 2}, private.ID, transfer.MessageCreation{Text: "hello"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sent.SenderID)
	assert.Equal(t, int64(1), sent.ReceiverID)
	assert.Len(t, messages.messages, 1)
}

func TestSendMessageAnonymousRejected(t *testing.T) {
	s, _, profiles, _, _ := newMessageFixture()
	open := profiles.add(1, models.ProfileStatusOpen)

	_, err := s.Send(context.Background(), authz.Requester{}, open.ID, transfer.MessageCreation{Text: "hello"}, nil)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestSendMessageWithUnknownPostAnchor(t *testing.T) {
	s, _, profiles, _, _ := newMessageFixture()
	open := profiles.add(1, models.ProfileStatusOpen)

	_, err := s.Send(context.Background(), authz.Requester{ID: 2}, open.ID, transfer.MessageCreation{Text: "look", PostID: 42}, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSendMessageWithPostAnchor(t *testing.T) {
	s, _, profiles, _, posts := newMessageFixture()
	open := profiles.add(1, models.ProfileStatusOpen)
	postID, err := posts.Create(context.Background(), nil, &models.Post{UserID: 1})
	require.NoError(t, err)

	sent, err := s.Send(context.Background(), authz.Requester{ID: 2}, open.ID, transfer.MessageCreation{Text: "look", PostID: postID}, nil)
	require.NoError(t, err)
	assert.Equal(t, postID, sent.PostID)
}

func TestSendMessageRejectsBothAnchors(t *testing.T) {
	s, _, profiles, _, _ := newMessageFixture()
	open := profiles.add(1, models.ProfileStatusOpen)

	_, err := s.Send(context.Background(), authz.Requester{ID: 2}, open.ID, transfer.MessageCreation{Text: "hi", PostID: 1, StoryID: 2}, nil)

	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateMessageSenderOnly(t *testing.T) {
	s, messages, profiles, _, _ := newMessageFixture()
	open := profiles.add(1, models.ProfileStatusOpen)

	sent, err := s.Send(context.Background(), authz.Requester{ID: 2}, open.ID, transfer.MessageCreation{Text: "first"}, nil)
	require.NoError(t, err)

	// Not even the receiver may edit it.
	_, err = s.Update(context.Background(), authz.Requester{ID: 1}, sent.ID, "edited")
	assert.True(t, apperr.IsDenied(err))

	updated, err := s.Update(context.Background(), authz.Requester{ID: 2}, sent.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, "edited", messages.messages[sent.ID].Text)
}

func TestRemoveMessageSenderOnly(t *testing.T) {
	s, messages, profiles, _, _ := newMessageFixture()
	open := profiles.add(1, models.ProfileStatusOpen)

	sent, err := s.Send(context.Background(), authz.Requester{ID: 2}, open.ID, transfer.MessageCreation{Text: "oops"}, nil)
	require.NoError(t, err)

	err = s.Remove(context.Background(), authz.Requester{ID: 3}, sent.ID)
	assert.True(t, apperr.IsDenied(err))

	require.NoError(t, s.Remove(context.Background(), authz.Requester{ID: 2}, sent.ID))
	assert.Empty(t, messages.messages)
}

func TestSendToStoryReachesTheOwner(t *testing.T) {
	messages := newFakeMessageRepo()
	profiles := newFakeProfileRepo()
	stories := newFakeStoryRepo()
	s := NewMessageService(messages, profiles, newFakeFollowerRepo(), newFakePostRepo(), stories, nil)

	profiles.add(1, models.ProfileStatusOpen)
	story := stories.add(1, time.Now().Add(-time.Hour))

	sent, err := s.SendToStory(context.Background(), authz.Requester{ID: 2}, story.ID, "love this", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent.ReceiverID)
	assert.Equal(t, story.ID, sent.StoryID)

	// Replying to one's own story is still a self-message.
	_, err = s.SendToStory(context.Background(), authz.Requester{ID: 1}, story.ID, "hi me", nil)
	assert.True(t, apperr.IsDenied(err))
}

func TestSendToStoryExpired(t *testing.T) {
	messages := newFakeMessageRepo()
	profiles := newFakeProfileRepo()
	stories := newFakeStoryRepo()
	s := NewMessageService(messages, profiles, newFakeFollowerRepo(), newFakePostRepo(), stories, nil)

	profiles.add(1, models.ProfileStatusOpen)
	story := stories.add(1, time.Now().Add(-25*time.Hour))

	_, err := s.SendToStory(context.Background(), authz.Requester{ID: 2}, story.ID, "too late", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestConversationSeesBothDirections(t *testing.T) {
	s, _, profiles, _, _ := newMessageFixture()
	alice := profiles.add(1, models.ProfileStatusOpen)
	bob := profiles.add(2, models.ProfileStatusOpen)

	_, err := s.Send(context.Background(), authz.Requester{ID: 2}, alice.ID, transfer.MessageCreation{Text: "hi alice"}, nil)
	require.NoError(t, err)
	_, err = s.Send(context.Background(), authz.Requester{ID: 1}, bob.ID, transfer.MessageCreation{Text: "hi bob"}, nil)
	require.NoError(t, err)

	conversation, err := s.Conversation(context.Background(), authz.Requester{ID: 1}, bob.ID)
	require.NoError(t, err)
	assert.Len(t, conversation, 2)
}
