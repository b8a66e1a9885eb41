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

type MessageService interface {
	Send(ctx context.Context, req authz.Requester, profileID int64, creation transfer.MessageCreation, file *multipart.FileHeader) (*models.DirectMessage, error)
	SendToStory(ctx context.Context, req authz.Requester, storyID int64, text string, file *multipart.FileHeader) (*models.DirectMessage, error)
	Conversation(ctx context.Context, req authz.Requester, profileID int64) ([]*models.DirectMessage, error)
	Update(ctx context.Context, req authz.Requester, messageID int64, text string) (*models.DirectMessage, error)
	Remove(ctx context.Context, req authz.Requester, messageID int64) error
}

type messageService struct {
	dm repository.MessageRepository
	p  repository.ProfileRepository
	f  repository.FollowerRepository
	pr repository.PostRepository
	sr repository.StoryRepository
	m  MediaService
}

func NewMessageService(dm repository.MessageRepository, p repository.ProfileRepository, f repository.FollowerRepository, pr repository.PostRepository, sr repository.StoryRepository, m MediaService) MessageService {
	return &messageService{
		dm: dm,
		p:  p,
		f:  f,
		pr: pr,
		sr: sr,
		m:  m,
	}
}

// Send delivers a direct message to the profile's account, optionally
// anchored to a post or story. Self-messaging is always denied; private
// profiles accept messages from followers only.
func (s *messageService) Send(ctx context.Context, req authz.Requester, profileID int64, creation transfer.MessageCreation, file *multipart.FileHeader) (*models.DirectMessage, error) {
	if creation.Text == "" && file == nil {
		return nil, apperr.Validation("text", "message text or media is required")
	}
	if len(creation.Text) > 2200 {
		return nil, apperr.Validation("text", "message is too long")
	}
	if creation.PostID != 0 && creation.StoryID != 0 {
		return nil, apperr.Validation("message", "a message can reference a post or a story, not both")
	}

	profile, exists, err := s.p.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	tgt, err := contentTarget(ctx, s.p, s.f, req, profile.UserID)
	if err != nil {
		return nil, err
	}

	if err := decide(authz.Authorize(req, authz.ActionMessage, tgt)); err != nil {
		return nil, err
	}

	if creation.PostID != 0 {
		if _, exists, err := s.pr.GetByID(ctx, creation.PostID); err != nil {
			return nil, err
		} else if !exists {
			return nil, apperr.ErrNotFound
		}
	}
	if creation.StoryID != 0 {
		story, exists, err := s.sr.GetByID(ctx, creation.StoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.ErrNotFound
		}
		if story.Expired(time.Now()) && !req.IsStaff && req.ID != story.UserID {
			return nil, apperr.ErrNotFound
		}
	}

	message := &models.DirectMessage{
		SenderID:   req.ID,
		ReceiverID: profile.UserID,
		PostID:     creation.PostID,
		StoryID:    creation.StoryID,
		Text:       creation.Text,
	}

	if file != nil {
		url, kind, err := s.m.Upload(ctx, file)
		if err != nil {
			return nil, err
		}
		switch kind {
		case MediaKindImage:
			message.ImageURL = url
		case MediaKindVideo:
			message.VideoURL = url
		}
	}

	messageID, err := s.dm.Create(ctx, nil, message)
	if err != nil {
		return nil, err
	}

	message.ID = messageID
	return message, nil
}

// SendToStory replies to a story in the owner's direct messages.
func (s *messageService) SendToStory(ctx context.Context, req authz.Requester, storyID int64, text string, file *multipart.FileHeader) (*models.DirectMessage, error) {
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

	profile, exists, err := s.p.GetByUserID(ctx, story.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	return s.Send(ctx, req, profile.ID, transfer.MessageCreation{Text: text, StoryID: storyID}, file)
}

// Conversation lists the requester's exchange with the profile's
// account, both directions.
func (s *messageService) Conversation(ctx context.Context, req authz.Requester, profileID int64) ([]*models.DirectMessage, error) {
	if req.Anonymous() {
		return nil, apperr.ErrAuthentication
	}

	profile, exists, err := s.p.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	return s.dm.ListConversation(ctx, req.ID, profile.UserID)
}

// get loads a message for mutation; only the sender may change or
// delete it (staff excepted).
func (s *messageService) get(ctx context.Context, req authz.Requester, messageID int64, action authz.Action) (*models.DirectMessage, error) {
	message, exists, err := s.dm.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	tgt := authz.Target{OwnerID: message.SenderID}
	if err := decide(authz.Authorize(req, action, tgt)); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messageService) Update(ctx context.Context, req authz.Requester, messageID int64, text string) (*models.DirectMessage, error) {
	if text == "" {
		return nil, apperr.Validation("text", "message text is required")
	}
	if len(text) > 2200 {
		return nil, apperr.Validation("text", "message is too long")
	}

	message, err := s.get(ctx, req, messageID, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := s.dm.UpdateText(ctx, message.ID, text); err != nil {
		return nil, err
	}

	message.Text = text
	return message, nil
}

func (s *messageService) Remove(ctx context.Context, req authz.Requester, messageID int64) error {
	message, err := s.get(ctx, req, messageID, authz.ActionDelete)
	if err != nil {
		return err
	}
	return s.dm.Remove(ctx, message.ID)
}
