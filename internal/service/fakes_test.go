package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/maheshrc27/pixelgram/internal/models"
)

// In-memory repository fakes. Each one keeps just enough state for the
// service paths under test.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[int64]*models.Profile
	nextID   int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[int64]*models.Profile{}, nextID: 1}
}

func (r *fakeProfileRepo) add(userID int64, status string) *models.Profile {
	profile := &models.Profile{ID: r.nextID, UserID: userID, Status: status}
	r.nextID++
	r.profiles[profile.ID] = profile
	return profile
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id int64) (*models.Profile, bool, error) {
	profile, ok := r.profiles[id]
	return profile, ok, nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			return profile, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeProfileRepo) Create(ctx context.Context, tx *sql.Tx, profile *models.Profile) (int64, error) {
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = profile
	return profile.ID, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) Search(ctx context.Context, query string, limit, offset int) ([]*models.Profile, int, error) {
	var out []*models.Profile
	for _, profile := range r.profiles {
		out = append(out, profile)
	}
	return out, len(out), nil
}

type followKey struct {
	profileID  int64
	followerID int64
}

type fakeFollowerRepo struct {
	pairs map[followKey]bool
}

func newFakeFollowerRepo() *fakeFollowerRepo {
	return &fakeFollowerRepo{pairs: map[followKey]bool{}}
}

func (r *fakeFollowerRepo) Exists(ctx context.Context, profileID, followerID int64) (bool, error) {
	return r.pairs[followKey{profileID, followerID}], nil
}

func (r *fakeFollowerRepo) Add(ctx context.Context, profileID, followerID int64) error {
	r.pairs[followKey{profileID, followerID}] = true
	return nil
}

func (r *fakeFollowerRepo) Remove(ctx context.Context, profileID, followerID int64) (bool, error) {
	key := followKey{profileID, followerID}
	existed := r.pairs[key]
	delete(r.pairs, key)
	return existed, nil
}

func (r *fakeFollowerRepo) ListFollowers(ctx context.Context, profileID int64) ([]*models.Profile, error) {
	return nil, nil
}

func (r *fakeFollowerRepo) ListFollowings(ctx context.Context, userID int64) ([]*models.Profile, error) {
	return nil, nil
}

type fakeOTPRepo struct {
	codes        map[string]string
	revoked      map[string]bool
	consumeCalls int
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: map[string]string{}, revoked: map[string]bool{}}
}

func (r *fakeOTPRepo) Set(ctx context.Context, email, code string) error {
	r.codes[email] = code
	return nil
}

func (r *fakeOTPRepo) Consume(ctx context.Context, email string) (string, bool, error) {
	r.consumeCalls++
	code, ok := r.codes[email]
	delete(r.codes, email)
	return code, ok, nil
}

func (r *fakeOTPRepo) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	r.revoked[token] = true
	return nil
}

func (r *fakeOTPRepo) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

type fakeStoryRepo struct {
	stories map[int64]*models.Story
	nextID  int64
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: map[int64]*models.Story{}, nextID: 1}
}

func (r *fakeStoryRepo) add(userID int64, createdAt time.Time) *models.Story {
	story := &models.Story{ID: r.nextID, UserID: userID, CreatedAt: createdAt}
	r.nextID++
	r.stories[story.ID] = story
	return story
}

func (r *fakeStoryRepo) GetByID(ctx context.Context, id int64) (*models.Story, bool, error) {
	story, ok := r.stories[id]
	return story, ok, nil
}

func (r *fakeStoryRepo) Create(ctx context.Context, tx *sql.Tx, story *models.Story) (int64, error) {
	story.ID = r.nextID
	r.nextID++
	r.stories[story.ID] = story
	return story.ID, nil
}

func (r *fakeStoryRepo) ListOpenActive(ctx context.Context, since time.Time, limit, offset int) ([]*models.Story, int, error) {
	var out []*models.Story
	for _, story := range r.stories {
		if story.CreatedAt.After(since) {
			out = append(out, story)
		}
	}
	return out, len(out), nil
}

func (r *fakeStoryRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Story, error) {
	return nil, nil
}

func (r *fakeStoryRepo) Remove(ctx context.Context, id int64) error {
	delete(r.stories, id)
	return nil
}

type fakePostRepo struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}, nextID: 1}
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	post, ok := r.posts[id]
	return post, ok, nil
}

func (r *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = post
	return post.ID, nil
}

func (r *fakePostRepo) ListOpen(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	return nil, 0, nil
}

func (r *fakePostRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	return nil, nil
}

func (r *fakePostRepo) UpdateCaption(ctx context.Context, id int64, caption string) error {
	if post, ok := r.posts[id]; ok {
		post.Caption = caption
	}
	return nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(r.posts, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*models.Comment{}, nextID: 1}
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, bool, error) {
	comment, ok := r.comments[id]
	return comment, ok, nil
}

func (r *fakeCommentRepo) Create(ctx context.Context, tx *sql.Tx, comment *models.Comment) (int64, error) {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	return comment.ID, nil
}

func (r *fakeCommentRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListByStoryID(ctx context.Context, storyID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, comment := range r.comments {
		if comment.StoryID == storyID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) UpdateText(ctx context.Context, id int64, text string) error {
	if comment, ok := r.comments[id]; ok {
		comment.Text = text
	}
	return nil
}

func (r *fakeCommentRepo) Remove(ctx context.Context, id int64) error {
	delete(r.comments, id)
	return nil
}

type fakeLikeRepo struct {
	likes  map[int64]*models.Like
	nextID int64
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[int64]*models.Like{}, nextID: 1}
}

func (r *fakeLikeRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, userID int64, target string, targetID int64) (*models.Like, bool, error) {
	return nil, false, nil
}

func (r *fakeLikeRepo) Create(ctx context.Context, tx *sql.Tx, like *models.Like) (int64, error) {
	like.ID = r.nextID
	r.nextID++
	r.likes[like.ID] = like
	return like.ID, nil
}

func (r *fakeLikeRepo) Remove(ctx context.Context, tx *sql.Tx, id int64) error {
	delete(r.likes, id)
	return nil
}

func (r *fakeLikeRepo) AdjustCounter(ctx context.Context, tx *sql.Tx, target string, targetID int64, delta int) error {
	return nil
}

func (r *fakeLikeRepo) ListByTarget(ctx context.Context, target string, targetID int64) ([]*models.Like, error) {
	var out []*models.Like
	for _, like := range r.likes {
		out = append(out, like)
	}
	return out, nil
}

func (r *fakeLikeRepo) Exists(ctx context.Context, userID int64, target string, targetID int64) (bool, error) {
	for _, like := range r.likes {
		if like.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) CountByTarget(ctx context.Context, target string, targetID int64) (int64, error) {
	return int64(len(r.likes)), nil
}

func (r *fakeLikeRepo) RepairCounters(ctx context.Context, target string) (int64, error) {
	return 0, nil
}

type fakeMessageRepo struct {
	messages map[int64]*models.DirectMessage
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[int64]*models.DirectMessage{}, nextID: 1}
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id int64) (*models.DirectMessage, bool, error) {
	message, ok := r.messages[id]
	return message, ok, nil
}

func (r *fakeMessageRepo) Create(ctx context.Context, tx *sql.Tx, message *models.DirectMessage) (int64, error) {
	message.ID = r.nextID
	r.nextID++
	r.messages[message.ID] = message
	return message.ID, nil
}

func (r *fakeMessageRepo) ListConversation(ctx context.Context, userA, userB int64) ([]*models.DirectMessage, error) {
	var out []*models.DirectMessage
	for _, message := range r.messages {
		if (message.SenderID == userA && message.ReceiverID == userB) ||
			(message.SenderID == userB && message.ReceiverID == userA) {
			out = append(out, message)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateText(ctx context.Context, id int64, text string) error {
	if message, ok := r.messages[id]; ok {
		message.Text = text
	}
	return nil
}

func (r *fakeMessageRepo) Remove(ctx context.Context, id int64) error {
	delete(r.messages, id)
	return nil
}
