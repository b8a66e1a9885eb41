package models

import "time"

// Like is a join row keyed by (user, target) where exactly one of
// PostID, StoryID, CommentID is set. The pair carries a unique
// constraint per target column so the same user can never hold two
// likes on the same entity.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id,omitempty"`
	StoryID   int64     `db:"story_id" json:"story_id,omitempty"`
	CommentID int64     `db:"comment_id" json:"comment_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	LikeTargetPost    = "post"
	LikeTargetStory   = "story"
	LikeTargetComment = "comment"
)
