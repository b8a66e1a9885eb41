package models

import "time"

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id,omitempty"`
	StoryID   int64     `db:"story_id" json:"story_id,omitempty"`
	Text      string    `db:"text" json:"text"`
	LikeCount int64     `db:"like_count" json:"like_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
