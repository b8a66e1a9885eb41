package models

import "time"

type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Caption   string    `db:"caption" json:"caption"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	VideoURL  string    `db:"video_url" json:"video_url"`
	LikeCount int64     `db:"like_count" json:"like_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StoryTTL is how long a story stays visible after creation. Expired
// stories are filtered out of reads, never deleted.
const StoryTTL = 24 * time.Hour

type Story struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Caption   string    `db:"caption" json:"caption"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	VideoURL  string    `db:"video_url" json:"video_url"`
	LikeCount int64     `db:"like_count" json:"like_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (s *Story) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > StoryTTL
}
