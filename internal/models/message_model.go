package models

import "time"

type DirectMessage struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	PostID     int64     `db:"post_id" json:"post_id,omitempty"`
	StoryID    int64     `db:"story_id" json:"story_id,omitempty"`
	Text       string    `db:"text" json:"text"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	VideoURL   string    `db:"video_url" json:"video_url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
