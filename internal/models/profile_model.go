package models

import "time"

type Profile struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Username       string    `db:"username" json:"username"`
	Status         string    `db:"status" json:"status"` // open, private
	Bio            string    `db:"bio" json:"bio"`
	ProfilePicture string    `db:"profile_picture" json:"profile_picture"`
	WebsiteLink    string    `db:"website_link" json:"website_link"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Follower struct {
	ProfileID  int64     `db:"profile_id" json:"profile_id"`
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const (
	ProfileStatusOpen    = "open"
	ProfileStatusPrivate = "private"
)
