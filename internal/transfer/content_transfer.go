package transfer

type PostUpdate struct {
	Caption string `json:"caption"`
}

type CommentCreation struct {
	Text string `json:"text"`
}

type CommentUpdate struct {
	Text string `json:"text"`
}

type MessageCreation struct {
	Text    string `json:"text"`
	PostID  int64  `json:"post_id"`
	StoryID int64  `json:"story_id"`
}

type MessageUpdate struct {
	Text string `json:"text"`
}

type ProfileUpdate struct {
	Status      string `json:"status"`
	Bio         string `json:"bio"`
	WebsiteLink string `json:"website_link"`
}

// Page is the list envelope returned by paginated endpoints.
type Page struct {
	Count    int         `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Results  interface{} `json:"results"`
}
