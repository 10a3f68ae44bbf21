package models

type Post struct {
	ID      int64  `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Content string `db:"content" json:"content"`
}

// PostInput is the body of create and update requests.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
