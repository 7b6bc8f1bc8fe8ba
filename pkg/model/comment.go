package model

import "time"

type Comment struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	Text       string    `json:"text" bson:"text"`
	ItemID     string    `json:"item_id" bson:"item_id"`
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	CreatedAt  time.Time `json:"created" bson:"created_at"`
}

type CommentCreate struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type CommentView struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created"`
}

func (c *Comment) View() CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}
