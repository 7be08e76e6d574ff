package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB. Likes and comments live embedded
// in the post document; the author's name and avatar are denormalized copies
// taken when the post was created and are never synced with later profile edits.
type Post struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User     string             `json:"user" bson:"user"` // ID of the user who created the post
	Text     string             `json:"text" bson:"text"`
	Name     string             `json:"name" bson:"name"`
	Avatar   string             `json:"avatar" bson:"avatar"`
	Likes    []Like             `json:"likes" bson:"likes"`
	Comments []Comment          `json:"comments" bson:"comments"`
	Date     time.Time          `json:"date" bson:"date"`
}

// Like marks a single user's like on a post. A user appears at most once
// in a post's likes array, newest first.
type Like struct {
	User string `json:"user" bson:"user"`
}

// Comment is a comment embedded in a post, newest first. Name and avatar are
// snapshots of the commenting user's profile at comment time.
type Comment struct {
	ID     primitive.ObjectID `json:"id" bson:"_id"`
	User   string             `json:"user" bson:"user"`
	Text   string             `json:"text" bson:"text"`
	Name   string             `json:"name" bson:"name"`
	Avatar string             `json:"avatar" bson:"avatar"`
	Date   time.Time          `json:"date" bson:"date"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
