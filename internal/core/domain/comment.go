package domain

import "time"

// Comment is the leaf of the ownership chain. Its game and author must exist
// at creation time; the references are not re-validated afterwards.
type Comment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	GameID    string    `json:"gameId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"created_at"`
}
