package domain

// EntityType identifies a resource kind in the ownership chain
// User→Developer→Game→Comment.
type EntityType string

const (
	EntityUser      EntityType = "user"
	EntityDeveloper EntityType = "developer"
	EntityGame      EntityType = "game"
	EntityComment   EntityType = "comment"
)

// NotFoundError returns the sentinel not-found error for the entity type.
func (t EntityType) NotFoundError() error {
	switch t {
	case EntityUser:
		return ErrUserNotFound
	case EntityDeveloper:
		return ErrDeveloperNotFound
	case EntityGame:
		return ErrGameNotFound
	case EntityComment:
		return ErrCommentNotFound
	}
	return ErrIntegrity
}

// CascadeResult reports how many records each step of a cascade removed.
type CascadeResult struct {
	Users      int64 `json:"users"`
	Developers int64 `json:"developers"`
	Games      int64 `json:"games"`
	Comments   int64 `json:"comments"`
}

// Add merges the counts of other into r.
func (r *CascadeResult) Add(other CascadeResult) {
	r.Users += other.Users
	r.Developers += other.Developers
	r.Games += other.Games
	r.Comments += other.Comments
}
