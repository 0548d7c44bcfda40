package domain

import "time"

// Developer is a game studio. Exactly one user owns it; the owner reference
// is validated at creation time only.
type Developer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Founder      string    `json:"founder"`
	Founded      time.Time `json:"founded"`
	Headquarters string    `json:"headquarters"`
	OwnerUserID  string    `json:"userId"`
	Photo        Photo     `json:"photo"`
	Description  string    `json:"description"`
}
