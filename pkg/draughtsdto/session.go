package draughtsdto

import "time"

// SessionState is the public view of one game session.
type SessionState struct {
	ID        string    `json:"id"`
	Rows      []string  `json:"rows"`
	Turn      string    `json:"turn"`
	Jumper    *Square   `json:"jumper,omitempty"`
	Rule      string    `json:"rule"`
	Status    string    `json:"status"`
	Winner    string    `json:"winner,omitempty"`
	Plies     int       `json:"plies"`
	LastMove  *Move     `json:"last_move,omitempty"`
	Movable   []Square  `json:"movable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
