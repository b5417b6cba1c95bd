package draughtsdto

import "encoding/json"

// CreateGameRequest starts a session. Empty Rows selects the standard layout.
type CreateGameRequest struct {
	Rows []string `json:"rows,omitempty"`
	Turn string   `json:"turn,omitempty"`
	Rule string   `json:"rule,omitempty"`
}

// ApplyMoveRequest carries either a structured move or notation such as "c3-d4".
type ApplyMoveRequest struct {
	Move     *Move  `json:"move,omitempty"`
	Notation string `json:"notation,omitempty"`
}

type MovesRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MovesResponse struct {
	From  Square `json:"from"`
	Moves []Move `json:"moves"`
}

type CellResponse struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Cell string `json:"cell"`
}

type ResumeRequest struct {
	ID string `json:"id"`
}

// Frame is the websocket envelope.
type Frame struct {
	T string          `json:"t"`
	M json.RawMessage `json:"m,omitempty"`
}

// Websocket frame types.
const (
	FrameNew    = "new"
	FrameState  = "state"
	FrameMoves  = "moves"
	FrameApply  = "apply"
	FrameResume = "resume"
	FrameMoved  = "moved"
	FrameError  = "error"
)
