package draughtsdto

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move is a single step or jump. Notation is filled by the server for display.
type Move struct {
	From     Square  `json:"from"`
	To       Square  `json:"to"`
	Captured *Square `json:"captured,omitempty"`
	Notation string  `json:"notation,omitempty"`
}

// MoveSummary is the result of applying one move.
type MoveSummary struct {
	State    *SessionState `json:"state"`
	Move     Move          `json:"move"`
	TurnOver bool          `json:"turn_over"`
	Finished bool          `json:"finished"`
}
