package draughtsdto

// Error codes carried by DomainError and websocket error frames.
const (
	CodeBadRequest       = "bad_request"
	CodeBadNotation      = "bad_notation"
	CodeIllegalMove      = "illegal_move"
	CodeNotFound         = "session_not_found"
	CodeFinished         = "session_finished"
	CodeTooManySessions  = "too_many_sessions"
	CodeConcurrentUpdate = "concurrent_update"
	CodeInvariant        = "invariant"
	CodeInternal         = "internal"
)

type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "draughts service error"
}
