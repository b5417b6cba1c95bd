package session

import (
	"errors"

	"github.com/park285/draughts-server/internal/draughts"
	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/notation"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

// Code maps an error returned by Manager to its wire code.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return draughtsdto.CodeNotFound
	case errors.Is(err, ErrFinished):
		return draughtsdto.CodeFinished
	case errors.Is(err, ErrTooManySessions):
		return draughtsdto.CodeTooManySessions
	case errors.Is(err, ErrConcurrentUpdate):
		return draughtsdto.CodeConcurrentUpdate
	case errors.Is(err, ErrInvalidInput):
		return draughtsdto.CodeBadRequest
	case errors.Is(err, notation.ErrBadNotation):
		return draughtsdto.CodeBadNotation
	case errors.Is(err, draughts.ErrIllegalMove):
		return draughtsdto.CodeIllegalMove
	case errors.Is(err, draughts.ErrInvariant):
		return draughtsdto.CodeInvariant
	default:
		return draughtsdto.CodeInternal
	}
}

// Describe renders err for clients. Internal failures get a generic message.
func Describe(cat *msgcat.Catalog, id string, err error) draughtsdto.DomainError {
	code := Code(err)
	data := map[string]any{"ID": id, "Detail": err.Error()}
	msg := cat.Text("error."+code, data)
	if msg == "error."+code {
		msg = err.Error()
		if code == draughtsdto.CodeInternal || code == draughtsdto.CodeInvariant {
			msg = code
		}
	}
	return draughtsdto.DomainError{
		Code:      code,
		Message:   msg,
		Retryable: code == draughtsdto.CodeConcurrentUpdate || code == draughtsdto.CodeTooManySessions,
	}
}
