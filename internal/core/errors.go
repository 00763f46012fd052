package core

import (
	"errors"
	"fmt"

	"github.com/mikey-austin/sound_board/internal/catalog"
	"github.com/mikey-austin/sound_board/internal/favorites"
	"github.com/mikey-austin/sound_board/internal/player"
	"github.com/mikey-austin/sound_board/internal/session"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitRuntime    = 1
	ExitUsage      = 2
	ExitCredential = 3
	ExitAuth       = 4
	ExitNotFound   = 5
	ExitNetwork    = 6
)

// CLIError carries a user-visible message and exit code.
type CLIError struct {
	Code int
	Msg  string
	Err  error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *CLIError) Unwrap() error { return e.Err }

// WrapError creates a CLIError with an underlying error.
func WrapError(code int, msg string, err error) *CLIError {
	return &CLIError{Code: code, Msg: msg, Err: err}
}

// Usage creates a CLIError for invalid invocations.
func Usage(msg string) *CLIError {
	return &CLIError{Code: ExitUsage, Msg: msg}
}

// Describe maps domain errors onto user-visible messages and exit codes.
func Describe(err error) *CLIError {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	switch {
	case catalog.IsKind(err, catalog.KindNoCredential):
		return &CLIError{
			Code: ExitCredential,
			Msg:  "no API key configured, run 'sb config set-key' to add one",
			Err:  err,
		}
	case catalog.IsKind(err, catalog.KindAuth):
		return &CLIError{
			Code: ExitAuth,
			Msg:  "the API rejected your key, check it with 'sb config show'",
			Err:  err,
		}
	case catalog.IsKind(err, catalog.KindNotFound):
		return &CLIError{Code: ExitNotFound, Msg: "sound not found", Err: err}
	case catalog.IsKind(err, catalog.KindNetwork):
		return &CLIError{
			Code: ExitNetwork,
			Msg:  "could not reach the sound catalog, check your connection",
			Err:  err,
		}
	case errors.Is(err, session.ErrEmptyQuery):
		return &CLIError{Code: ExitUsage, Msg: "please enter a search term"}
	case errors.Is(err, player.ErrNoPreview):
		return &CLIError{Code: ExitNotFound, Msg: "no preview available for this sound"}
	case errors.Is(err, favorites.ErrNothingToExport):
		return &CLIError{Code: ExitUsage, Msg: "no favorites to export"}
	case errors.Is(err, favorites.ErrMalformedPayload):
		return &CLIError{Code: ExitUsage, Msg: "that file does not look like a favorites export", Err: err}
	default:
		return &CLIError{Code: ExitRuntime, Msg: "operation failed", Err: err}
	}
}

// ExitCode returns the CLI exit code from error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitRuntime
}
