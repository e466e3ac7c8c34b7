package interpret

import (
	"fmt"
	"io"
)

type ErrorKind int

const (
	UNKNOWN_ERROR       ErrorKind = 0
	UNKNOWN_TOKEN_ERROR ErrorKind = 1
	UNKNOWN_MACRO_ERROR ErrorKind = 2
	END_OF_FILE         ErrorKind = 3
	PARSE_ERROR         ErrorKind = 4
)

func (k ErrorKind) String() string {
	switch k {
	case UNKNOWN_TOKEN_ERROR:
		return "UnknownTokenError"
	case UNKNOWN_MACRO_ERROR:
		return "UnknownMacroError"
	case END_OF_FILE:
		return "EndOfFile"
	case PARSE_ERROR:
		return "ParseError"
	default:
		return "UnknownError"
	}
}

// Location is a position in a named input source. Line and Column start
// at 1.
type Location struct {
	Name   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Name, l.Line, l.Column)
}

type Error struct {
	Kind     ErrorKind
	Message  string
	Location *Location
	Err      error
}

// Sentinels for errors.Is; any *Error of the same kind matches.
var (
	ErrUnknown      = NewError(UNKNOWN_ERROR, "unknown error")
	ErrUnknownToken = NewError(UNKNOWN_TOKEN_ERROR, "unknown token")
	ErrUnknownMacro = NewError(UNKNOWN_MACRO_ERROR, "unknown macro")
	ErrEndOfFile    = NewError(END_OF_FILE, "end of file reached")
	ErrParse        = NewError(PARSE_ERROR, "parse error")
)

func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func NewErrorf(kind ErrorKind, format string, a ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, a...))
}

func endOfFile(at Location) *Error {
	return NewError(END_OF_FILE, "end of file reached").At(at)
}

// At sets the location unless one is already present.
func (e *Error) At(location Location) *Error {
	if e.Location == nil {
		e.Location = &location
	}
	return e
}

// Wrap records the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("%s [%s] %s", e.Location, e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind. An END_OF_FILE error also
// matches io.EOF.
func (e *Error) Is(target error) bool {
	if target == io.EOF {
		return e.Kind == END_OF_FILE
	}
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
