package interpret

import (
	"errors"
	"io"

	"github.com/ian-shakespeare/libtex/pkg/runes"
)

// Input is one named character source. It tracks the line and column of
// the next character to be read.
type Input struct {
	Name   string
	Line   int
	Column int

	reader *runes.Reader
	closer io.Closer
}

// NewInput wraps r. If r is also an io.Closer it is closed by Close.
func NewInput(name string, r io.Reader) *Input {
	in := &Input{
		Name:   name,
		Line:   1,
		Column: 1,
		reader: runes.NewReader(r),
	}
	if closer, ok := r.(io.Closer); ok {
		in.closer = closer
	}
	return in
}

func (in *Input) Location() Location {
	return Location{Name: in.Name, Line: in.Line, Column: in.Column}
}

// Next consumes one character.
func (in *Input) Next() (rune, error) {
	char, err := in.reader.NextRune()
	if err != nil {
		return 0, in.wrap(err)
	}
	if char == '\n' {
		in.Line++
		in.Column = 1
	} else {
		in.Column++
	}
	return char, nil
}

// Peek returns the next character without consuming it.
func (in *Input) Peek() (rune, error) {
	char, err := in.reader.PeekRune()
	if err != nil {
		return 0, in.wrap(err)
	}
	return char, nil
}

func (in *Input) Close() error {
	if in.closer == nil {
		return nil
	}
	err := in.closer.Close()
	in.closer = nil
	return err
}

func (in *Input) wrap(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return endOfFile(in.Location())
	case errors.Is(err, runes.ErrInvalid):
		return NewError(UNKNOWN_TOKEN_ERROR, err.Error()).At(in.Location()).Wrap(err)
	default:
		return NewError(UNKNOWN_ERROR, err.Error()).At(in.Location()).Wrap(err)
	}
}
