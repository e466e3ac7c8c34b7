package runes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInvalid is matched by every DecodeError.
var ErrInvalid = errors.New("invalid utf-8")

// DecodeError reports a malformed byte sequence and the byte offset of
// the sequence's leading byte.
type DecodeError struct {
	Offset  int
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d: %s", e.Offset, e.Message)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalid
}

// Smallest scalar that needs n bytes, used to reject overlong encodings.
var minScalar = [...]rune{2: 0x80, 3: 0x800, 4: 0x10000}

// Reader decodes a byte stream into Unicode scalars, with lookahead.
// Once a decode error is seen, every further read returns it.
type Reader struct {
	input   *bufio.Reader
	offset  int
	pending []rune
	err     error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{input: bufio.NewReader(r)}
}

// NextRune consumes and returns the next scalar. At the end of the
// stream it returns io.EOF.
func (r *Reader) NextRune() (rune, error) {
	if err := r.fill(1); err != nil {
		return 0, err
	}
	char := r.pending[0]
	r.pending = r.pending[1:]
	return char, nil
}

// PeekRune returns the next scalar without consuming it.
func (r *Reader) PeekRune() (rune, error) {
	if err := r.fill(1); err != nil {
		return 0, err
	}
	return r.pending[0], nil
}

// PeekRunes returns the next n scalars without consuming them. It fails
// with io.EOF if fewer than n remain.
func (r *Reader) PeekRunes(n int) ([]rune, error) {
	if n < 1 {
		return nil, nil
	}
	if err := r.fill(n); err != nil {
		return nil, err
	}
	word := make([]rune, n)
	copy(word, r.pending)
	return word, nil
}

func (r *Reader) fill(n int) error {
	for len(r.pending) < n {
		if r.err != nil {
			return r.err
		}
		char, err := r.decode()
		if err != nil {
			r.err = err
			return err
		}
		r.pending = append(r.pending, char)
	}
	return nil
}

func (r *Reader) decode() (rune, error) {
	lead, err := r.input.ReadByte()
	if err != nil {
		return 0, err
	}
	start := r.offset
	r.offset++

	if lead < utf8.RuneSelf {
		return rune(lead), nil
	}

	var (
		size  int
		value rune
	)
	switch {
	case lead&0xC0 == 0x80:
		return 0, &DecodeError{start, fmt.Sprintf("unexpected continuation byte %#02x", lead)}
	case lead&0xE0 == 0xC0:
		size, value = 2, rune(lead&0x1F)
	case lead&0xF0 == 0xE0:
		size, value = 3, rune(lead&0x0F)
	case lead&0xF8 == 0xF0:
		size, value = 4, rune(lead&0x07)
	default:
		return 0, &DecodeError{start, fmt.Sprintf("invalid leading byte %#02x", lead)}
	}

	for i := 1; i < size; i++ {
		b, err := r.input.ReadByte()
		if errors.Is(err, io.EOF) {
			return 0, &DecodeError{start, "truncated sequence"}
		}
		if err != nil {
			return 0, err
		}
		if b < 0x80 || b > 0xBF {
			// The offending byte may start the next sequence.
			_ = r.input.UnreadByte()
			return 0, &DecodeError{start, fmt.Sprintf("continuation byte %#02x out of range", b)}
		}
		r.offset++
		value = value<<6 | rune(b&0x3F)
	}

	if value < minScalar[size] {
		return 0, &DecodeError{start, fmt.Sprintf("overlong encoding of U+%04X", value)}
	}
	if value > utf8.MaxRune || (value >= 0xD800 && value <= 0xDFFF) {
		return 0, &DecodeError{start, fmt.Sprintf("value %#x is not a scalar", value)}
	}
	return value, nil
}
