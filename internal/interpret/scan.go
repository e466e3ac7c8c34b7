package interpret

import (
	"errors"
	"io"
	"iter"
	"strconv"

	"github.com/ian-shakespeare/libtex/pkg/array"
)

var digits = []rune("0123456789")

// CategoryTable resolves the current category of a character.
type CategoryTable interface {
	Category(char rune) Category
}

// Tokenizer turns the characters of one Input into tokens. Categories
// are looked up as each character is read, so assignments made while
// tokenizing take effect immediately.
type Tokenizer struct {
	input *Input
	table CategoryTable
}

func NewTokenizer(input *Input, table CategoryTable) *Tokenizer {
	return &Tokenizer{
		input: input,
		table: table,
	}
}

func (t *Tokenizer) Input() *Input {
	return t.input
}

func (t *Tokenizer) NextToken() (Token, error) {
	for {
		c, err := t.input.Next()
		if err != nil {
			return Token{}, err
		}

		switch category := t.table.Category(c); category {
		case ESCAPE:
			return t.scanControlSequence()
		case ACTIVE:
			return ControlSequence(string(c)), nil
		case PARAMETER:
			return t.scanParameter(c)
		case COMMENT:
			if err := t.skipComment(); err != nil {
				return Token{}, err
			}
		default:
			return Character(c, category), nil
		}
	}
}

func (t *Tokenizer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			token, err := t.NextToken()
			if errors.Is(err, io.EOF) {
				break
			}
			if !yield(token, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// A letter starts a name made of the longest run of letters, and one
// space after it is dropped. Any other character is a name on its own.
func (t *Tokenizer) scanControlSequence() (Token, error) {
	c, err := t.input.Next()
	if err != nil {
		return Token{}, err
	}

	name := []rune{'\\', c}
	if t.table.Category(c) != LETTER {
		return ControlSequence(string(name)), nil
	}

	for {
		next, err := t.input.Peek()
		if err != nil || t.table.Category(next) != LETTER {
			break
		}
		_, _ = t.input.Next()
		name = append(name, next)
	}

	if next, err := t.input.Peek(); err == nil && t.table.Category(next) == SPACE {
		_, _ = t.input.Next()
	}

	return ControlSequence(string(name)), nil
}

func (t *Tokenizer) scanParameter(marker rune) (Token, error) {
	at := t.input.Location()
	word := []rune{}
	for {
		next, err := t.input.Peek()
		if err != nil || !array.Contains(digits, next) {
			break
		}
		_, _ = t.input.Next()
		word = append(word, next)
	}

	if len(word) == 0 {
		return Parameter(marker, 0), nil
	}
	index, err := strconv.ParseUint(string(word), 10, 8)
	if err != nil {
		return Token{}, NewErrorf(PARSE_ERROR, "parameter number %s%s out of range", string(marker), string(word)).At(at).Wrap(err)
	}
	return Parameter(marker, uint8(index)), nil
}

func (t *Tokenizer) skipComment() error {
	for {
		c, err := t.input.Next()
		if err != nil {
			return err
		}
		if t.table.Category(c) == END_OF_LINE {
			return nil
		}
	}
}
