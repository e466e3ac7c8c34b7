package interpret

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	CHARACTER_TOKEN        TokenType = 0
	CONTROL_SEQUENCE_TOKEN TokenType = 1
	PARAMETER_TOKEN        TokenType = 2
)

// Token is an immutable lexical unit. Which fields are meaningful
// depends on Type: Char and Category for characters, Name for control
// sequences, Char (the marker) and Index for parameters.
type Token struct {
	Type     TokenType
	Char     rune
	Category Category
	Name     string
	Index    uint8
}

func Character(char rune, category Category) Token {
	return Token{Type: CHARACTER_TOKEN, Char: char, Category: category}
}

func ControlSequence(name string) Token {
	return Token{Type: CONTROL_SEQUENCE_TOKEN, Name: name}
}

func Parameter(marker rune, index uint8) Token {
	return Token{Type: PARAMETER_TOKEN, Char: marker, Index: index}
}

// Is reports whether t is a character token of the given category.
func (t Token) Is(category Category) bool {
	return t.Type == CHARACTER_TOKEN && t.Category == category
}

func (t Token) String() string {
	switch t.Type {
	case CHARACTER_TOKEN:
		return string(t.Char)
	case CONTROL_SEQUENCE_TOKEN:
		return t.Name
	case PARAMETER_TOKEN:
		if t.Index == 0 {
			return string(t.Char)
		}
		return string(t.Char) + strconv.Itoa(int(t.Index))
	default:
		return fmt.Sprintf("token(%d)", t.Type)
	}
}
