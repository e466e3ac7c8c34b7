package interpret

import (
	"github.com/ian-shakespeare/libtex/internal/pattern"
	"github.com/ian-shakespeare/libtex/pkg/array"
)

type MacroType int

const (
	PRIMITIVE_MACRO MacroType = 0
	USER_MACRO      MacroType = 1
)

type Primitive int

const (
	DEF_PRIMITIVE        Primitive = 0
	GDEF_PRIMITIVE       Primitive = 1
	GLOBAL_PRIMITIVE     Primitive = 2
	GLOBALDEFS_PRIMITIVE Primitive = 3
	CATCODE_PRIMITIVE    Primitive = 4
	RELAX_PRIMITIVE      Primitive = 5
	INPUT_PRIMITIVE      Primitive = 6
)

var primitiveNames = map[Primitive]string{
	DEF_PRIMITIVE:        `\def`,
	GDEF_PRIMITIVE:       `\gdef`,
	GLOBAL_PRIMITIVE:     `\global`,
	GLOBALDEFS_PRIMITIVE: `\globaldefs`,
	CATCODE_PRIMITIVE:    `\catcode`,
	RELAX_PRIMITIVE:      `\relax`,
	INPUT_PRIMITIVE:      `\input`,
}

// Macro is either a primitive, identified by Primitive, or a user
// definition. For user macros Pattern ends with the BEGIN_GROUP token
// that closed it and Replacement with the matching END_GROUP token.
type Macro struct {
	Type      MacroType
	Name      string
	Primitive Primitive

	Pattern        []Token
	Replacement    []Token
	ParameterCount uint8
}

func primitiveMacros() []Macro {
	macros := make([]Macro, 0, len(primitiveNames))
	for p, name := range primitiveNames {
		macros = append(macros, Macro{Type: PRIMITIVE_MACRO, Name: name, Primitive: p})
	}
	return macros
}

// IsSafe reports whether m may run where side effects are not allowed.
// No such context exists yet, so every macro is safe.
func (m Macro) IsSafe(s *State) bool {
	return true
}

// Delimiters is the pattern without its closing brace.
func (m Macro) Delimiters() []Token {
	if n := len(m.Pattern); n > 0 && m.Pattern[n-1].Is(BEGIN_GROUP) {
		return m.Pattern[:n-1]
	}
	return m.Pattern
}

// Body is the replacement text without its closing brace.
func (m Macro) Body() []Token {
	if n := len(m.Replacement); n > 0 && m.Replacement[n-1].Is(END_GROUP) {
		return m.Replacement[:n-1]
	}
	return m.Replacement
}

func (m Macro) sections() []pattern.Section[Token] {
	return pattern.Compile(m.Delimiters(), parameterIndex)
}

// parameterIndex reports the slot number of a parameter token. A bare
// marker has no slot and matches literally.
func parameterIndex(t Token) (int, bool) {
	if t.Type != PARAMETER_TOKEN || t.Index == 0 {
		return 0, false
	}
	return int(t.Index), true
}

func isParameter(t Token) bool {
	_, ok := parameterIndex(t)
	return ok
}

// countParameters is the number of numbered parameters in a pattern.
func countParameters(tokens []Token) uint8 {
	return uint8(array.Count(tokens, isParameter))
}

// illegalParameter finds the first parameter in body numbered above
// count, skipping literal markers.
func illegalParameter(body []Token, count int) (Token, bool) {
	for i := 0; i < len(body); i++ {
		t := body[i]
		if t.Type != PARAMETER_TOKEN {
			continue
		}
		if t.Index == 0 {
			if i+1 < len(body) && body[i+1].Type == PARAMETER_TOKEN {
				i++
			}
			continue
		}
		if int(t.Index) > count {
			return t, true
		}
	}
	return Token{}, false
}

// substitute replaces each parameter in body with its argument. A
// doubled marker stands for the literal parameter token that follows it.
func substitute(body []Token, args [][]Token) []Token {
	out := make([]Token, 0, len(body))
	for i := 0; i < len(body); i++ {
		t := body[i]
		switch {
		case t.Type != PARAMETER_TOKEN:
			out = append(out, t)
		case t.Index == 0:
			if i+1 < len(body) && body[i+1].Type == PARAMETER_TOKEN {
				i++
				out = append(out, body[i])
			} else {
				out = append(out, t)
			}
		default:
			out = append(out, args[t.Index-1]...)
		}
	}
	return out
}
