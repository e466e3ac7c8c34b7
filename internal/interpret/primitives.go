package interpret

import (
	"errors"
	"io"
	"strconv"

	"github.com/ian-shakespeare/libtex/pkg/array"
)

const maxParameters = 9

func (s *State) primitive(p Primitive, global bool) error {
	switch p {
	case DEF_PRIMITIVE:
		return s.def(global)
	case GDEF_PRIMITIVE:
		return s.def(true)
	case GLOBAL_PRIMITIVE:
		return s.global()
	case GLOBALDEFS_PRIMITIVE:
		return s.globalDefs()
	case CATCODE_PRIMITIVE:
		return s.catcode(global)
	case RELAX_PRIMITIVE:
		return nil
	case INPUT_PRIMITIVE:
		return s.input()
	default:
		return s.errorf(UNKNOWN_ERROR, "unknown primitive %d", p)
	}
}

// def scans a definition inside two throwaway groups, one for the
// parameter pattern and one for the replacement text, then binds it in
// the group that was current when def started.
func (s *State) def(global bool) error {
	depth := s.groups.Depth()
	s.groups.Push()
	m, err := s.scanDefinition()
	for s.groups.Depth() > depth {
		_ = s.groups.Pop()
	}
	if err != nil {
		return err
	}
	s.Define(m, global)
	return nil
}

func (s *State) scanDefinition() (Macro, error) {
	name, err := s.NextToken()
	if err != nil {
		return Macro{}, s.scanError(err, "definition")
	}
	if name.Type != CONTROL_SEQUENCE_TOKEN {
		return Macro{}, s.errorf(UNKNOWN_ERROR, "malformed definition: %q is not a control sequence", name.String())
	}

	m := Macro{Type: USER_MACRO, Name: name.Name}
	for {
		t, err := s.NextToken()
		if err != nil {
			return Macro{}, s.scanError(err, "parameters of "+m.Name)
		}
		m.Pattern = append(m.Pattern, t)
		if t.Is(BEGIN_GROUP) {
			break
		}
		if t.Type == PARAMETER_TOKEN {
			m.ParameterCount++
			if m.ParameterCount > maxParameters || t.Index != m.ParameterCount {
				return Macro{}, s.errorf(UNKNOWN_ERROR, "malformed definition of %s: parameters must be numbered consecutively", m.Name)
			}
		}
	}

	s.groups.Push()
	depth := 0
	for {
		t, err := s.NextToken()
		if err != nil {
			return Macro{}, s.scanError(err, "replacement text of "+m.Name)
		}
		m.Replacement = append(m.Replacement, t)
		if t.Is(BEGIN_GROUP) {
			depth++
		} else if t.Is(END_GROUP) {
			if depth == 0 {
				break
			}
			depth--
		}
	}

	if t, ok := illegalParameter(m.Body(), int(m.ParameterCount)); ok {
		return Macro{}, s.errorf(UNKNOWN_ERROR, "illegal parameter number %s in definition of %s", t, m.Name)
	}
	return m, nil
}

func (s *State) scanError(err error, what string) error {
	if errors.Is(err, io.EOF) {
		return NewErrorf(END_OF_FILE, "end of file while scanning %s", what).Wrap(err)
	}
	return err
}

// global applies the next assignment in the root group.
func (s *State) global() error {
	t, err := s.NextToken()
	if err != nil {
		return s.scanError(err, `\global`)
	}
	if t.Type == CONTROL_SEQUENCE_TOKEN {
		m, ok := s.groups.Macro(t.Name)
		if ok && m.Type == PRIMITIVE_MACRO {
			switch m.Primitive {
			case DEF_PRIMITIVE, GDEF_PRIMITIVE, GLOBAL_PRIMITIVE, CATCODE_PRIMITIVE:
				return s.primitive(m.Primitive, true)
			}
		}
	}
	return s.errorf(UNKNOWN_ERROR, `you can't use \global with %s`, t)
}

func (s *State) globalDefs() error {
	if err := s.skipEquals(); err != nil {
		return err
	}
	n, err := s.readNumber()
	if err != nil {
		return err
	}
	s.groups.SetGlobalDefs(n > 0)
	return nil
}

func (s *State) catcode(global bool) error {
	char, err := s.readCharCode()
	if err != nil {
		return err
	}
	if err := s.skipEquals(); err != nil {
		return err
	}
	n, err := s.readNumber()
	if err != nil {
		return err
	}
	if n < int(ESCAPE) || n > int(INVALID) {
		return s.errorf(PARSE_ERROR, "invalid category code %d", n)
	}
	s.groups.SetCategory(char, Category(n), global)
	return nil
}

// input reads a file name up to the next space or end of line.
func (s *State) input() error {
	t, err := s.nextNonSpace()
	name := []rune{}
	for err == nil {
		if t.Type != CHARACTER_TOKEN || t.Is(END_OF_LINE) || t.Is(SPACE) {
			if t.Type != CHARACTER_TOKEN {
				s.PushBack(t)
			}
			break
		}
		name = append(name, t.Char)
		t, err = s.NextToken()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if len(name) == 0 {
		return s.errorf(PARSE_ERROR, `missing file name for \input`)
	}
	return s.Include(string(name))
}

// readCharCode reads `c, `\c or a number.
func (s *State) readCharCode() (rune, error) {
	t, err := s.nextNonSpace()
	if err != nil {
		return 0, s.scanError(err, "character code")
	}
	if t.Type == CHARACTER_TOKEN && t.Char == '`' {
		t, err = s.NextToken()
		if err != nil {
			return 0, s.scanError(err, "character code")
		}
		switch t.Type {
		case CHARACTER_TOKEN:
			return t.Char, nil
		case CONTROL_SEQUENCE_TOKEN:
			name := []rune(t.Name)
			if len(name) == 1 {
				return name[0], nil
			}
			if len(name) == 2 && name[0] == '\\' {
				return name[1], nil
			}
		}
		return 0, s.errorf(PARSE_ERROR, "improper alphabetic constant %s", t)
	}

	s.PushBack(t)
	n, err := s.readNumber()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0x10FFFF {
		return 0, s.errorf(PARSE_ERROR, "character code %d out of range", n)
	}
	return rune(n), nil
}

// readNumber reads an optionally signed decimal integer. One space
// after the digits is consumed.
func (s *State) readNumber() (int, error) {
	t, err := s.nextNonSpace()
	if err != nil {
		return 0, s.scanError(err, "number")
	}

	negative := false
	for t.Type == CHARACTER_TOKEN && t.Category == OTHER && (t.Char == '-' || t.Char == '+') {
		if t.Char == '-' {
			negative = !negative
		}
		if t, err = s.nextNonSpace(); err != nil {
			return 0, s.scanError(err, "number")
		}
	}

	word := []rune{}
	for t.Type == CHARACTER_TOKEN && t.Category == OTHER && array.Contains(digits, t.Char) {
		word = append(word, t.Char)
		if t, err = s.NextToken(); err != nil {
			break
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	if err == nil && !t.Is(SPACE) {
		s.PushBack(t)
	}

	if len(word) == 0 {
		return 0, s.errorf(PARSE_ERROR, "missing number")
	}
	n, convErr := strconv.Atoi(string(word))
	if convErr != nil {
		return 0, s.errorf(PARSE_ERROR, "number %s too large", string(word)).Wrap(convErr)
	}
	if negative {
		n = -n
	}
	return n, nil
}

func (s *State) skipEquals() error {
	t, err := s.nextNonSpace()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if !(t.Type == CHARACTER_TOKEN && t.Category == OTHER && t.Char == '=') {
		s.PushBack(t)
	}
	return nil
}

func (s *State) nextNonSpace() (Token, error) {
	for {
		t, err := s.NextToken()
		if err != nil || !t.Is(SPACE) {
			return t, err
		}
	}
}
