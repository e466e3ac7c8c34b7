package interpret

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ian-shakespeare/libtex/internal/pattern"
)

// A source is one level of the input stack: either a tokenizer over a
// character input, or a list of tokens already produced.
type source struct {
	tokenizer *Tokenizer
	tokens    []Token
}

// State drives the read-execute loop. It owns the input stack and the
// group stack; nothing in it is safe for concurrent use.
type State struct {
	// BaseDir is the directory relative file names are resolved
	// against. It is set from the first included file if empty.
	BaseDir string

	// Logger receives a trace of executed tokens and definitions.
	Logger *log.Logger

	// Output, if set, receives every character token that has no other
	// effect.
	Output func(Token) error

	groups  *Groups
	sources []*source
}

func NewState() *State {
	return &State{
		Logger: log.New(io.Discard, "", 0),
		groups: NewGroups(),
	}
}

func (s *State) Groups() *Groups {
	return s.groups
}

// PushInput makes r the current input. It is read to the end before
// the input below it continues.
func (s *State) PushInput(name string, r io.Reader) {
	input := NewInput(name, r)
	s.sources = append(s.sources, &source{tokenizer: NewTokenizer(input, s.groups)})
}

func (s *State) PushString(name, text string) {
	s.PushInput(name, strings.NewReader(text))
}

// Include opens a file and makes it the current input. A name without
// an extension that does not exist is retried with ".tex".
func (s *State) Include(fileName string) error {
	path := fileName
	if s.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, path)
	}

	fd, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && filepath.Ext(path) == "" {
		path += ".tex"
		fd, err = os.Open(path)
	}
	if err != nil {
		return s.errorf(UNKNOWN_ERROR, "cannot open %s", fileName).Wrap(err)
	}
	s.PushInput(filepath.Base(path), fd)

	if s.BaseDir == "" {
		if abs, err := filepath.Abs(path); err == nil {
			s.BaseDir = filepath.Dir(abs)
		}
	}
	return nil
}

// PushBack arranges for tokens to be read next, in order.
func (s *State) PushBack(tokens ...Token) {
	if len(tokens) == 0 {
		return
	}
	for n := len(s.sources); n > 0; n-- {
		top := s.sources[n-1]
		if top.tokenizer != nil || len(top.tokens) > 0 {
			break
		}
		s.sources = s.sources[:n-1]
	}
	list := make([]Token, len(tokens))
	copy(list, tokens)
	s.sources = append(s.sources, &source{tokens: list})
}

// NextToken reads from the top of the input stack. An exhausted source
// is closed and reading continues with the one below; END_OF_FILE is
// returned only when every source is exhausted.
func (s *State) NextToken() (Token, error) {
	for len(s.sources) > 0 {
		top := s.sources[len(s.sources)-1]
		if top.tokenizer == nil {
			if len(top.tokens) > 0 {
				token := top.tokens[0]
				top.tokens = top.tokens[1:]
				return token, nil
			}
			s.sources = s.sources[:len(s.sources)-1]
			continue
		}

		token, err := top.tokenizer.NextToken()
		if !errors.Is(err, io.EOF) {
			return token, err
		}
		s.sources = s.sources[:len(s.sources)-1]
		input := top.tokenizer.Input()
		s.tracef("end of %s", input.Name)
		if err := input.Close(); err != nil {
			return Token{}, NewErrorf(UNKNOWN_ERROR, "closing %s: %s", input.Name, err).Wrap(err)
		}
	}
	return Token{}, NewError(END_OF_FILE, "end of input")
}

// Run executes tokens until all input is exhausted or an error occurs.
func (s *State) Run() error {
	for {
		token, err := s.NextToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.Execute(token); err != nil {
			return err
		}
	}
}

func (s *State) Execute(token Token) error {
	switch token.Type {
	case CONTROL_SEQUENCE_TOKEN:
		m, ok := s.groups.Macro(token.Name)
		if !ok {
			return s.errorf(UNKNOWN_MACRO_ERROR, "undefined control sequence %s", token.Name)
		}
		s.tracef("%s", token.Name)
		return s.run(m)
	case PARAMETER_TOKEN:
		return s.errorf(UNKNOWN_ERROR, "stray parameter %s", token)
	}

	s.tracef("%q %s", token.Char, token.Category)
	switch token.Category {
	case BEGIN_GROUP:
		s.groups.Push()
	case END_GROUP:
		if err := s.groups.Pop(); err != nil {
			return s.locate(err)
		}
	default:
		if s.Output != nil {
			return s.Output(token)
		}
	}
	return nil
}

// Define binds m in the current group, or globally.
func (s *State) Define(m Macro, global bool) {
	if m.Type == USER_MACRO && m.ParameterCount == 0 {
		m.ParameterCount = countParameters(m.Delimiters())
	}
	s.groups.SetMacro(m, global)
	s.tracef("defined %s%s->%s", m.Name, joinTokens(m.Pattern), joinTokens(m.Replacement))
}

// Close closes every input that is still open.
func (s *State) Close() (err error) {
	for _, src := range s.sources {
		if src.tokenizer == nil {
			continue
		}
		if e2 := src.tokenizer.Input().Close(); err == nil {
			err = e2
		}
	}
	s.sources = nil
	return
}

func (s *State) run(m Macro) error {
	switch m.Type {
	case PRIMITIVE_MACRO:
		return s.primitive(m.Primitive, false)
	case USER_MACRO:
		return s.expand(m)
	default:
		return s.errorf(UNKNOWN_ERROR, "macro %s has unknown type %d", m.Name, m.Type)
	}
}

// expand reads just enough tokens to match m's parameter pattern and
// puts the substituted replacement text, followed by any tokens read
// beyond the match, back in front of the input.
func (s *State) expand(m Macro) error {
	sections := m.sections()
	actual := []Token{}
	final := false

	for {
		result, status := pattern.Match(sections, actual, final)
		switch status {
		case pattern.MATCHED:
			if t, ok := illegalParameter(m.Body(), len(result.Arguments)); ok {
				return s.errorf(UNKNOWN_ERROR, "illegal parameter number %s in %s", t, m.Name)
			}
			body := substitute(m.Body(), result.Arguments)
			s.PushBack(append(body, actual[result.Consumed:]...)...)
			return nil
		case pattern.NO_MATCH:
			return s.errorf(UNKNOWN_ERROR, "use of %s does not match its definition", m.Name)
		}

		token, err := s.NextToken()
		if errors.Is(err, io.EOF) {
			final = true
			continue
		}
		if err != nil {
			return err
		}
		actual = append(actual, token)
	}
}

func (s *State) location() (Location, bool) {
	for i := len(s.sources) - 1; i >= 0; i-- {
		if tokenizer := s.sources[i].tokenizer; tokenizer != nil {
			return tokenizer.Input().Location(), true
		}
	}
	return Location{}, false
}

func (s *State) errorf(kind ErrorKind, format string, a ...any) *Error {
	err := NewErrorf(kind, format, a...)
	if at, ok := s.location(); ok {
		err.At(at)
	}
	return err
}

func (s *State) locate(err error) error {
	var e *Error
	if errors.As(err, &e) {
		if at, ok := s.location(); ok {
			e.At(at)
		}
	}
	return err
}

func (s *State) tracef(format string, a ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, a...)
	}
}

func joinTokens(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
