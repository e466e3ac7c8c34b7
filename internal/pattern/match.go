package pattern

import "github.com/ian-shakespeare/libtex/pkg/array"

type Status int

const (
	MATCHED   Status = 0
	NO_MATCH  Status = 1
	NEED_MORE Status = 2
)

func (s Status) String() string {
	switch s {
	case MATCHED:
		return "matched"
	case NO_MATCH:
		return "no match"
	case NEED_MORE:
		return "need more"
	default:
		return "unknown"
	}
}

type Result[T comparable] struct {
	// Arguments[i] holds the tokens bound to parameter i+1.
	Arguments [][]T

	// Consumed is the length of the matched prefix of the actual tokens.
	Consumed int
}

type span struct {
	start, length int
}

type matcher[T comparable] struct {
	sections []Section[T]
	actual   []T
	final    bool
	spans    []span
	consumed int

	// failed holds the (section, position) pairs known not to match.
	failed map[[2]int]bool
}

// Match binds a prefix of actual to sections.
//
// When final is false, actual is taken to be only the start of a longer
// stream: if the answer could change once more tokens are visible, Match
// returns NEED_MORE instead of guessing. When final is true, actual is
// all there is and the answer is MATCHED or NO_MATCH.
//
// Constant sections must match token for token and are never revisited.
// Runs of adjacent slots are resolved in the order of Lengths: the
// smallest total under which the rest of the pattern matches wins, split
// as the first assignment Split gives for it.
func Match[T comparable](sections []Section[T], actual []T, final bool) (Result[T], Status) {
	minimum := array.Sum(sections, Section[T].MinLength)
	if final && len(actual) < minimum {
		return Result[T]{}, NO_MATCH
	}

	m := &matcher[T]{
		sections: sections,
		actual:   actual,
		final:    final,
		spans:    make([]span, len(sections)),
		failed:   make(map[[2]int]bool),
	}
	status := m.from(0, 0)
	if status != MATCHED {
		return Result[T]{}, status
	}

	result := Result[T]{
		Arguments: make([][]T, Parameters(sections)),
		Consumed:  m.consumed,
	}
	for i, s := range sections {
		if s.Type != PARAMETER_SECTION {
			continue
		}
		sp := m.spans[i]
		arg := make([]T, sp.length)
		copy(arg, actual[sp.start:sp.start+sp.length])
		result.Arguments[s.Index-1] = arg
	}
	return result, MATCHED
}

func (m *matcher[T]) from(i, pos int) Status {
	if i == len(m.sections) {
		m.consumed = pos
		return MATCHED
	}
	key := [2]int{i, pos}
	if m.failed[key] {
		return NO_MATCH
	}
	status := m.section(i, pos)
	if status == NO_MATCH {
		m.failed[key] = true
	}
	return status
}

func (m *matcher[T]) section(i, pos int) Status {
	s := m.sections[i]
	if s.Type == CONSTANTS_SECTION {
		return m.constants(i, pos)
	}

	end := i
	for end < len(m.sections) && m.sections[end].Type == PARAMETER_SECTION {
		end++
	}
	mins := make([]int, end-i)
	for j := range mins {
		mins[j] = m.sections[i+j].MinLength()
	}
	base := array.Sum(mins, identity)
	rest := array.Sum(m.sections[end:], Section[T].MinLength)
	budget := len(m.actual) - pos - rest

	// The rest of the pattern only sees where the run ends, so each
	// total is tried once and bound to its first split.
	for extra := 0; base+extra <= budget; extra++ {
		switch m.from(end, pos+base+extra) {
		case MATCHED:
			for lengths := range Split(mins, extra) {
				next := pos
				for j, n := range lengths {
					m.spans[i+j] = span{next, n}
					next += n
				}
				break
			}
			return MATCHED
		case NEED_MORE:
			return NEED_MORE
		}
	}

	// A longer assignment may still work once more tokens arrive.
	if !m.final {
		return NEED_MORE
	}
	return NO_MATCH
}

func (m *matcher[T]) constants(i, pos int) Status {
	want := m.sections[i].Constants
	have := m.actual[pos:]
	if len(have) < len(want) {
		if !m.final && array.HasPrefix(want, have) {
			return NEED_MORE
		}
		return NO_MATCH
	}
	if !array.HasPrefix(have, want) {
		return NO_MATCH
	}
	m.spans[i] = span{pos, len(want)}
	return m.from(i+1, pos+len(want))
}
