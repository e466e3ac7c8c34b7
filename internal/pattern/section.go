package pattern

type SectionType int

const (
	CONSTANTS_SECTION SectionType = 0
	PARAMETER_SECTION SectionType = 1
)

// Section is one piece of a compiled parameter pattern: either a run of
// literal delimiter tokens or a single parameter slot.
type Section[T comparable] struct {
	Type      SectionType
	Constants []T

	// Index is the parameter number, starting at 1.
	Index int

	// NonEmpty is set for a slot that is not directly followed by a
	// delimiter; such a slot binds at least one token.
	NonEmpty bool
}

// MinLength is the fewest actual tokens the section can consume.
func (s Section[T]) MinLength() int {
	switch s.Type {
	case CONSTANTS_SECTION:
		return len(s.Constants)
	default:
		if s.NonEmpty {
			return 1
		}
		return 0
	}
}

// Compile splits a parameter pattern into sections. The param function
// reports whether a token is a parameter placeholder and, if so, its
// number.
func Compile[T comparable](pattern []T, param func(T) (int, bool)) []Section[T] {
	sections := []Section[T]{}
	for _, token := range pattern {
		if index, ok := param(token); ok {
			sections = append(sections, Section[T]{Type: PARAMETER_SECTION, Index: index})
			continue
		}
		last := len(sections) - 1
		if last >= 0 && sections[last].Type == CONSTANTS_SECTION {
			sections[last].Constants = append(sections[last].Constants, token)
		} else {
			sections = append(sections, Section[T]{Type: CONSTANTS_SECTION, Constants: []T{token}})
		}
	}

	for i := range sections {
		if sections[i].Type != PARAMETER_SECTION {
			continue
		}
		next := i + 1
		sections[i].NonEmpty = next == len(sections) || sections[next].Type == PARAMETER_SECTION
	}
	return sections
}

// Parameters returns the highest parameter number used by the sections.
func Parameters[T comparable](sections []Section[T]) int {
	n := 0
	for _, s := range sections {
		if s.Type == PARAMETER_SECTION && s.Index > n {
			n = s.Index
		}
	}
	return n
}
