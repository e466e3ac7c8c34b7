package interpret

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Category is a character's category code. The numeric values are the
// classic TeX catcodes.
type Category int

const (
	ESCAPE        Category = 0
	BEGIN_GROUP   Category = 1
	END_GROUP     Category = 2
	MATH_SHIFT    Category = 3
	ALIGNMENT_TAB Category = 4
	END_OF_LINE   Category = 5
	PARAMETER     Category = 6
	SUPERSCRIPT   Category = 7
	SUBSCRIPT     Category = 8
	IGNORED       Category = 9
	SPACE         Category = 10
	LETTER        Category = 11
	OTHER         Category = 12
	ACTIVE        Category = 13
	COMMENT       Category = 14
	INVALID       Category = 15
)

var categoryNames = [...]string{
	"escape",
	"begin_group",
	"end_group",
	"math_shift",
	"alignment_tab",
	"end_of_line",
	"parameter",
	"superscript",
	"subscript",
	"ignored",
	"space",
	"letter",
	"other",
	"active",
	"comment",
	"invalid",
}

// Categories of the ASCII range before any assignment. Everything else
// is OTHER.
var defaultCategories [128]Category

func init() {
	for i := range defaultCategories {
		ch := rune(i)
		switch {
		case ch == '\\':
			defaultCategories[i] = ESCAPE
		case ch == '{':
			defaultCategories[i] = BEGIN_GROUP
		case ch == '}':
			defaultCategories[i] = END_GROUP
		case ch == '$':
			defaultCategories[i] = MATH_SHIFT
		case ch == '&':
			defaultCategories[i] = ALIGNMENT_TAB
		case ch == '\n':
			defaultCategories[i] = END_OF_LINE
		case ch == '#':
			defaultCategories[i] = PARAMETER
		case ch == '^':
			defaultCategories[i] = SUPERSCRIPT
		case ch == '_':
			defaultCategories[i] = SUBSCRIPT
		case ch == 0:
			defaultCategories[i] = IGNORED
		case ch == ' ':
			defaultCategories[i] = SPACE
		case ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z'):
			defaultCategories[i] = LETTER
		case ch == '~':
			defaultCategories[i] = ACTIVE
		case ch == '%':
			defaultCategories[i] = COMMENT
		case ch == 0x7f:
			defaultCategories[i] = INVALID
		default:
			defaultCategories[i] = OTHER
		}
	}
}

// DefaultCategory returns the category a character has when nothing has
// been assigned to it.
func DefaultCategory(char rune) Category {
	if 0 <= char && int(char) < len(defaultCategories) {
		return defaultCategories[char]
	}
	return OTHER
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// ParseCategory accepts a category name as returned by String, or a
// catcode number between 0 and 15.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	if code, err := strconv.Atoi(name); err == nil {
		if code >= 0 && code < len(categoryNames) {
			return Category(code), nil
		}
		return 0, NewErrorf(PARSE_ERROR, "category code %d out of range", code)
	}
	return 0, NewErrorf(PARSE_ERROR, "unknown category %q", name)
}

func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return NewErrorf(PARSE_ERROR, "line %d: category must be a scalar", node.Line)
	}
	parsed, err := ParseCategory(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
