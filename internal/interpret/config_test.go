package interpret_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ian-shakespeare/libtex/internal/interpret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("load", func(t *testing.T) {
		t.Parallel()

		config, err := interpret.LoadConfig(strings.NewReader(`
global_defs: true
categories:
  "@": letter
  "|": 0
  "^^M": ignored
`))
		require.NoError(t, err)
		assert.True(t, config.GlobalDefs)
		assert.Equal(t, map[string]interpret.Category{
			"@":   interpret.LETTER,
			"|":   interpret.ESCAPE,
			"^^M": interpret.IGNORED,
		}, config.Categories)

		s := interpret.NewState()
		config.Apply(s)
		assert.Equal(t, interpret.LETTER, s.Groups().Category('@'))
		assert.Equal(t, interpret.ESCAPE, s.Groups().Category('|'))
		assert.Equal(t, interpret.IGNORED, s.Groups().Category('\r'))
		assert.Equal(t, interpret.ESCAPE, s.Groups().Category('\\'))
		assert.True(t, s.Groups().GlobalDefs())
	})

	t.Run("applyBeforeInput", func(t *testing.T) {
		t.Parallel()

		config, err := interpret.LoadConfig(strings.NewReader(`categories: {"|": escape}`))
		require.NoError(t, err)

		s, out := newState("|def|x{ok}|x")
		config.Apply(s)
		require.NoError(t, s.Run())

		var b strings.Builder
		for _, token := range *out {
			b.WriteRune(token.Char)
		}
		assert.Equal(t, "ok", b.String())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		config, err := interpret.LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.False(t, config.GlobalDefs)
		assert.Empty(t, config.Categories)
	})

	inputs := []struct {
		name string
		yaml string
	}{
		{"unknownCategory", `categories: {"@": vowel}`},
		{"categoryOutOfRange", `categories: {"@": 16}`},
		{"longKey", `categories: {"ab": letter}`},
		{"nonScalarCategory", `categories: {"@": [letter]}`},
		{"unknownField", `colors: {"@": letter}`},
	}

	for _, input := range inputs {
		t.Run(input.name, func(t *testing.T) {
			t.Parallel()

			_, err := interpret.LoadConfig(strings.NewReader(input.yaml))
			assert.ErrorIs(t, err, interpret.ErrParse)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := interpret.DefaultConfig()
	assert.False(t, config.GlobalDefs)
	assert.Len(t, config.Categories, 128)

	expected := map[string]interpret.Category{
		"\\":  interpret.ESCAPE,
		"{":   interpret.BEGIN_GROUP,
		"}":   interpret.END_GROUP,
		"%":   interpret.COMMENT,
		"#":   interpret.PARAMETER,
		" ":   interpret.SPACE,
		"a":   interpret.LETTER,
		"Z":   interpret.LETTER,
		"1":   interpret.OTHER,
		"^^@": interpret.IGNORED,
		"^^J": interpret.END_OF_LINE,
		"^^M": interpret.OTHER,
		"^^?": interpret.INVALID,
	}
	for key, category := range expected {
		assert.Equal(t, category, config.Categories[key], key)
	}

	t.Run("roundTrip", func(t *testing.T) {
		t.Parallel()

		var b bytes.Buffer
		require.NoError(t, config.Write(&b))
		assert.Contains(t, b.String(), "categories:")

		loaded, err := interpret.LoadConfig(&b)
		require.NoError(t, err)
		assert.Equal(t, config, loaded)
	})
}
