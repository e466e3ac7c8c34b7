package interpret_test

import (
	"testing"

	"github.com/ian-shakespeare/libtex/internal/interpret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups(t *testing.T) {
	t.Parallel()

	t.Run("popRoot", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		err := g.Pop()
		assert.ErrorIs(t, err, interpret.ErrUnknown)
	})

	t.Run("balance", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		g.SetCategory('@', interpret.LETTER, false)
		for i := 0; i < 5; i++ {
			g.Push()
			g.SetCategory('@', interpret.Category(i), false)
			g.SetCategory('!', interpret.ACTIVE, false)
		}
		assert.Equal(t, 5, g.Depth())
		for i := 0; i < 5; i++ {
			require.NoError(t, g.Pop())
		}

		assert.Equal(t, 0, g.Depth())
		assert.Equal(t, interpret.LETTER, g.Category('@'))
		assert.Equal(t, interpret.OTHER, g.Category('!'))
		assert.ErrorIs(t, g.Pop(), interpret.ErrUnknown)
	})

	t.Run("localCategory", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		g.Push()
		g.SetCategory('@', interpret.LETTER, false)
		assert.Equal(t, interpret.LETTER, g.Category('@'))
		g.Push()
		assert.Equal(t, interpret.LETTER, g.Category('@'))
		require.NoError(t, g.Pop())
		require.NoError(t, g.Pop())
		assert.Equal(t, interpret.OTHER, g.Category('@'))
	})

	t.Run("globalCategory", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		g.Push()
		g.Push()
		g.SetCategory('@', interpret.LETTER, true)
		require.NoError(t, g.Pop())
		require.NoError(t, g.Pop())
		assert.Equal(t, interpret.LETTER, g.Category('@'))
	})

	t.Run("globalBypassesIntermediate", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		g.Push()
		g.SetCategory('@', interpret.ACTIVE, false)
		g.Push()
		g.SetCategory('@', interpret.LETTER, true)

		// The intermediate assignment still shadows the root.
		assert.Equal(t, interpret.ACTIVE, g.Category('@'))
		require.NoError(t, g.Pop())
		assert.Equal(t, interpret.ACTIVE, g.Category('@'))
		require.NoError(t, g.Pop())
		assert.Equal(t, interpret.LETTER, g.Category('@'))
	})

	t.Run("globalDefs", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		g.Push()
		g.SetGlobalDefs(true)
		g.Push()
		assert.True(t, g.GlobalDefs())
		g.SetCategory('@', interpret.LETTER, false)
		g.SetGlobalDefs(false)
		g.SetCategory('!', interpret.LETTER, false)
		require.NoError(t, g.Pop())

		assert.True(t, g.GlobalDefs())
		require.NoError(t, g.Pop())
		assert.False(t, g.GlobalDefs())
		assert.Equal(t, interpret.LETTER, g.Category('@'))
		assert.Equal(t, interpret.OTHER, g.Category('!'))
	})

	t.Run("macros", func(t *testing.T) {
		t.Parallel()

		g := interpret.NewGroups()
		def, ok := g.Macro(`\def`)
		require.True(t, ok)
		assert.Equal(t, interpret.PRIMITIVE_MACRO, def.Type)
		assert.Equal(t, interpret.DEF_PRIMITIVE, def.Primitive)

		_, ok = g.Macro(`\undefined`)
		assert.False(t, ok)

		g.Push()
		g.SetMacro(interpret.Macro{Type: interpret.USER_MACRO, Name: `\x`}, false)
		g.SetMacro(interpret.Macro{Type: interpret.USER_MACRO, Name: `\y`}, true)
		_, ok = g.Macro(`\x`)
		assert.True(t, ok)
		require.NoError(t, g.Pop())

		_, ok = g.Macro(`\x`)
		assert.False(t, ok)
		_, ok = g.Macro(`\y`)
		assert.True(t, ok)
	})
}
