package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fretcards/pkg/errors"
)

func TestZipArgs(t *testing.T) {
	t.Run("both nil", func(t *testing.T) {
		got, err := ZipArgs(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("positional only", func(t *testing.T) {
		got, err := ZipArgs([][]any{{1, 2}, {3}}, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, []any{3}, got[1].Positional)
		assert.Empty(t, got[0].Keyword)
		assert.NotNil(t, got[0].Keyword)
	})

	t.Run("keyword only", func(t *testing.T) {
		got, err := ZipArgs(nil, []map[string]any{{"fret": 1}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Positional)
		assert.Equal(t, 1, got[0].Keyword["fret"])
	})

	t.Run("both", func(t *testing.T) {
		got, err := ZipArgs([][]any{{"a"}, {"b"}}, []map[string]any{{"k": 1}, {"k": 2}})
		require.NoError(t, err)
		assert.Equal(t, "b", got[1].Positional[0])
		assert.Equal(t, 2, got[1].Keyword["k"])
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := ZipArgs([][]any{{1}}, []map[string]any{{}, {}})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	})

	t.Run("empty non-nil", func(t *testing.T) {
		got, err := ZipArgs([][]any{}, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestArgsInt(t *testing.T) {
	a := Args{Keyword: map[string]any{
		"int": 3, "int64": int64(4), "float": 5.0, "str": "6",
		"frac": 1.5, "word": "x", "bool": true,
	}}
	for name, want := range map[string]int{"int": 3, "int64": 4, "float": 5, "str": 6} {
		got, err := a.Int(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	for _, name := range []string{"frac", "word", "bool", "missing"} {
		_, err := a.Int(name)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), name)
	}
}

func TestArgsString(t *testing.T) {
	a := Args{Keyword: map[string]any{"label": "E", "n": 3, "nil": nil}}
	assert.Equal(t, "E", a.String("label"))
	assert.Equal(t, "3", a.String("n"))
	assert.Equal(t, "", a.String("nil"))
	assert.Equal(t, "", a.String("missing"))
}
