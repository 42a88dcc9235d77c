package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fretcards/pkg/errors"
)

func TestTemplateFuncs(t *testing.T) {
	q, a, err := TemplateFuncs(
		"What note is on string {{.string}}, fret {{.fret}}?",
		"{{note .string .fret}}",
	)
	require.NoError(t, err)

	args := Args{Keyword: map[string]any{"string": 6, "fret": 5}}
	question, err := q(args)
	require.NoError(t, err)
	assert.Equal(t, "What note is on string 6, fret 5?", question)

	answer, err := a(args)
	require.NoError(t, err)
	assert.Equal(t, "A", answer)
}

func TestTemplateHelpers(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		args Args
		want string
	}{
		{"positional", "{{index .args 0}}-{{index .args 1}}", Args{Positional: []any{"x", 2}}, "x-2"},
		{"join any", `{{join .names ", "}}`, Args{Keyword: map[string]any{"names": []any{"E", "A", 3}}}, "E, A, 3"},
		{"upper", "{{upper .label}}", Args{Keyword: map[string]any{"label": "c#"}}, "C#"},
		{"note from strings", `{{note "2" "1"}}`, Args{}, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _, err := TemplateFuncs(tt.tmpl, "")
			require.NoError(t, err)
			got, err := q(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateWithTuning(t *testing.T) {
	q, _, err := TemplateFuncsWithTuning("{{note 1 0}}", "", []string{"D", "A", "D", "G", "A", "D"})
	require.NoError(t, err)
	got, err := q(Args{})
	require.NoError(t, err)
	assert.Equal(t, "D", got)
}

func TestTemplateErrors(t *testing.T) {
	_, _, err := TemplateFuncs("{{.unclosed", "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPlan))

	q, _, err := TemplateFuncs("{{.missing}}", "")
	require.NoError(t, err)
	_, err = q(Args{Keyword: map[string]any{}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	q, _, err = TemplateFuncs("{{note 9 0}}", "")
	require.NoError(t, err)
	_, err = q(Args{})
	assert.Error(t, err)
}
