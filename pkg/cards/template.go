package cards

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// TemplateFuncs compiles question and answer templates into generator
// functions over Args. Keyword parameters are available as {{.name}} and
// positional ones as {{index .args 0}}.
//
// Helpers:
//
//	note STRING FRET   note name in standard tuning ("E", "F#", ...)
//	join LIST SEP      strings.Join over any list
//	upper S            strings.ToUpper
func TemplateFuncs(question, answer string) (q, a func(Args) (string, error), err error) {
	return TemplateFuncsWithTuning(question, answer, fretboard.StandardTuning)
}

// TemplateFuncsWithTuning is TemplateFuncs with note names taken from tuning.
func TemplateFuncsWithTuning(question, answer string, tuning []string) (q, a func(Args) (string, error), err error) {
	funcs := templateHelpers(tuning)
	qt, err := template.New("question").Funcs(funcs).Option("missingkey=error").Parse(question)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "parse question template")
	}
	at, err := template.New("answer").Funcs(funcs).Option("missingkey=error").Parse(answer)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "parse answer template")
	}
	return execFunc(qt), execFunc(at), nil
}

func execFunc(t *template.Template) func(Args) (string, error) {
	return func(a Args) (string, error) {
		var sb strings.Builder
		if err := t.Execute(&sb, a.templateData()); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "execute %s template", t.Name())
		}
		return sb.String(), nil
	}
}

func templateHelpers(tuning []string) template.FuncMap {
	return template.FuncMap{
		"note": func(str, fret any) (string, error) {
			s, err := toInt(str)
			if err != nil {
				return "", err
			}
			f, err := toInt(fret)
			if err != nil {
				return "", err
			}
			return fretboard.NoteName(tuning, s, f)
		},
		"join": func(list any, sep string) string {
			switch l := list.(type) {
			case []string:
				return strings.Join(l, sep)
			case []any:
				parts := make([]string, len(l))
				for i, it := range l {
					parts[i] = fmt.Sprint(it)
				}
				return strings.Join(parts, sep)
			default:
				return fmt.Sprint(list)
			}
		},
		"upper": strings.ToUpper,
	}
}
