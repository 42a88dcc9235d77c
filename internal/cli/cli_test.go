package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fretcards/internal/config"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/observability"
)

const lowEPlan = `
kind: fretboard
deck: Guitar::Low E
question: "Which note is on string {{.string}}, fret {{.fret}}?"
answer: "{{note .string .fret}}"
tags: [fretboard]
cards:
  - {string: 6, fret: 0}
  - {string: 6, fret: 1}
  - {string: 6, fret: 2}
  - {string: 6, fret: 3}
`

// testEnv points every XDG directory at a temp dir and returns it.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.EnvPath, "")
	t.Cleanup(observability.Reset)
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	captureStdout(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func countFiles(t *testing.T, pattern string) int {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	return len(matches)
}

func TestGenerateWritesDeck(t *testing.T) {
	dir := testEnv(t)
	plan := writeFile(t, filepath.Join(dir, "plans", "low-e.yaml"), lowEPlan)
	col := filepath.Join(dir, "guitar.db")

	require.NoError(t, execute(t, "generate", plan, "--collection", col))

	counts, err := deckCounts(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Guitar::Low E": 4}, counts)
	assert.Equal(t, 4, countFiles(t, filepath.Join(dir, "guitar.media", "*.png")))
}

func TestGenerateDeckFlagOverridesPlan(t *testing.T) {
	dir := testEnv(t)
	plan := writeFile(t, filepath.Join(dir, "low-e.yaml"), lowEPlan)
	col := filepath.Join(dir, "guitar.db")

	require.NoError(t, execute(t, "generate", plan, "--collection", col, "--deck", "Drill", "--no-cache"))

	counts, err := deckCounts(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Drill": 4}, counts)
}

func TestGenerateGlobAndMedia(t *testing.T) {
	dir := testEnv(t)
	writeFile(t, filepath.Join(dir, "plans", "a.yaml"), "question: Q{{.n}}\nanswer: A\ncards: [{n: 1}, {n: 2}]\n")
	writeFile(t, filepath.Join(dir, "plans", "more", "b.yaml"), "question: Q\nanswer: A\nmedia: [nut.png]\ncards: [{}]\n")
	writeFile(t, filepath.Join(dir, "plans", "more", "nut.png"), "png")
	col := filepath.Join(dir, "c.db")

	require.NoError(t, execute(t, "generate", filepath.Join(dir, "plans", "**", "*.yaml"), "--collection", col))

	counts, err := deckCounts(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Fretboard": 3}, counts)
	assert.FileExists(t, filepath.Join(dir, "c.media", "nut.png"))
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	dir := testEnv(t)
	plan := writeFile(t, filepath.Join(dir, "low-e.yaml"), lowEPlan)
	col := filepath.Join(dir, "guitar.db")

	require.NoError(t, execute(t, "generate", plan, "--dry-run", "--collection", col))
	assert.NoFileExists(t, col)
}

func TestGenerateValidatesAllPlansFirst(t *testing.T) {
	dir := testEnv(t)
	good := writeFile(t, filepath.Join(dir, "good.yaml"), lowEPlan)
	bad := writeFile(t, filepath.Join(dir, "bad.yaml"), "kind: chord\nquestion: Q\nanswer: A\n")
	col := filepath.Join(dir, "guitar.db")

	err := execute(t, "generate", good, bad, "--collection", col)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPlan))
	assert.NoFileExists(t, col)
}

func TestGenerateStopsAtBadCard(t *testing.T) {
	dir := testEnv(t)
	plan := writeFile(t, filepath.Join(dir, "p.yaml"), `
kind: fretboard
question: "s{{.string}} f{{.fret}}"
answer: "{{note .string .fret}}"
cards:
  - {string: 1, fret: 0}
  - {string: 7, fret: 0}
  - {string: 2, fret: 0}
`)
	col := filepath.Join(dir, "guitar.db")

	err := execute(t, "generate", plan, "--collection", col)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPosition))

	counts, cerr := deckCounts(context.Background(), col)
	require.NoError(t, cerr)
	assert.Equal(t, 1, counts["Fretboard"])
}

func TestRenderCommand(t *testing.T) {
	dir := testEnv(t)
	out := filepath.Join(dir, "out", "board.svg")

	require.NoError(t, execute(t, "render", "-o", out, "--format", "svg,png", "--note", "1:0:E", "--note", "6:3:G:#0000ff"))

	svg, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), ">G<")
	assert.FileExists(t, filepath.Join(dir, "out", "board.png"))

	assert.Positive(t, countFiles(t, filepath.Join(dir, "cache", appName, "*", "*.json")))
}

func TestRenderCommandRejectsBadNote(t *testing.T) {
	dir := testEnv(t)
	err := execute(t, "render", "-o", filepath.Join(dir, "b.svg"), "--note", "7:0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPosition))
}

func TestCacheClear(t *testing.T) {
	dir := testEnv(t)
	require.NoError(t, execute(t, "render", "-o", filepath.Join(dir, "b.png"), "--note", "3:2"))
	pattern := filepath.Join(dir, "cache", appName, "*", "*.json")
	require.Positive(t, countFiles(t, pattern))

	require.NoError(t, execute(t, "cache", "clear"))
	assert.Zero(t, countFiles(t, pattern))
}

func TestDeckAddUsesConfig(t *testing.T) {
	dir := testEnv(t)
	col := filepath.Join(dir, "cards.db")
	cfg := writeFile(t, filepath.Join(dir, "fretcards.toml"), `
[deck]
name = "Custom"
collection = "`+col+`"

[cache]
backend = "none"
`)

	require.NoError(t, execute(t, "--config", cfg, "deck", "add", "-q", "Open 6th string?", "-a", "E", "-t", "fretboard"))
	require.NoError(t, execute(t, "--config", cfg, "deck", "add", "-q", "Open 1st string?", "-a", "E"))

	counts, err := deckCounts(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Custom": 2}, counts)
	require.NoError(t, execute(t, "--config", cfg, "deck", "list"))
}

func TestMissingConfigFlag(t *testing.T) {
	dir := testEnv(t)
	err := execute(t, "--config", filepath.Join(dir, "nope.toml"), "cache", "path")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestMediaAddRenamesCollisions(t *testing.T) {
	dir := testEnv(t)
	src := writeFile(t, filepath.Join(dir, "nut.png"), "first")
	store := filepath.Join(dir, "media")

	require.NoError(t, execute(t, "media", "add", src, "--media", store))
	require.NoError(t, execute(t, "media", "add", src, "--media", store))

	assert.Equal(t, 2, countFiles(t, filepath.Join(store, "nut*.png")))
	data, err := os.ReadFile(filepath.Join(store, "nut.png"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestFileDisplayer(t *testing.T) {
	var out captureWriter
	require.NoError(t, fileDisplayer(&out)(context.Background(), []byte("\x89PNG")))

	path := out.path()
	t.Cleanup(func() { os.Remove(path) })
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data))

	var second captureWriter
	require.NoError(t, fileDisplayer(&second)(context.Background(), []byte("x")))
	t.Cleanup(func() { os.Remove(second.path()) })
	assert.NotEqual(t, path, second.path())
}

// captureWriter captures displayer output and extracts the printed path.
type captureWriter struct{ buf []byte }

func (s *captureWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *captureWriter) path() string {
	line := string(s.buf)
	const prefix = "[fretboard: "
	if len(line) < len(prefix)+2 {
		return ""
	}
	return line[len(prefix) : len(line)-2]
}

func TestCompletion(t *testing.T) {
	testEnv(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			require.NoError(t, root.ExecuteContext(context.Background()))
			assert.Contains(t, out.String(), appName)
		})
	}
	assert.Error(t, execute(t, "completion", "tcsh"))
}

func TestVersionTemplate(t *testing.T) {
	testEnv(t)
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--version"})
	root.SetOut(&out)
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "fretcards version")
}

func TestConfigCommands(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, filepath.Join(dir, "fretcards.toml"), "[deck]\nname = \"Scales\"\n")

	run := func(args ...string) string {
		out := captureStdout(t)
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		root.SetErr(io.Discard)
		require.NoError(t, root.ExecuteContext(context.Background()))
		return out.String()
	}

	assert.Equal(t, cfg+"\n", run("--config", cfg, "config", "path"))
	assert.Contains(t, run("--config", cfg, "config", "show"), `name = "Scales"`)
}
