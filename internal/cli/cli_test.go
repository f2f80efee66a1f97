package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cgraph/pkg/cg"
)

const testConfig = `
[log]
level = "warn"

[lattice]
types = [
    { label = "Animal" },
    { label = "Cat", parents = ["Animal"], definition = "small feline" },
    { label = "Mat" },
    { label = "On" },
]

[match]
preset = "projection"

[graphs.query]
concepts = [{ id = "a", type = "Animal" }, { id = "m", type = "Mat" }]
relations = [{ type = "On", args = ["a", "m"] }]

[graphs.data]
concepts = [
    { id = "yojo", type = "Cat", name = "Yojo" },
    { id = "m", type = "Mat", marker = 1 },
]
relations = [{ type = "On", args = ["yojo", "m"] }]
`

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// execute runs the root command against the config at path and returns
// everything printed to out.
func execute(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldStatus := out, status
	out, status = &buf, io.Discard
	t.Cleanup(func() { out, status = oldOut, oldStatus })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", path}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	got, err := execute(t, "unused.toml", "version")
	require.NoError(t, err)
	assert.Contains(t, got, "version: ")
}

func TestLatticeShow(t *testing.T) {
	path := writeConfig(t, testConfig)

	got, err := execute(t, path, "lattice", "show", "--check")
	require.NoError(t, err)
	assert.Contains(t, got, "Type lattice")
	assert.Contains(t, got, "6 types")
	assert.Contains(t, got, "Cat")
	assert.Contains(t, got, "Acyclic and transitively reduced")
}

func TestLatticeQuery(t *testing.T) {
	path := writeConfig(t, testConfig)

	got, err := execute(t, path, "lattice", "query", "Animal")
	require.NoError(t, err)
	assert.Contains(t, got, "Parents")
	assert.Contains(t, got, "Entity")
	assert.Contains(t, got, "Children")
	assert.Contains(t, got, "Cat")
	assert.NotContains(t, got, "Definition", "only defined types print a definition")

	got, err = execute(t, path, "lattice", "query", "Cat")
	require.NoError(t, err)
	assert.Contains(t, got, "Definition")
	assert.Contains(t, got, "small feline")

	_, err = execute(t, path, "lattice", "query", "Unicorn")
	assert.Error(t, err)
}

func TestLatticeDot(t *testing.T) {
	path := writeConfig(t, testConfig)

	got, err := execute(t, path, "lattice", "dot")
	require.NoError(t, err)
	assert.Contains(t, got, "digraph Lattice {")

	target := filepath.Join(t.TempDir(), "lattice.dot")
	got, err = execute(t, path, "lattice", "dot", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, got, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph Lattice {")
}

func TestMatchCommand(t *testing.T) {
	path := writeConfig(t, testConfig)

	got, err := execute(t, path, "match", "query", "data")
	require.NoError(t, err)
	assert.Contains(t, got, "2 concepts · 1 relations · 0 coreference sets · connected")
	assert.Contains(t, got, "1 mappings")
	assert.Contains(t, got, "[Animal] → [Cat: 'Yojo']")

	got, err = execute(t, path, "match", "data", "query", "--preset", "isomorphism")
	require.NoError(t, err)
	assert.Contains(t, got, "No mapping from data to query")
}

func TestMatchCommandErrors(t *testing.T) {
	path := writeConfig(t, testConfig)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown graph", []string{"match", "query", "nope"}},
		{"unknown preset", []string{"match", "query", "data", "--preset", "fuzzy"}},
		{"unknown fold", []string{"match", "query", "data", "--fold", "sideways"}},
		{"three arguments", []string{"match", "query", "data", "query"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, path, tt.args...)
			assert.Error(t, err)
		})
	}

	_, err := execute(t, filepath.Join(t.TempDir(), "missing.toml"), "match", "query", "data")
	assert.Error(t, err)
}

func TestCorefUnion(t *testing.T) {
	g1, g2 := cg.NewGraph(), cg.NewGraph()
	a, b := g1.AddConcept(nil, nil), g1.AddConcept(nil, nil)
	x, y := g2.AddConcept(nil, nil), g2.AddConcept(nil, nil)

	first, second := &cg.Coreferences{}, &cg.Coreferences{}
	first.Link(a, b)
	u := corefUnion{first, second}

	assert.True(t, u.AreCoreferent(a, b))
	assert.True(t, u.AreCoreferent(x, x))
	assert.False(t, u.AreCoreferent(x, y))
	assert.False(t, u.AreCoreferent(a, x))
	assert.ElementsMatch(t, []*cg.Concept{a, b}, u.Closure(b))
	assert.Equal(t, []*cg.Concept{y}, u.Closure(y))
}

func TestMatchPicksMissingFixtures(t *testing.T) {
	path := writeConfig(t, testConfig)

	var titles []string
	old := runPicker
	t.Cleanup(func() { runPicker = old })
	runPicker = func(m tea.Model) (tea.Model, error) {
		titles = append(titles, m.(FixtureListModel).Title)
		// Fixtures are listed by name: data, query.
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return m, nil
	}

	got, err := execute(t, path, "match")
	require.NoError(t, err)
	assert.Equal(t, []string{"Select First Graph", "Select Second Graph"}, titles)
	assert.Contains(t, got, "query matches query")

	titles = nil
	runPicker = func(m tea.Model) (tea.Model, error) {
		titles = append(titles, m.(FixtureListModel).Title)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		return m, nil
	}
	got, err = execute(t, path, "match", "query")
	require.NoError(t, err)
	assert.Equal(t, []string{"Select Second Graph"}, titles)
	assert.Contains(t, got, "No selection made")
}

func TestFixtureListModel(t *testing.T) {
	m := NewFixtureListModel("Pick", []FixtureSummary{
		{Name: "a", Concepts: 2, Relations: 1},
		{Name: "b", Concepts: 3, Coreferences: 1},
	})
	assert.Nil(t, m.Init())

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.(FixtureListModel).Cursor)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, model.(FixtureListModel).Cursor, "cursor stops at the last fixture")

	view := model.View()
	assert.Contains(t, view, "Pick")
	assert.Contains(t, view, "Fixture")
	assert.Contains(t, view, "[2/2]")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, model.(FixtureListModel).Selected)
	assert.Equal(t, "b", model.(FixtureListModel).Selected.Name)
}

func TestSpinnerStop(t *testing.T) {
	var buf bytes.Buffer
	old := status
	status = &buf
	t.Cleanup(func() { status = old })

	s := newSpinner(context.Background(), "Matching a against b...")
	s.Start()
	s.Stop()
	assert.True(t, strings.HasSuffix(buf.String(), "\r"), "stop clears the line")

	ctx, cancel := context.WithCancel(context.Background())
	s = newSpinner(ctx, "cancelled")
	s.Start()
	cancel()
	s.Stop()
}
