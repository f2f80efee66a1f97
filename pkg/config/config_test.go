package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/match"
)

const sample = `
[log]
level = "debug"

[lattice]
universal = "Top"
absurd = "Bottom"
types = [
    { label = "Animal" },
    { label = "Cat", parents = ["Animal"], definition = "small domesticated feline" },
    { label = "Pet" },
    { label = "Cat", parents = ["Pet"] },
    { label = "Mat" },
    { label = "On" },
]

[match]
preset = "projection"
max_results = 5
concept_type = "supertype"

[match.nested]
graph = "subgraph"
concept = "types"

[graphs.query]
concepts = [
    { id = "a", type = "Animal" },
    { id = "m", type = "Mat" },
]
relations = [{ type = "On", args = ["a", "m"] }]

[graphs.data]
concepts = [
    { id = "yojo", type = "Cat", name = "Yojo" },
    { id = "m", type = "Mat", marker = 1 },
    { id = "m2", type = "Mat", descriptor = "query" },
]
relations = [{ type = "On", args = ["yojo", "m"], output_start = 1 }]
coreferences = [["m", "m2"]]
`

func parseSample(t *testing.T) *File {
	t.Helper()
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	return f
}

func TestBuildLattice(t *testing.T) {
	f := parseSample(t)
	l, err := f.BuildLattice()
	require.NoError(t, err)

	assert.Equal(t, "Top", l.Universal().Label())
	assert.Equal(t, 7, l.Len())

	cat, ok := l.ByLabel("Cat")
	require.True(t, ok)
	supers, err := l.ImmediateSuperTypesOf(cat)
	require.NoError(t, err)
	var labels []string
	for _, s := range supers {
		labels = append(labels, s.Label())
	}
	assert.ElementsMatch(t, []string{"Animal", "Pet"}, labels)
	assert.Equal(t, "small domesticated feline", cat.Definition())
	pet, _ := l.ByLabel("Pet")
	assert.Nil(t, pet.Definition())
	assert.NoError(t, l.Validate())
}

func TestBuildLatticeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"unknown parent", `[lattice]
types = [{ label = "Cat", parents = ["Animal"] }]`, errors.ErrCodeUnknownType},
		{"cycle", `[lattice]
types = [
    { label = "A" },
    { label = "B", parents = ["A"] },
    { label = "A", parents = ["B"] },
]`, errors.ErrCodeOrderConflict},
		{"definition on repeated entry", `[lattice]
types = [{ label = "A" }, { label = "A", definition = "again" }]`, errors.ErrCodeInvalidInput},
		{"sentinel clash", `[lattice]
universal = "T"
absurd = "T"`, errors.ErrCodeDuplicateLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = f.BuildLattice()
			assert.True(t, errors.Is(err, tt.code), "error = %v, want %s", err, tt.code)
		})
	}
}

func TestCaseInsensitiveLattice(t *testing.T) {
	f, err := Parse([]byte(`[lattice]
case_sensitive = false
types = [{ label = "Animal" }, { label = "Cat", parents = ["ANIMAL"] }]`))
	require.NoError(t, err)
	l, err := f.BuildLattice()
	require.NoError(t, err)
	assert.False(t, l.CaseSensitive())
	_, ok := l.ByLabel("cat")
	assert.True(t, ok)
}

func TestMatchConfig(t *testing.T) {
	f := parseSample(t)
	cfg, err := f.MatchConfig()
	require.NoError(t, err)

	assert.Equal(t, match.GraphSubgraph, cfg.Graph())
	assert.Equal(t, match.FoldSecond, cfg.Fold())
	assert.Equal(t, match.TypeSupertype, cfg.ConceptType())
	assert.Equal(t, 5, cfg.MaxResults())

	nested := cfg.Nested()
	require.NotSame(t, cfg, nested)
	assert.Equal(t, match.ConceptTypes, nested.Concept())
	assert.Equal(t, match.FoldNone, nested.Fold())
}

func TestMatchConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown preset", `[match]
preset = "fuzzy"`},
		{"unknown mode", `[match]
concept = "everything"`},
		{"negative bound", `[match]
max_results = -1`},
		{"comparator from file", `[match]
marker = "comparator"`},
		{"bad nested", `[match.nested]
fold = "sideways"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = f.MatchConfig()
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "error = %v", err)
		})
	}
}

func TestBuildGraph(t *testing.T) {
	f := parseSample(t)
	l, err := f.BuildLattice()
	require.NoError(t, err)

	assert.Equal(t, []string{"data", "query"}, f.GraphNames())

	fx, err := f.BuildGraph("data", l)
	require.NoError(t, err)
	assert.Len(t, fx.Graph.Concepts(), 3)
	require.Len(t, fx.Graph.Relations(), 1)
	assert.Equal(t, 1, fx.Graph.Relations()[0].OutputStart)

	yojo := fx.Concepts["yojo"]
	assert.Equal(t, "[Cat: 'Yojo']", yojo.String())
	assert.Equal(t, 1, fx.Concepts["m"].Referent.Marker().ID)
	assert.NotNil(t, fx.Concepts["m2"].Referent.Descriptor)
	assert.True(t, fx.Coreferences.AreCoreferent(fx.Concepts["m"], fx.Concepts["m2"]))

	q, err := f.BuildGraph("query", l)
	require.NoError(t, err)
	assert.Nil(t, q.Concepts["a"].Referent, "generic referents stay nil")

	cfg, err := f.MatchConfig()
	require.NoError(t, err)
	res, err := match.NewMatcher(match.WithCoreferences(fx.Coreferences)).MatchGraphs(q.Graph, fx.Graph, cfg)
	require.NoError(t, err)
	assert.True(t, res.Matched())
}

func TestBuildGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"unknown type", `[graphs.g]
concepts = [{ id = "a", type = "Unicorn" }]`, errors.ErrCodeUnknownType},
		{"duplicate id", `[graphs.g]
concepts = [{ id = "a" }, { id = "a" }]`, errors.ErrCodeInvalidInput},
		{"missing id", `[graphs.g]
concepts = [{ type = "" }]`, errors.ErrCodeInvalidInput},
		{"unknown argument", `[graphs.g]
concepts = [{ id = "a" }]
relations = [{ args = ["a", "b"] }]`, errors.ErrCodeInvalidInput},
		{"bad output start", `[graphs.g]
concepts = [{ id = "a" }]
relations = [{ args = ["a"], output_start = 3 }]`, errors.ErrCodeInvalidInput},
		{"two designators", `[graphs.g]
concepts = [{ id = "a", marker = 1, name = "x" }]`, errors.ErrCodeInvalidInput},
		{"descriptor cycle", `[graphs.g]
concepts = [{ id = "a", descriptor = "g" }]`, errors.ErrCodeInvalidInput},
		{"unknown coreferent", `[graphs.g]
concepts = [{ id = "a" }]
coreferences = [["a", "z"]]`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			l, err := f.BuildLattice()
			require.NoError(t, err)
			_, err = f.BuildGraph("g", l)
			assert.True(t, errors.Is(err, tt.code), "error = %v, want %s", err, tt.code)
		})
	}

	_, err := parseSample(t).BuildGraph("missing", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`[match]
conecpt = "types"`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "error = %v", err)

	_, err = Parse([]byte(`[match`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestLogLevel(t *testing.T) {
	f := parseSample(t)
	level, err := f.LogLevel(log.InfoLevel)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	empty := &File{}
	level, err = empty.LogLevel(log.WarnLevel)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, level)

	bad := &File{Log: LogSection{Level: "loud"}}
	_, err = bad.LogLevel(log.InfoLevel)
	assert.Error(t, err)
}

func TestLoadAndDefaultPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Graphs, 2)

	_, err = Load(filepath.Join(dir, "absent.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	t.Setenv(EnvPath, path)
	assert.Equal(t, path, DefaultPath())
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultFile, DefaultPath())
}
