package config

import (
	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/lattice"
)

// LatticeSection seeds a type lattice.
type LatticeSection struct {
	// CaseSensitive defaults to true.
	CaseSensitive *bool       `toml:"case_sensitive"`
	Universal     string      `toml:"universal"`
	Absurd        string      `toml:"absurd"`
	Types         []TypeEntry `toml:"types"`
}

// TypeEntry declares one type. Parents must be declared earlier in the list
// or name a sentinel; no parents means directly below the universal type.
// A label may be repeated to add parents; only its first entry may carry a
// definition.
type TypeEntry struct {
	Label      string   `toml:"label"`
	Parents    []string `toml:"parents"`
	Definition string   `toml:"definition"`
}

// BuildLattice creates the lattice described by the file.
func (f *File) BuildLattice(opts ...lattice.Option) (*lattice.Lattice, error) {
	s := f.Lattice
	universal, absurd := s.Universal, s.Absurd
	if universal == "" {
		universal = "Entity"
	}
	if absurd == "" {
		absurd = "Absurd"
	}
	if s.CaseSensitive != nil && !*s.CaseSensitive {
		opts = append(opts, lattice.WithCaseInsensitiveLabels())
	}

	l, err := lattice.New(lattice.NewType(universal), lattice.NewType(absurd), opts...)
	if err != nil {
		return nil, err
	}
	for _, entry := range s.Types {
		parents := make([]*lattice.Type, 0, len(entry.Parents))
		for _, p := range entry.Parents {
			t, ok := l.ByLabel(p)
			if !ok {
				return nil, errors.New(errors.ErrCodeUnknownType, "type %q: unknown parent %q", entry.Label, p)
			}
			parents = append(parents, t)
		}
		if existing, ok := l.ByLabel(entry.Label); ok {
			if entry.Definition != "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "type %q: definition on repeated entry", entry.Label)
			}
			if err := l.AddSuperTypes(existing, parents...); err != nil {
				return nil, err
			}
			continue
		}
		t := lattice.NewType(entry.Label)
		if entry.Definition != "" {
			t = lattice.NewDefinedType(entry.Label, entry.Definition)
		}
		if err := l.AddType(t, parents, nil); err != nil {
			return nil, err
		}
	}
	return l, nil
}
