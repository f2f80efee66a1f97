package config

import (
	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/match"
)

// MatchSection selects a preset and overrides single modes by name.
type MatchSection struct {
	Preset       string `toml:"preset"`
	Graph        string `toml:"graph"`
	Concept      string `toml:"concept"`
	Relation     string `toml:"relation"`
	ConceptType  string `toml:"concept_type"`
	RelationType string `toml:"relation_type"`
	Quantifier   string `toml:"quantifier"`
	Designator   string `toml:"designator"`
	Marker       string `toml:"marker"`
	Arc          string `toml:"arc"`
	Fold         string `toml:"fold"`

	CorefAutoMatch *bool `toml:"coref_automatch"`
	CorefAgreement *bool `toml:"coref_agreement"`
	Connected      *bool `toml:"connected"`
	MaxResults     *int  `toml:"max_results"`

	// Nested configures descriptor graph matching. It defaults to the
	// enclosing section.
	Nested *MatchSection `toml:"nested"`
}

// MatchConfig builds the matching configuration described by the file.
//
// Returns INVALID_CONFIGURATION for unknown preset or mode names. The
// comparator marker mode cannot be selected from a file.
func (f *File) MatchConfig() (*match.Config, error) {
	return f.Match.build()
}

func (s *MatchSection) build() (*match.Config, error) {
	base, err := match.Preset(s.Preset)
	if err != nil {
		return nil, err
	}
	opts, err := s.options()
	if err != nil {
		return nil, err
	}
	if s.Nested != nil {
		nested, err := s.Nested.build()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "nested")
		}
		opts = append(opts, match.WithNested(nested))
	}
	return base.With(opts...)
}

func (s *MatchSection) options() ([]match.Option, error) {
	var opts []match.Option
	fields := []struct {
		value string
		apply func(string) (match.Option, error)
	}{
		{s.Graph, optionFor(match.ParseGraphMode, match.WithGraph)},
		{s.Concept, optionFor(match.ParseConceptMode, match.WithConcept)},
		{s.Relation, optionFor(match.ParseRelationMode, match.WithRelation)},
		{s.ConceptType, optionFor(match.ParseTypeMode, match.WithConceptType)},
		{s.RelationType, optionFor(match.ParseTypeMode, match.WithRelationType)},
		{s.Quantifier, optionFor(match.ParseQuantifierMode, match.WithQuantifier)},
		{s.Designator, optionFor(match.ParseDesignatorMode, match.WithDesignator)},
		{s.Marker, optionFor(match.ParseMarkerMode, match.WithMarker)},
		{s.Arc, optionFor(match.ParseArcMode, match.WithArc)},
		{s.Fold, optionFor(match.ParseFold, match.WithFold)},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		opt, err := field.apply(field.value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}

	if s.CorefAutoMatch != nil {
		opts = append(opts, match.WithCorefAutoMatch(*s.CorefAutoMatch))
	}
	if s.CorefAgreement != nil {
		opts = append(opts, match.WithCorefAgreement(*s.CorefAgreement))
	}
	if s.Connected != nil {
		opts = append(opts, match.WithConnected(*s.Connected))
	}
	if s.MaxResults != nil {
		opts = append(opts, match.WithMaxResults(*s.MaxResults))
	}
	return opts, nil
}

func optionFor[M any](parse func(string) (M, error), with func(M) match.Option) func(string) (match.Option, error) {
	return func(s string) (match.Option, error) {
		m, err := parse(s)
		if err != nil {
			return nil, err
		}
		return with(m), nil
	}
}
