package cg

import (
	"testing"

	"github.com/matzehuels/cgraph/pkg/errors"
)

func TestDesignatorEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Designator
		want bool
	}{
		{"same marker", &Marker{ID: 1}, &Marker{ID: 1}, true},
		{"different marker", &Marker{ID: 1}, &Marker{ID: 2}, false},
		{"same literal", Literal{Value: "3"}, Literal{Value: "3"}, true},
		{"literal vs name", Literal{Value: "x"}, Name{Value: "x"}, false},
		{"same name", Name{Value: "Yojo"}, Name{Value: "Yojo"}, true},
		{"marker vs nil", &Marker{ID: 1}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseQuantifier(t *testing.T) {
	for _, q := range []Quantifier{Existential, Universal, Collective, Distributive} {
		got, err := ParseQuantifier(q.String())
		if err != nil || got != q {
			t.Errorf("ParseQuantifier(%q) = %v, %v", q.String(), got, err)
		}
	}
	if got, _ := ParseQuantifier(""); got != Existential {
		t.Errorf("ParseQuantifier(\"\") = %v, want existential", got)
	}
	if _, err := ParseQuantifier("most"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseQuantifier(most) error = %v, want INVALID_INPUT", err)
	}
	if Quantifier(9).Valid() {
		t.Error("Quantifier(9).Valid() = true")
	}
}

func TestReferentAccessors(t *testing.T) {
	var nilRef *Referent
	if !nilRef.IsGeneric() || nilRef.Marker() != nil {
		t.Error("nil referent should be generic without marker")
	}
	r := Individual(4)
	if r.IsGeneric() {
		t.Error("individual referent should not be generic")
	}
	if m := r.Marker(); m == nil || m.ID != 4 {
		t.Errorf("Marker() = %v, want #4", m)
	}
	if (&Referent{Designator: Name{Value: "x"}}).Marker() != nil {
		t.Error("named referent has no marker")
	}
}
