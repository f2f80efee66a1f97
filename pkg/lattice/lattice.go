package lattice

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph/pkg/errors"
	"github.com/matzehuels/cgraph/pkg/observability"
	"github.com/matzehuels/cgraph/pkg/poset"
)

// Lattice is a partial order of types between a universal and an absurd
// sentinel.
//
// The zero value is not usable - use New to create a valid Lattice instance.
// Lattice is not safe for concurrent use without external synchronization.
type Lattice struct {
	order     *poset.Poset[*Type]
	universal *Type
	absurd    *Type
	labels    map[string]*Type

	caseSensitive bool
	logger        *log.Logger
}

// Option configures a Lattice.
type Option func(*Lattice)

// WithCaseInsensitiveLabels makes label lookup and uniqueness ignore case.
func WithCaseInsensitiveLabels() Option {
	return func(l *Lattice) { l.caseSensitive = false }
}

// WithLogger sets the logger used for debug output. By default the lattice
// logs nothing.
func WithLogger(logger *log.Logger) Option {
	return func(l *Lattice) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a lattice holding only the two sentinel types, with universal
// placed directly above absurd.
//
// Returns INVALID_INPUT if either sentinel is nil, if both are the same type,
// or if either already belongs to a lattice, and INVALID_LABEL or
// DUPLICATE_LABEL if their labels are unusable.
func New(universal, absurd *Type, opts ...Option) (*Lattice, error) {
	if universal == nil || absurd == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sentinel types must not be nil")
	}
	if universal == absurd {
		return nil, errors.New(errors.ErrCodeInvalidInput, "universal and absurd types must differ")
	}

	l := &Lattice{
		order:         poset.New[*Type](),
		labels:        make(map[string]*Type),
		caseSensitive: true,
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}

	for _, t := range []*Type{universal, absurd} {
		if err := l.checkDetached(t); err != nil {
			return nil, err
		}
	}
	if universal.label != "" && l.key(universal.label) == l.key(absurd.label) {
		return nil, errors.New(errors.ErrCodeDuplicateLabel, "sentinels share label %q", universal.label)
	}

	l.universal = universal
	l.absurd = absurd
	l.attach(universal)
	l.attach(absurd)
	if err := l.order.Link(universal.node, absurd.node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "link sentinels")
	}
	return l, nil
}

// Universal returns the top sentinel type.
func (l *Lattice) Universal() *Type { return l.universal }

// Absurd returns the bottom sentinel type.
func (l *Lattice) Absurd() *Type { return l.absurd }

// Len returns the number of types in the lattice, sentinels included.
func (l *Lattice) Len() int { return l.order.Len() }

// CaseSensitive reports whether labels are compared case-sensitively.
func (l *Lattice) CaseSensitive() bool { return l.caseSensitive }

// Contains reports whether t belongs to this lattice.
func (l *Lattice) Contains(t *Type) bool { return t != nil && t.lattice == l }

// Types returns every type in the lattice in insertion-slot order.
func (l *Lattice) Types() []*Type { return l.values(l.order.IDs()) }

// ByLabel returns the type registered under label.
func (l *Lattice) ByLabel(label string) (*Type, bool) {
	if label == "" {
		return nil, false
	}
	t, ok := l.labels[l.key(label)]
	return t, ok
}

// SameLabel reports whether two labels name the same type under this
// lattice's case rule.
func (l *Lattice) SameLabel(a, b string) bool { return l.key(a) == l.key(b) }

// AddType inserts t below supertypes and above subtypes. Omitted supertypes
// default to the universal type and omitted subtypes to the absurd type.
//
// Re-adding a type that already belongs to this lattice is a no-op apart
// from layering in the given supertypes and subtypes. The operation is
// atomic: on error the lattice is unchanged.
//
// Returns DUPLICATE_LABEL if another type holds t's label, UNKNOWN_TYPE if a
// listed supertype or subtype is not in the lattice, and ORDER_CONFLICT if
// some subtype already precedes some supertype.
func (l *Lattice) AddType(t *Type, supertypes, subtypes []*Type) error {
	if t != nil && t.lattice == l {
		if err := l.AddSuperTypes(t, supertypes...); err != nil {
			return err
		}
		return l.AddSubTypes(t, subtypes...)
	}
	if err := l.checkDetached(t); err != nil {
		return err
	}
	if err := l.requireAll(supertypes); err != nil {
		return err
	}
	if err := l.requireAll(subtypes); err != nil {
		return err
	}
	for _, sup := range supertypes {
		if sup == l.absurd {
			return l.conflict(sup, t)
		}
		for _, sub := range subtypes {
			if sub == sup || l.order.HasChild(sub.node, sup.node) {
				return l.conflict(sub, sup)
			}
		}
	}
	for _, sub := range subtypes {
		if sub == l.universal {
			return l.conflict(t, sub)
		}
	}

	l.attach(t)
	if err := l.link(l.universal, t); err != nil {
		return err
	}
	if err := l.link(t, l.absurd); err != nil {
		return err
	}
	for _, sup := range supertypes {
		if err := l.link(sup, t); err != nil {
			return err
		}
	}
	for _, sub := range subtypes {
		if err := l.link(t, sub); err != nil {
			return err
		}
	}

	l.logger.Debug("type added", "type", t, "supertypes", len(supertypes), "subtypes", len(subtypes))
	observability.Lattice().OnTypeAdded(t.String())
	return nil
}

// AddSuperTypes places t directly below each of others. The operation is
// atomic: if any link would create a cycle, nothing is changed and an
// ORDER_CONFLICT error is returned.
func (l *Lattice) AddSuperTypes(t *Type, others ...*Type) error {
	if err := l.require(t); err != nil {
		return err
	}
	if err := l.requireAll(others); err != nil {
		return err
	}
	for _, o := range others {
		if o != t && l.order.HasChild(t.node, o.node) {
			return l.conflict(o, t)
		}
	}
	for _, o := range others {
		if err := l.link(o, t); err != nil {
			return err
		}
	}
	return nil
}

// AddSubTypes places each of others directly below t. The operation is
// atomic: if any link would create a cycle, nothing is changed and an
// ORDER_CONFLICT error is returned.
func (l *Lattice) AddSubTypes(t *Type, others ...*Type) error {
	if err := l.require(t); err != nil {
		return err
	}
	if err := l.requireAll(others); err != nil {
		return err
	}
	for _, o := range others {
		if o != t && l.order.HasChild(o.node, t.node) {
			return l.conflict(t, o)
		}
	}
	for _, o := range others {
		if err := l.link(t, o); err != nil {
			return err
		}
	}
	return nil
}

// RemoveType detaches t from the lattice. Its supertypes adopt its subtypes
// directly, so the ordering between all remaining types is preserved.
//
// Returns UNKNOWN_TYPE if t is not in the lattice and INVALID_INPUT for the
// sentinels, which are permanent.
func (l *Lattice) RemoveType(t *Type) error {
	if err := l.require(t); err != nil {
		return err
	}
	if t == l.universal || t == l.absurd {
		return errors.New(errors.ErrCodeInvalidInput, "sentinel type %s cannot be removed", t)
	}

	l.order.Remove(t.node)
	if t.label != "" {
		delete(l.labels, l.key(t.label))
	}
	t.lattice = nil
	t.node = -1

	l.logger.Debug("type removed", "type", t)
	observability.Lattice().OnTypeRemoved(t.String())
	return nil
}

// RenameLabel changes t's label. An empty label unregisters it.
//
// Returns UNKNOWN_TYPE if t is not in the lattice, INVALID_LABEL for a
// malformed label and DUPLICATE_LABEL if another type already uses it.
func (l *Lattice) RenameLabel(t *Type, label string) error {
	if err := l.require(t); err != nil {
		return err
	}
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	if label != "" {
		if other, ok := l.labels[l.key(label)]; ok && other != t {
			return errors.New(errors.ErrCodeDuplicateLabel, "label %q already names another type", label)
		}
	}

	old := t.label
	if old != "" {
		delete(l.labels, l.key(old))
	}
	t.label = label
	if label != "" {
		l.labels[l.key(label)] = t
	}
	l.logger.Debug("type renamed", "from", old, "to", label)
	return nil
}

// IsSubTypeOf reports whether a is b or lies below it. It is reflexive.
func (l *Lattice) IsSubTypeOf(a, b *Type) (bool, error) {
	if err := l.requireAll([]*Type{a, b}); err != nil {
		return false, err
	}
	return a == b || l.order.HasParent(a.node, b.node), nil
}

// IsSuperTypeOf reports whether a is b or lies above it. It is reflexive.
func (l *Lattice) IsSuperTypeOf(a, b *Type) (bool, error) { return l.IsSubTypeOf(b, a) }

// IsProperSubTypeOf reports whether a lies strictly below b.
func (l *Lattice) IsProperSubTypeOf(a, b *Type) (bool, error) {
	ok, err := l.IsSubTypeOf(a, b)
	return ok && a != b, err
}

// IsProperSuperTypeOf reports whether a lies strictly above b.
func (l *Lattice) IsProperSuperTypeOf(a, b *Type) (bool, error) { return l.IsProperSubTypeOf(b, a) }

// ProperSubTypesOf returns every type strictly below t, nearest first.
func (l *Lattice) ProperSubTypesOf(t *Type) ([]*Type, error) {
	if err := l.require(t); err != nil {
		return nil, err
	}
	return l.values(l.order.Descendants(t.node)), nil
}

// ProperSuperTypesOf returns every type strictly above t, nearest first.
func (l *Lattice) ProperSuperTypesOf(t *Type) ([]*Type, error) {
	if err := l.require(t); err != nil {
		return nil, err
	}
	return l.values(l.order.Ancestors(t.node)), nil
}

// ImmediateSubTypesOf returns the types stored directly below t.
func (l *Lattice) ImmediateSubTypesOf(t *Type) ([]*Type, error) {
	if err := l.require(t); err != nil {
		return nil, err
	}
	return l.values(l.order.Children(t.node)), nil
}

// ImmediateSuperTypesOf returns the types stored directly above t.
func (l *Lattice) ImmediateSuperTypesOf(t *Type) ([]*Type, error) {
	if err := l.require(t); err != nil {
		return nil, err
	}
	return l.values(l.order.Parents(t.node)), nil
}

// Validate re-checks the lattice invariants: acyclicity, transitive
// reduction, and that every type lies between the two sentinels.
// A non-nil result is an INTERNAL_ERROR and indicates a bug.
func (l *Lattice) Validate() error {
	if err := l.order.Validate(); err != nil {
		return err
	}
	if len(l.order.Parents(l.universal.node)) != 0 {
		return errors.New(errors.ErrCodeInternal, "universal type has supertypes")
	}
	if len(l.order.Children(l.absurd.node)) != 0 {
		return errors.New(errors.ErrCodeInternal, "absurd type has subtypes")
	}
	for _, t := range l.Types() {
		if t == l.universal || t == l.absurd {
			continue
		}
		if !l.order.HasParent(t.node, l.universal.node) || !l.order.HasChild(t.node, l.absurd.node) {
			return errors.New(errors.ErrCodeInternal, "type %s is not between the sentinels", t)
		}
	}
	return nil
}

func (l *Lattice) key(label string) string {
	if l.caseSensitive {
		return label
	}
	return strings.ToLower(label)
}

func (l *Lattice) checkDetached(t *Type) error {
	if t == nil {
		return errors.New(errors.ErrCodeInvalidInput, "type must not be nil")
	}
	if t.lattice != nil {
		return errors.New(errors.ErrCodeInvalidInput, "type %s already belongs to a lattice", t)
	}
	if err := errors.ValidateLabel(t.label); err != nil {
		return err
	}
	if t.label != "" {
		if other, ok := l.labels[l.key(t.label)]; ok && other != t {
			return errors.New(errors.ErrCodeDuplicateLabel, "label %q already names another type", t.label)
		}
	}
	return nil
}

func (l *Lattice) attach(t *Type) {
	t.node = l.order.Add(t)
	t.lattice = l
	if t.label != "" {
		l.labels[l.key(t.label)] = t
	}
}

func (l *Lattice) require(t *Type) error {
	if t == nil || t.lattice != l {
		return errors.New(errors.ErrCodeUnknownType, "type %s is not in the lattice", t)
	}
	return nil
}

func (l *Lattice) requireAll(ts []*Type) error {
	for _, t := range ts {
		if err := l.require(t); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lattice) link(parent, child *Type) error {
	if err := l.order.Link(parent.node, child.node); err != nil {
		return errors.Wrap(errors.ErrCodeOrderConflict, err, "cannot place %s below %s", child, parent)
	}
	return nil
}

func (l *Lattice) conflict(parent, child *Type) error {
	l.logger.Warn("order conflict", "parent", parent, "child", child)
	observability.Lattice().OnOrderConflict(parent.String(), child.String())
	return errors.New(errors.ErrCodeOrderConflict, "cannot place %s below %s: %s already precedes %s",
		child, parent, child, parent)
}

func (l *Lattice) values(ids []poset.ID) []*Type {
	out := make([]*Type, len(ids))
	for i, id := range ids {
		out[i] = l.order.Value(id)
	}
	return out
}
