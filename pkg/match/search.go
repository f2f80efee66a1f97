package match

// candidate is one admissible (first, second) pair for a single element kind.
type candidate struct {
	first, second int
	nested        *Result
}

// search enumerates the assignments of one element kind with an explicit
// choice stack. Candidates are ordered by first index, so every set of
// pairs is visited at most once and a first index left behind can never be
// filled in later.
//
// With folding on both sides an assignment is a minimal cover: no pair can
// be dropped without leaving an element unmapped.
type search struct {
	n1, n2 int
	pairs  []candidate

	stack            []int
	used1, used2     []int
	mapped1, mapped2 int

	fold1, fold2 bool
	complete     bool
	started      bool
	done         bool
}

func newSearch(n1, n2 int, pairs []candidate, cfg *Config) *search {
	return &search{
		n1:       n1,
		n2:       n2,
		pairs:    pairs,
		used1:    make([]int, n1),
		used2:    make([]int, n2),
		fold1:    cfg.Fold().first(),
		fold2:    cfg.Fold().second(),
		complete: cfg.Graph() == GraphComplete,
	}
}

// reset rewinds the search to its first assignment.
func (s *search) reset() {
	for len(s.stack) > 0 {
		s.pop()
	}
	s.started = false
	s.done = false
}

// next advances to the next accepted assignment. It reports false once the
// search space is exhausted.
func (s *search) next() bool {
	if s.done {
		return false
	}
	cursor := 0
	if !s.started {
		s.started = true
		if s.accepts() {
			return true
		}
	} else {
		if len(s.stack) == 0 {
			s.done = true
			return false
		}
		cursor = s.pop() + 1
	}

	for {
		if p, ok := s.advance(cursor); ok {
			s.push(p)
			if s.redundant() {
				cursor = s.pop() + 1
				continue
			}
			if s.accepts() {
				return true
			}
			cursor = p + 1
			continue
		}
		if len(s.stack) == 0 {
			s.done = true
			return false
		}
		cursor = s.pop() + 1
	}
}

// accepts reports whether every first element is mapped and, for complete
// matches, every second element too. An accepted state is always a leaf:
// any further pair would reuse an element without covering a new one.
func (s *search) accepts() bool {
	return s.mapped1 == s.n1 && (!s.complete || s.mapped2 == s.n2)
}

// redundant reports whether a chosen pair has both elements mapped by other
// pairs as well. Adding pairs never undoes this.
func (s *search) redundant() bool {
	for _, p := range s.stack {
		c := s.pairs[p]
		if s.used1[c.first] > 1 && s.used2[c.second] > 1 {
			return true
		}
	}
	return false
}

// advance returns the first admissible pair at or after from.
func (s *search) advance(from int) (int, bool) {
	low := s.lowestUnmapped()
	for p := from; p < len(s.pairs); p++ {
		c := s.pairs[p]
		if c.first > low {
			return 0, false
		}
		if s.rejects(c) {
			continue
		}
		return p, true
	}
	return 0, false
}

func (s *search) rejects(c candidate) bool {
	u1, u2 := s.used1[c.first] > 0, s.used2[c.second] > 0
	switch {
	case u1 && u2:
		return true
	case u1 && (!s.fold1 || !s.complete):
		return true
	case u2 && !s.fold2:
		return true
	}
	return false
}

func (s *search) lowestUnmapped() int {
	for i, n := range s.used1 {
		if n == 0 {
			return i
		}
	}
	return s.n1
}

func (s *search) push(p int) {
	c := s.pairs[p]
	s.stack = append(s.stack, p)
	if s.used1[c.first]++; s.used1[c.first] == 1 {
		s.mapped1++
	}
	if s.used2[c.second]++; s.used2[c.second] == 1 {
		s.mapped2++
	}
}

func (s *search) pop() int {
	p := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	c := s.pairs[p]
	if s.used1[c.first]--; s.used1[c.first] == 0 {
		s.mapped1--
	}
	if s.used2[c.second]--; s.used2[c.second] == 0 {
		s.mapped2--
	}
	return p
}

// candidates pairs every element of xs with the elements of ys it matches,
// ordered by first index. It returns the index of the first element of xs
// with no match, or -1.
func candidates[T any](xs, ys []T, match func(a, b T) (bool, *Result)) ([]candidate, int) {
	var out []candidate
	for i, a := range xs {
		found := false
		for j, b := range ys {
			if ok, nested := match(a, b); ok {
				out = append(out, candidate{first: i, second: j, nested: nested})
				found = true
			}
		}
		if !found {
			return nil, i
		}
	}
	return out, -1
}
