// Package order provides the simplification ordering consulted by the
// saturation loop. The loop treats the ordering as an oracle; the only
// implementation here is a Knuth-Bendix ordering over symbol weights.
package order

import "github.com/Danilo-Araujo-Silva/vampire/logic"

// Comparison is the four-valued result of comparing two terms.
type Comparison int8

const (
	// Greater means the left term is larger.
	Greater = Comparison(iota)
	// Less means the right term is larger.
	Less
	// Equal means the terms are identical.
	Equal
	// Incomparable means neither term dominates the other.
	Incomparable
)

// String implements the Stringer interface.
func (c Comparison) String() string {
	switch c {
	case Greater:
		return "greater"
	case Less:
		return "less"
	case Equal:
		return "equal"
	}
	return "incomparable"
}

// Ordering compares terms. Implementations must be simplification
// orderings: stable under substitution and compatible with subterms.
type Ordering interface {
	Compare(s, t *logic.Term) Comparison
}

// KBO is a Knuth-Bendix ordering with uniform symbol weight one and
// symbol-number precedence.
type KBO struct{}

// NewKBO returns a KBO instance.
func NewKBO() *KBO {
	return &KBO{}
}

// Compare compares two terms under the ordering.
func (k *KBO) Compare(s, t *logic.Term) Comparison {
	if s == t {
		return Equal
	}
	// The variable condition: s > t requires every variable of t to
	// occur in s.
	sCovers := coversVars(s, t)
	tCovers := coversVars(t, s)

	switch {
	case s.Weight() > t.Weight():
		if sCovers {
			return Greater
		}
		return Incomparable
	case s.Weight() < t.Weight():
		if tCovers {
			return Less
		}
		return Incomparable
	}
	// Equal weights: compare by precedence, then lexicographically.
	if s.IsVar() || t.IsVar() {
		return Incomparable
	}
	if s.Func() != t.Func() {
		switch {
		case s.Func() > t.Func() && sCovers:
			return Greater
		case s.Func() < t.Func() && tCovers:
			return Less
		}
		return Incomparable
	}
	for i := 0; i < s.Arity(); i++ {
		cmp := k.Compare(s.Arg(i), t.Arg(i))
		if cmp == Equal {
			continue
		}
		switch {
		case cmp == Greater && sCovers:
			return Greater
		case cmp == Less && tCovers:
			return Less
		}
		return Incomparable
	}
	return Equal
}

// coversVars reports whether every variable of t occurs in s.
func coversVars(s, t *logic.Term) bool {
	sv := s.Vars()
	for _, v := range t.Vars() {
		if !containsVar(sv, v) {
			return false
		}
	}
	return true
}

func containsVar(vs []int, v int) bool {
	lo, hi := 0, len(vs)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case vs[mid] < v:
			lo = mid + 1
		case vs[mid] > v:
			hi = mid
		default:
			return true
		}
	}
	return false
}
