package logic

import (
	"strconv"
	"strings"
)

// Term is a perfectly shared first-order term: either a variable or a
// function application. Terms are created through a Bank, which guarantees
// that structurally equal terms are the same pointer, so equality tests
// are pointer comparisons.
type Term struct {
	// fn is the function symbol number, or -1 for a variable.
	fn int
	// v is the variable number when fn is -1.
	v int
	// args are the immediate subterms.
	args []*Term
	// id is the bank-assigned sharing number.
	id int
	// weight is the number of symbol occurrences.
	weight int
	// vars lists the distinct variables of the term in ascending order.
	vars []int
}

// IsVar reports whether the term is a variable.
func (t *Term) IsVar() bool {
	return t.fn < 0
}

// Var returns the variable number. Only valid for variables.
func (t *Term) Var() int {
	return t.v
}

// Func returns the function symbol number. Only valid for applications.
func (t *Term) Func() int {
	return t.fn
}

// Arity returns the number of immediate subterms.
func (t *Term) Arity() int {
	return len(t.args)
}

// Arg returns the idx-th immediate subterm.
func (t *Term) Arg(idx int) *Term {
	return t.args[idx]
}

// Args returns the immediate subterms. The returned slice must not be
// mutated.
func (t *Term) Args() []*Term {
	return t.args
}

// Ground reports whether the term contains no variables.
func (t *Term) Ground() bool {
	return len(t.vars) == 0
}

// Weight returns the number of symbol occurrences in the term.
func (t *Term) Weight() int {
	return t.weight
}

// Vars returns the distinct variables of the term in ascending order. The
// returned slice must not be mutated.
func (t *Term) Vars() []int {
	return t.vars
}

// SubtermAt returns the subterm at the given position, where a position is
// a sequence of zero-based argument indices from the root.
func (t *Term) SubtermAt(pos []int) *Term {
	cur := t
	for _, i := range pos {
		cur = cur.args[i]
	}
	return cur
}

// Bank creates and shares terms and literals. All terms taking part in one
// proof attempt must come from the same bank.
type Bank struct {
	sig   *Signature
	terms map[string]*Term
	lits  map[string]*Literal

	nextTermID int
	nextLitID  int
}

// NewBank returns an empty bank over the given signature.
func NewBank(sig *Signature) *Bank {
	return &Bank{
		sig:   sig,
		terms: map[string]*Term{},
		lits:  map[string]*Literal{},
	}
}

// Signature returns the bank's signature.
func (b *Bank) Signature() *Signature {
	return b.sig
}

// Var returns the shared term for variable v.
func (b *Bank) Var(v int) *Term {
	key := "v" + strconv.Itoa(v)
	if t, ok := b.terms[key]; ok {
		return t
	}
	t := &Term{fn: -1, v: v, id: b.nextTermID, weight: 1, vars: []int{v}}
	b.nextTermID++
	b.terms[key] = t

	return t
}

// Apply returns the shared term fn(args...).
func (b *Bank) Apply(fn int, args ...*Term) *Term {
	if len(args) != b.sig.FuncArity(fn) {
		panic("logic: arity mismatch in Apply")
	}
	key := appKey(fn, args)
	if t, ok := b.terms[key]; ok {
		return t
	}
	t := &Term{fn: fn, v: -1, args: args, id: b.nextTermID}
	b.nextTermID++
	t.weight = 1
	for _, a := range args {
		t.weight += a.weight
	}
	t.vars = mergeVars(args)
	b.terms[key] = t

	return t
}

// Const returns the shared constant term for a nullary function symbol.
func (b *Bank) Const(fn int) *Term {
	return b.Apply(fn)
}

func appKey(fn int, args []*Term) string {
	var sb strings.Builder
	sb.WriteByte('f')
	sb.WriteString(strconv.Itoa(fn))
	for _, a := range args {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(a.id))
	}
	return sb.String()
}

// mergeVars merges the ascending vars lists of the given terms into one
// ascending duplicate-free list.
func mergeVars(args []*Term) []int {
	var out []int
	for _, a := range args {
		if len(out) == 0 {
			out = append(out, a.vars...)
			continue
		}
		out = mergeSorted(out, a.vars)
	}
	return out
}

func mergeSorted(xs, ys []int) []int {
	if len(ys) == 0 {
		return xs
	}
	out := make([]int, 0, len(xs)+len(ys))
	i, j := 0, 0
	for i < len(xs) && j < len(ys) {
		switch {
		case xs[i] < ys[j]:
			out = append(out, xs[i])
			i++
		case xs[i] > ys[j]:
			out = append(out, ys[j])
			j++
		default:
			out = append(out, xs[i])
			i++
			j++
		}
	}
	out = append(out, xs[i:]...)
	out = append(out, ys[j:]...)

	return out
}

// TermString renders a term using the signature's symbol names. Variables
// print as X<n>.
func (b *Bank) TermString(t *Term) string {
	if t.IsVar() {
		return "X" + strconv.Itoa(t.v)
	}
	if t.Arity() == 0 {
		return b.sig.FuncName(t.fn)
	}
	parts := make([]string, t.Arity())
	for i, a := range t.args {
		parts[i] = b.TermString(a)
	}
	return b.sig.FuncName(t.fn) + "(" + strings.Join(parts, ",") + ")"
}
