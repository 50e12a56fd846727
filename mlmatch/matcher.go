// Package mlmatch implements the multi-literal matching engine behind
// forward and backward subsumption and subsumption demodulation: given a
// base sequence of literals, an instance clause and per-base alternative
// lists, it searches for a single substitution mapping every base
// literal onto one of its alternatives, with multiset injectivity over
// the instance positions when requested.
//
// The search is a goto-free backtracking loop over the base literals.
// Backtracking keeps all data structures intact; a stored level counts
// as "free" or "unset" whenever it is greater than the current decision
// level. Per-level data is materialised lazily on first visit, so
// conflicts near the root stay cheap.
package mlmatch

import (
	"math"

	"github.com/Danilo-Araujo-Silva/vampire/logic"
	"github.com/Danilo-Araujo-Silva/vampire/resource"
)

// checkInterval is the number of inner iterations between cooperative
// time-budget polls.
const checkInterval = 50000

// none is the sentinel for "no level": larger than every decision level.
const none = math.MaxInt

// row is one variable binding alternative: the term bound to each
// variable of the base literal (in ascending variable order) and the
// position of the alternative literal in the instance clause.
type row struct {
	terms []*logic.Term
	pos   int
}

type initResult uint8

const (
	initOK = initResult(iota)
	initMustBacktrack
	initNoAlternative
)

// Matcher is a reusable multi-literal matcher. Init sets up a match
// problem; NextMatch enumerates its solutions.
type Matcher struct {
	bank   *logic.Bank
	limits *resource.Limits

	bases    []*logic.Literal
	alts     [][]*logic.Literal
	instance *logic.Clause
	n        int

	// multiset requires distinct base literals to claim distinct
	// instance positions.
	multiset bool
	// allowEqSkip permits leaving one positive base equality out of the
	// substitution, returning it as the equality for demodulation.
	allowEqSkip bool
	// resolvedBase designates a base literal that need not be matched,
	// or -1. Only meaningful with multiset off.
	resolvedBase int

	varCnts      []int
	boundVarNums [][]int
	altBindings  [][]row
	initialized  []bool

	// remaining is the triangular array of alternative counts:
	// remaining(i,k) alternatives of base i survive the choices at
	// levels 0..k-1. Stored flat at index i(i+1)/2+k.
	remaining []int
	// inters caches the variable intersection info of base pairs
	// (j,i), j < i, flat at index i(i+1)/2+j: alternating index pairs
	// (p,q) with boundVarNums[j][p] == boundVarNums[i][q].
	inters         [][]int
	intersComputed []bool

	nextAlts []int
	// matchRecord[p] is the base level claiming instance position p;
	// values greater than currBLit mean the position is free.
	matchRecord []int
	currBLit    int
	// eqLit is the level whose positive equality is skipped for
	// demodulation, or the none sentinel.
	eqLit int
	// resolvedSkip is the level at which the resolved base literal was
	// skipped, or the none sentinel.
	resolvedSkip int

	// Backing buffers, advanced monotonically during initialisation.
	varNumData  []int
	varNumOff   int
	rowTermData []*logic.Term
	rowTermOff  int
	rowData     []row
	rowOff      int
	intersData  []int
	intersOff   int

	counter int
	valid   bool
	// matchedEmpty reports the single successful match of an empty base.
	matchedEmpty bool
}

// Option configures a match problem.
type Option func(*Matcher)

// WithMultiset requires the base-to-instance position map to be
// injective, as subsumption demands.
func WithMultiset() Option {
	return func(m *Matcher) { m.multiset = true }
}

// WithEqualitySkip permits one positive base equality to be left out of
// the substitution and reported as the equality for demodulation.
func WithEqualitySkip() Option {
	return func(m *Matcher) { m.allowEqSkip = true }
}

// WithResolved designates the base literal at the given index as
// resolved: it need not be matched. Implies non-multiset matching.
func WithResolved(baseIndex int) Option {
	return func(m *Matcher) {
		m.resolvedBase = baseIndex
		m.multiset = false
	}
}

// WithLimits installs the time budget polled by the inner loop.
func WithLimits(l *resource.Limits) Option {
	return func(m *Matcher) { m.limits = l }
}

// NewMatcher returns a matcher in an invalid state; call Init before
// NextMatch.
func NewMatcher(bank *logic.Bank) *Matcher {
	return &Matcher{bank: bank, resolvedBase: -1}
}

// Init sets up the matcher for a new match problem. bases and alts must
// have the same length and every alternative must occur in instance.
func (m *Matcher) Init(bases []*logic.Literal, instance *logic.Clause, alts [][]*logic.Literal, opts ...Option) {
	if len(bases) != len(alts) {
		panic("mlmatch: bases and alts length mismatch")
	}
	m.n = len(bases)
	m.bases = append(m.bases[:0], bases...)
	m.alts = m.alts[:0]
	for _, a := range alts {
		m.alts = append(m.alts, a)
	}
	m.instance = instance
	m.multiset = false
	m.allowEqSkip = false
	m.resolvedBase = -1
	m.limits = nil
	for _, opt := range opts {
		opt(m)
	}

	m.initStorage()
	m.reorder()

	m.currBLit = 0
	m.eqLit = none
	m.resolvedSkip = none
	m.counter = 0
	m.valid = true
	m.matchedEmpty = false
	if m.n > 0 {
		m.nextAlts[0] = 0
	}
}

// initStorage sizes all per-problem buffers from one counting pass over
// the base literals, so the search loop allocates nothing.
func (m *Matcher) initStorage() {
	baseLitVars := 0
	altCnt := 0
	bindingCells := 0
	for i, b := range m.bases {
		dv := b.DistinctVars()
		baseLitVars += dv

		cur := 0
		for _, a := range m.alts[i] {
			cur++
			if m.bank.Commutative(a) {
				cur++
			}
		}
		altCnt += cur
		bindingCells += dv * cur
	}
	tri := m.n * (m.n + 1) / 2

	m.varCnts = sizedInts(m.varCnts, m.n)
	m.boundVarNums = sizedIntSlices(m.boundVarNums, m.n)
	m.altBindings = sizedRowSlices(m.altBindings, m.n)
	m.initialized = sizedBools(m.initialized, m.n)
	m.remaining = sizedInts(m.remaining, tri)
	m.inters = sizedIntSlices(m.inters, tri)
	m.intersComputed = sizedBools(m.intersComputed, tri)
	m.nextAlts = sizedInts(m.nextAlts, m.n)
	m.matchRecord = sizedInts(m.matchRecord, m.instance.Len())
	for i := range m.matchRecord {
		m.matchRecord[i] = none
	}

	m.varNumData = sizedInts(m.varNumData, baseLitVars)
	m.varNumOff = 0
	m.rowTermData = sizedTerms(m.rowTermData, bindingCells)
	m.rowTermOff = 0
	m.rowData = sizedRows(m.rowData, altCnt)
	m.rowOff = 0
	m.intersData = sizedInts(m.intersData, 2*baseLitVars*m.n)
	m.intersOff = 0
}

// reorder rearranges the base literals to reduce backtracking: first all
// literals with zero alternatives, then those with exactly one, then the
// one with the most distinct variables among the rest. Reordering is a
// stable sequence of swaps.
func (m *Matcher) reorder() {
	if m.n == 0 {
		return
	}
	swapLits := func(i, j int) {
		if i == j {
			return
		}
		m.bases[i], m.bases[j] = m.bases[j], m.bases[i]
		m.alts[i], m.alts[j] = m.alts[j], m.alts[i]
		switch m.resolvedBase {
		case i:
			m.resolvedBase = j
		case j:
			m.resolvedBase = i
		}
	}

	zeroAlts := 0
	singleAlts := 0
	mostDistVarsLit := 0
	mostDistVarsCnt := m.bases[0].DistinctVars()

	for i := 0; i < m.n; i++ {
		distVars := m.bases[i].DistinctVars()
		cur := 0
		for _, a := range m.alts[i] {
			cur++
			if m.bank.Commutative(a) {
				cur++
			}
		}
		switch {
		case cur == 0:
			if zeroAlts != i {
				if singleAlts != zeroAlts {
					swapLits(singleAlts, zeroAlts)
				}
				swapLits(i, zeroAlts)
				if mostDistVarsLit == singleAlts {
					mostDistVarsLit = i
				}
			}
			zeroAlts++
			singleAlts++
		case cur == 1:
			if singleAlts != i {
				swapLits(i, singleAlts)
				if mostDistVarsLit == singleAlts {
					mostDistVarsLit = i
				}
			}
			singleAlts++
		case i > 0 && mostDistVarsCnt < distVars:
			mostDistVarsLit = i
			mostDistVarsCnt = distVars
		}
	}
	if mostDistVarsLit > singleAlts {
		swapLits(mostDistVarsLit, singleAlts)
	}
}

func triIndex(i, k int) int {
	return i*(i+1)/2 + k
}

func (m *Matcher) remGet(i, k int) int {
	return m.remaining[triIndex(i, k)]
}

func (m *Matcher) remSet(i, k, v int) {
	m.remaining[triIndex(i, k)] = v
}

// arrayBinder stores bindings into a row's term slots, indexed by the
// position of the variable in the base literal's ascending variable
// list. It rejects conflicting rebindings.
type arrayBinder struct {
	vars  []int
	terms []*logic.Term
}

func (b *arrayBinder) Bind(v int, t *logic.Term) bool {
	lo, hi := 0, len(b.vars)
	for lo < hi {
		mid := (lo + hi) / 2
		if b.vars[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if b.terms[lo] != nil && b.terms[lo] != t {
		return false
	}
	b.terms[lo] = t

	return true
}

// createLiteralBindings materialises the binding rows of base literal
// bi: one row per matching alternative orientation, each holding the
// term bound to every variable of the base plus the instance position of
// the alternative.
func (m *Matcher) createLiteralBindings(bi int) {
	base := m.bases[bi]
	vars := base.Vars()
	vc := len(vars)

	bv := m.varNumData[m.varNumOff : m.varNumOff+vc]
	copy(bv, vars)
	m.varNumOff += vc
	m.boundVarNums[bi] = bv
	m.varCnts[bi] = vc

	rowStart := m.rowOff
	tryRow := func(alt *logic.Literal, reversed bool) {
		terms := m.rowTermData[m.rowTermOff : m.rowTermOff+vc]
		for i := range terms {
			terms[i] = nil
		}
		b := &arrayBinder{vars: bv, terms: terms}
		ok := false
		if reversed {
			ok = logic.MatchReversedArgs(base, alt, b)
		} else {
			ok = logic.MatchArgs(base, alt, b)
		}
		if !ok {
			return
		}
		m.rowTermOff += vc
		m.rowData[m.rowOff] = row{terms: terms, pos: m.instance.GetLiteralPosition(alt)}
		m.rowOff++
	}
	for _, alt := range m.alts[bi] {
		tryRow(alt, false)
		if m.bank.Commutative(alt) {
			tryRow(alt, true)
		}
	}
	m.altBindings[bi] = m.rowData[rowStart:m.rowOff]
}

// intersectInfo returns the variable intersection info of bases b1 and
// b2, b1 < b2: alternating pairs (p, q) meaning that variable p of b1 is
// variable q of b2. Computed once and cached.
func (m *Matcher) intersectInfo(b1, b2 int) []int {
	ti := triIndex(b2, b1)
	if m.intersComputed[ti] {
		return m.inters[ti]
	}
	v1 := m.boundVarNums[b1]
	v2 := m.boundVarNums[b2]
	start := m.intersOff
	i, j := 0, 0
	for i < len(v1) && j < len(v2) {
		switch {
		case v1[i] < v2[j]:
			i++
		case v1[i] > v2[j]:
			j++
		default:
			m.intersData[m.intersOff] = i
			m.intersData[m.intersOff+1] = j
			m.intersOff += 2
			i++
			j++
		}
	}
	m.inters[ti] = m.intersData[start:m.intersOff]
	m.intersComputed[ti] = true

	return m.inters[ti]
}

// haveVarsInCommon reports whether bases b1 and b2, b1 < b2, share a
// variable.
func (m *Matcher) haveVarsInCommon(b1, b2 int) bool {
	return len(m.intersectInfo(b1, b2)) > 0
}

// compatible reports whether binding base b1 with the bindings in
// b1Terms agrees on all shared variables with binding base b2 to its
// rowIdx-th alternative.
func (m *Matcher) compatible(b1 int, b1Terms []*logic.Term, b2, rowIdx int) bool {
	b2Terms := m.altBindings[b2][rowIdx].terms
	info := m.intersectInfo(b1, b2)
	for k := 0; k < len(info); k += 2 {
		if b1Terms[info[k]] != b2Terms[info[k+1]] {
			return false
		}
	}
	return true
}

// bindAlt commits base bIndex to its altIndex-th alternative: for every
// later initialised level it excludes the alternatives that conflict
// with the induced bindings, preparing the next column of the remaining
// array. Returns false when some later level is left without
// alternatives, in which case the alternative should be rejected.
func (m *Matcher) bindAlt(bIndex, altIndex int) bool {
	curTerms := m.altBindings[bIndex][altIndex].terms
	for i := bIndex + 1; i < m.n; i++ {
		if !m.initialized[i] {
			break
		}
		remAlts := m.remGet(i, bIndex)
		if m.haveVarsInCommon(bIndex, i) {
			rows := m.altBindings[i]
			for ai := 0; ai < remAlts; ai++ {
				if !m.compatible(bIndex, curTerms, i, ai) {
					remAlts--
					rows[ai], rows[remAlts] = rows[remAlts], rows[ai]
					ai--
				}
			}
		}
		if remAlts == 0 {
			return false
		}
		m.remSet(i, bIndex+1, remAlts)
	}
	return true
}

// skipBinding is the counterpart to bindAlt for a level left out of the
// substitution: it carries the remaining-alternative counts over to the
// next column unchanged.
func (m *Matcher) skipBinding(bIndex int) {
	for i := bIndex + 1; i < m.n; i++ {
		if !m.initialized[i] {
			break
		}
		m.remSet(i, bIndex+1, m.remGet(i, bIndex))
	}
}

// ensureInit materialises the binding rows and remaining counts of base
// bIndex on its first visit, filtering the rows against the bindings
// selected at earlier levels.
func (m *Matcher) ensureInit(bIndex int) initResult {
	if m.initialized[bIndex] {
		return initOK
	}
	m.initialized[bIndex] = true
	m.createLiteralBindings(bIndex)

	altCnt := len(m.altBindings[bIndex])
	if altCnt == 0 {
		base := m.bases[bIndex]
		skippable := bIndex == m.resolvedBase ||
			(m.allowEqSkip && base.IsEquality() && base.Positive())
		if skippable {
			for i := 0; i <= bIndex; i++ {
				m.remSet(bIndex, i, 0)
			}
			if m.allowEqSkip && bIndex != m.resolvedBase && m.eqLit < bIndex {
				// An earlier equality is already skipped.
				return initMustBacktrack
			}
			return initOK
		}
		return initNoAlternative
	}
	m.remSet(bIndex, 0, altCnt)

	remAlts := altCnt
	for pbi := 0; pbi < bIndex; pbi++ {
		remAlts = m.remGet(bIndex, pbi)
		if pbi != m.eqLit && pbi != m.resolvedSkip && m.haveVarsInCommon(pbi, bIndex) {
			pbTerms := m.altBindings[pbi][m.nextAlts[pbi]-1].terms
			rows := m.altBindings[bIndex]
			for ai := 0; ai < remAlts; ai++ {
				if !m.compatible(pbi, pbTerms, bIndex, ai) {
					remAlts--
					rows[ai], rows[remAlts] = rows[remAlts], rows[ai]
					ai--
				}
			}
		}
		m.remSet(bIndex, pbi+1, remAlts)
	}
	if bIndex > 0 && remAlts == 0 {
		return initMustBacktrack
	}
	return initOK
}

// unclaim releases the match records held by a level.
func (m *Matcher) unclaim(level int) {
	if !m.multiset {
		return
	}
	for i := range m.matchRecord {
		if m.matchRecord[i] == level {
			m.matchRecord[i] = none
		}
	}
}

// advance moves the search to the next level. Returns true when every
// base literal has been handled, i.e. a complete match was found.
func (m *Matcher) advance() bool {
	m.currBLit++
	if m.currBLit == m.n {
		return true
	}
	m.nextAlts[m.currBLit] = 0
	if m.eqLit == m.currBLit {
		m.eqLit = none
	}
	if m.resolvedSkip == m.currBLit {
		m.resolvedSkip = none
	}
	return false
}

// NextMatch searches for the next match. It returns false when no more
// matches exist. The only error is the cooperative time budget check
// firing resource.ErrTimeLimit.
func (m *Matcher) NextMatch() (bool, error) {
	if !m.valid {
		return false, nil
	}
	if m.n == 0 {
		// An empty base matches once, with empty bindings.
		if m.matchedEmpty {
			m.valid = false

			return false, nil
		}
		m.matchedEmpty = true

		return true, nil
	}
	for {
		switch m.ensureInit(m.currBLit) {
		case initMustBacktrack:
			m.currBLit--

			continue
		case initNoAlternative:
			m.valid = false

			return false, nil
		}

		maxAlt := m.remGet(m.currBLit, m.currBLit)
		for m.nextAlts[m.currBLit] < maxAlt &&
			(m.claimedEarlier(m.currBLit, m.nextAlts[m.currBLit]) ||
				!m.bindAlt(m.currBLit, m.nextAlts[m.currBLit])) {
			m.nextAlts[m.currBLit]++
		}

		switch {
		case m.nextAlts[m.currBLit] < maxAlt:
			// A suitable alternative: compatible with all previous
			// choices, unclaimed, and leaving every later initialised
			// level an alternative.
			m.unclaim(m.currBLit)
			if m.multiset {
				pos := m.altBindings[m.currBLit][m.nextAlts[m.currBLit]].pos
				m.matchRecord[pos] = m.currBLit
			}
			m.nextAlts[m.currBLit]++
			if m.advance() {
				// Back up one level so the next call resumes from the
				// most recent choice.
				m.currBLit--

				return true, nil
			}

		case m.currBLit == m.resolvedBase && m.resolvedSkip > m.currBLit:
			m.unclaim(m.currBLit)
			m.resolvedSkip = m.currBLit
			m.skipBinding(m.currBLit)
			if m.advance() {
				m.currBLit--

				return true, nil
			}

		case m.allowEqSkip && m.eqLit > m.currBLit &&
			m.bases[m.currBLit].IsEquality() && m.bases[m.currBLit].Positive():
			m.unclaim(m.currBLit)
			m.eqLit = m.currBLit
			m.skipBinding(m.currBLit)
			if m.advance() {
				m.currBLit--

				return true, nil
			}

		default:
			// Conflict at level zero means no more matches exist.
			if m.currBLit == 0 {
				m.valid = false

				return false, nil
			}
			m.currBLit--
		}

		m.counter++
		if m.counter == checkInterval {
			m.counter = 0
			if m.limits != nil && m.limits.TimeLimitReached() {
				return false, resource.ErrTimeLimit
			}
		}
	}
}

// claimedEarlier reports whether the instance position of the given
// alternative is already claimed by a level before the given one.
func (m *Matcher) claimedEarlier(bi, alt int) bool {
	if !m.multiset {
		return false
	}
	return m.matchRecord[m.altBindings[bi][alt].pos] < bi
}

// Bindings returns the substitution of the current match, excluding any
// skipped level. May only be called after NextMatch returned true.
func (m *Matcher) Bindings() logic.Substitution {
	out := logic.Substitution{}
	for bi := 0; bi < m.n; bi++ {
		if bi == m.eqLit || bi == m.resolvedSkip {
			continue
		}
		r := m.altBindings[bi][m.nextAlts[bi]-1]
		for vi, v := range m.boundVarNums[bi] {
			out[v] = r.terms[vi]
		}
	}
	return out
}

// MatchedAltsBitmap returns a bitmap over the instance positions claimed
// by the current match, excluding any skipped level.
func (m *Matcher) MatchedAltsBitmap() []bool {
	out := make([]bool, m.instance.Len())
	for bi := 0; bi < m.n; bi++ {
		if bi == m.eqLit || bi == m.resolvedSkip {
			continue
		}
		out[m.altBindings[bi][m.nextAlts[bi]-1].pos] = true
	}
	return out
}

// EqualityForDemodulation returns the positive base equality skipped by
// the current match, or nil.
func (m *Matcher) EqualityForDemodulation() *logic.Literal {
	if m.eqLit == none {
		return nil
	}
	return m.bases[m.eqLit]
}

// sized* return a slice of exactly n elements, reusing the argument's
// backing array when it is large enough. Reused cells are zeroed.

func sizedInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = 0
	}
	return s
}

func sizedBools(s []bool, n int) []bool {
	if cap(s) < n {
		return make([]bool, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = false
	}
	return s
}

func sizedTerms(s []*logic.Term, n int) []*logic.Term {
	if cap(s) < n {
		return make([]*logic.Term, n)
	}
	return s[:n]
}

func sizedRows(s []row, n int) []row {
	if cap(s) < n {
		return make([]row, n)
	}
	return s[:n]
}

func sizedIntSlices(s [][]int, n int) [][]int {
	if cap(s) < n {
		return make([][]int, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = nil
	}
	return s
}

func sizedRowSlices(s [][]row, n int) [][]row {
	if cap(s) < n {
		return make([][]row, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = nil
	}
	return s
}
